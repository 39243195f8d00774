// Package crc implements MSB-first, non-reflected CRCs with no final XOR
// over registers between 8 and 32 bits wide.
package crc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWidth = errors.New("crc width must be between 8 and 32 bits")
)

// Params describes a CRC variant.
type Params struct {
	Width uint
	Poly  uint32
	Init  uint32
}

// Validate returns ErrInvalidWidth for widths the engine cannot compute.
func (p Params) Validate() error {
	if p.Width < 8 || p.Width > 32 {
		return ErrInvalidWidth
	}
	return nil
}

func (p Params) mask() uint32 {
	return uint32(uint64(1)<<p.Width - 1)
}

func (p Params) String() string {
	return fmt.Sprintf("{Width:%d Poly:0x%X Init:0x%X}", p.Width, p.Poly, p.Init)
}

// Compute returns the checksum of data. Empty data yields p.Init.
func Compute(data []byte, p Params) uint32 {
	return Update(p.Init&p.mask(), p, data)
}

// Update continues a running checksum over data. Since there is no final
// XOR, Update(Compute(a, p), p, b) == Compute(a ++ b, p).
func Update(crc uint32, p Params, data []byte) uint32 {
	mask := p.mask()
	top := uint32(1) << (p.Width - 1)
	poly := p.Poly & mask
	shift := p.Width - 8

	for _, b := range data {
		crc ^= uint32(b) << shift
		for i := 0; i < 8; i++ {
			if crc&top != 0 {
				crc = (crc<<1 ^ poly) & mask
			} else {
				crc = (crc << 1) & mask
			}
		}
	}
	return crc & mask
}

// Format renders v as uppercase hex, zero padded to the digit count of
// the register width.
func Format(v uint32, p Params) string {
	return fmt.Sprintf("%0*X", DigitCount(p), v&p.mask())
}

// DigitCount is the length of a formatted checksum.
func DigitCount(p Params) int {
	return int(p.Width+3) / 4
}

// Checksum16 is the 16-bit register form of Compute.
func Checksum16(data []byte, poly uint16, init uint16) uint16 {
	crc := init
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Format16 renders a 16-bit checksum as exactly four uppercase hex digits.
func Format16(v uint16) string {
	return fmt.Sprintf("%04X", v)
}
