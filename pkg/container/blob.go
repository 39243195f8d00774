// Package container implements the truncated on-disk forms of a message.
package container

import (
	"errors"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
)

var (
	ErrBlobTooShort = errors.New("blob is shorter than its checksum")
	ErrTooShort     = errors.New("message is too short to truncate")
)

// Blob is a message with its tail removed and the checksum of the full
// message appended.
type Blob struct {
	Partial  []byte
	Checksum string
}

// EncodeBlob drops the last missingLength bytes of original and appends
// the checksum of original.
func EncodeBlob(original []byte, missingLength int, p crc.Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if missingLength < 0 || missingLength > len(original) {
		return nil, ErrTooShort
	}

	checksum := crc.Format(crc.Compute(original, p), p)
	partial := original[:len(original)-missingLength]

	res := make([]byte, 0, len(partial)+len(checksum))
	res = append(res, partial...)
	return append(res, checksum...), nil
}

// DecodeBlob splits a blob into the partial message and the checksum.
// The checksum length comes from the CRC width, independent of how many
// bytes were removed from the message.
func DecodeBlob(blob []byte, p crc.Params) (Blob, error) {
	if err := p.Validate(); err != nil {
		return Blob{}, err
	}

	n := crc.DigitCount(p)
	if len(blob) < n {
		return Blob{}, ErrBlobTooShort
	}

	return Blob{
		Partial:  blob[:len(blob)-n],
		Checksum: string(blob[len(blob)-n:]),
	}, nil
}
