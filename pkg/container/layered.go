package container

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/thoas/go-funk"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
)

var (
	ErrInvalidFormat      = errors.New("invalid layered format")
	ErrPolynomialMismatch = errors.New("polynomial mismatch")
	ErrLayerFailed        = errors.New("unable to recover layer")
)

const (
	magic      = "CRCC"
	textPrefix = "TEXT="
	maxField   = 99
)

// ReconstituteFunc recovers missingLength bytes after partial.
type ReconstituteFunc func(ctx context.Context, partial []byte, checksum string,
	p crc.Params, missingLength int) ([]byte, error)

// Layer is the checksum of the text before one truncation step.
type Layer struct {
	Index    int
	Checksum string
}

// Layered is a message truncated several times in a row, each step
// recording the checksum of the text it truncated.
type Layered struct {
	MissingLength int
	Poly          uint32
	Layers        []Layer
	Text          []byte
}

// Compress truncates text layers times by missingLength bytes.
func Compress(text []byte, missingLength int, layers int, p crc.Params) (*Layered, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if layers < 1 || layers > maxField || missingLength < 0 || missingLength > maxField {
		return nil, fmt.Errorf("%w: layers %d, missing length %d", ErrInvalidFormat, layers, missingLength)
	}
	if len(text) < missingLength*layers {
		return nil, fmt.Errorf("%w for %d layers", ErrTooShort, layers)
	}

	l := &Layered{
		MissingLength: missingLength,
		Poly:          p.Poly,
	}
	current := text
	for i := 0; i < layers; i++ {
		l.Layers = append(l.Layers, Layer{
			Index:    i,
			Checksum: crc.Format(crc.Compute(current, p), p),
		})
		current = current[:len(current)-missingLength]
	}
	l.Text = append([]byte{}, current...)

	return l, nil
}

// Marshal renders the layered text form.
func (l *Layered) Marshal() []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%02d%02d%8X\n", magic, len(l.Layers), l.MissingLength, l.Poly)
	for _, layer := range l.Layers {
		fmt.Fprintf(&sb, "L%02d|%s\n", layer.Index, layer.Checksum)
	}
	sb.WriteString(textPrefix)
	sb.Write(l.Text)
	return []byte(sb.String())
}

// Parse reads the layered text form. All malformed lines are reported.
func Parse(data []byte) (*Layered, error) {
	s := string(data)

	headerEnd := strings.IndexByte(s, '\n')
	textStart := strings.Index(s, "\n"+textPrefix)
	if headerEnd < 0 || textStart < 0 || strings.HasPrefix(s, magic) == false {
		return nil, ErrInvalidFormat
	}

	header := s[:headerEnd]
	if len(header) < len(magic)+5 {
		return nil, fmt.Errorf("%w: short header %q", ErrInvalidFormat, header)
	}

	var errOut error
	l := &Layered{
		Text: []byte(s[textStart+1+len(textPrefix):]),
	}

	layerCount, err := strconv.Atoi(header[4:6])
	if err != nil {
		errOut = multierror.Append(errOut, fmt.Errorf("layer count: %v", err))
	}
	l.MissingLength, err = strconv.Atoi(header[6:8])
	if err != nil {
		errOut = multierror.Append(errOut, fmt.Errorf("missing length: %v", err))
	}
	poly, err := strconv.ParseUint(strings.TrimSpace(header[8:]), 16, 32)
	if err != nil {
		errOut = multierror.Append(errOut, fmt.Errorf("polynomial: %v", err))
	}
	l.Poly = uint32(poly)

	var lines []string
	if textStart > headerEnd {
		lines = strings.Split(s[headerEnd+1:textStart], "\n")
	}
	for i, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 2 || len(parts[0]) != 3 || parts[0][0] != 'L' {
			errOut = multierror.Append(errOut, fmt.Errorf("layer line %d: %q", i, line))
			continue
		}
		index, err := strconv.Atoi(parts[0][1:])
		if err != nil || index != i {
			errOut = multierror.Append(errOut, fmt.Errorf("layer line %d: bad index %q", i, parts[0]))
			continue
		}
		l.Layers = append(l.Layers, Layer{Index: index, Checksum: parts[1]})
	}
	if errOut == nil && layerCount != len(l.Layers) {
		errOut = multierror.Append(errOut,
			fmt.Errorf("header declares %d layers, found %d", layerCount, len(l.Layers)))
	}

	if errOut != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, errOut)
	}
	return l, nil
}

// Decompress undoes the layers from the innermost outwards.
func Decompress(ctx context.Context, l *Layered, p crc.Params,
	reconstitute ReconstituteFunc) ([]byte, error) {
	if l.Poly != p.Poly {
		return nil, ErrPolynomialMismatch
	}

	current := l.Text
	for _, layer := range funk.Reverse(l.Layers).([]Layer) {
		message, err := reconstitute(ctx, current, layer.Checksum, p, l.MissingLength)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrLayerFailed, layer.Index, err)
		}
		current = message
	}

	return current, nil
}
