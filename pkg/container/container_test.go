package container

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/search"
)

var crc16Params = crc.Params{Width: 16, Poly: 0x1021}

func searchFunc(ctx context.Context, partial []byte, checksum string,
	p crc.Params, missingLength int) ([]byte, error) {
	return search.Reconstitute(ctx, partial, checksum, p, missingLength)
}

func TestBlobRoundTrip(t *testing.T) {
	original := []byte("hello world")
	blob, err := EncodeBlob(original, 5, crc16Params)
	require.NoError(t, err)
	assert.Equal(t, "hello "+crc.Format16(crc.Checksum16(original, 0x1021, 0)), string(blob))

	b, err := DecodeBlob(blob, crc16Params)
	require.NoError(t, err)
	assert.Equal(t, "hello ", string(b.Partial))
	assert.Equal(t, crc.Format16(crc.Checksum16(original, 0x1021, 0)), b.Checksum)
}

func TestBlobChecksumWidthIndependentOfMissingLength(t *testing.T) {
	original := []byte("abcdefgh")
	for _, missing := range []int{0, 1, 2, 4, 6} {
		blob, err := EncodeBlob(original, missing, crc16Params)
		require.NoError(t, err)
		b, err := DecodeBlob(blob, crc16Params)
		require.NoError(t, err)
		assert.Len(t, b.Checksum, 4)
		assert.Equal(t, string(original[:len(original)-missing]), string(b.Partial))
	}

	p8 := crc.Params{Width: 8, Poly: 0x07}
	blob, err := EncodeBlob(original, 2, p8)
	require.NoError(t, err)
	b, err := DecodeBlob(blob, p8)
	require.NoError(t, err)
	assert.Len(t, b.Checksum, 2)
	assert.Equal(t, "abcdef", string(b.Partial))
}

func TestBlobErrors(t *testing.T) {
	_, err := EncodeBlob([]byte("ab"), 3, crc16Params)
	assert.Equal(t, ErrTooShort, err)

	_, err = DecodeBlob([]byte("ABC"), crc16Params)
	assert.Equal(t, ErrBlobTooShort, err)

	_, err = DecodeBlob([]byte("ABCD"), crc.Params{Width: 40})
	assert.Equal(t, crc.ErrInvalidWidth, err)
}

func TestBlobReconstitute(t *testing.T) {
	original := []byte("The blob tail Xy")
	blob, err := EncodeBlob(original, 2, crc16Params)
	require.NoError(t, err)

	b, err := DecodeBlob(blob, crc16Params)
	require.NoError(t, err)
	message, err := search.Reconstitute(context.Background(), b.Partial, b.Checksum, crc16Params, 2)
	require.NoError(t, err)
	assert.Equal(t, original, message)
}

func TestLayeredMarshal(t *testing.T) {
	l, err := Compress([]byte("abcdefgh"), 2, 3, crc16Params)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(l.Text))
	assert.Len(t, l.Layers, 3)

	out := string(l.Marshal())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "CRCC0302    1021", lines[0])
	assert.Equal(t, "L00|"+crc.Format16(crc.Checksum16([]byte("abcdefgh"), 0x1021, 0)), lines[1])
	assert.Equal(t, "L01|"+crc.Format16(crc.Checksum16([]byte("abcdef"), 0x1021, 0)), lines[2])
	assert.Equal(t, "L02|"+crc.Format16(crc.Checksum16([]byte("abcd"), 0x1021, 0)), lines[3])
	assert.Equal(t, "TEXT=ab", lines[4])

	parsed, err := Parse(l.Marshal())
	require.NoError(t, err)
	assert.Equal(t, l, parsed)
}

func TestLayeredRoundTrip(t *testing.T) {
	text := []byte("This is a test of our plain text CRC compression format")
	l, err := Compress(text, 1, 5, crc16Params)
	require.NoError(t, err)

	parsed, err := Parse(l.Marshal())
	require.NoError(t, err)

	message, err := Decompress(context.Background(), parsed, crc16Params, searchFunc)
	require.NoError(t, err)
	assert.Equal(t, string(text), string(message))
}

func TestLayeredMultilineText(t *testing.T) {
	text := []byte("line one\nTEXT=line two\nends with Ab")
	l, err := Compress(text, 2, 1, crc16Params)
	require.NoError(t, err)

	parsed, err := Parse(l.Marshal())
	require.NoError(t, err)
	assert.Equal(t, l.Text, parsed.Text)

	message, err := Decompress(context.Background(), parsed, crc16Params, searchFunc)
	require.NoError(t, err)
	assert.Equal(t, string(text), string(message))
}

func TestCompressErrors(t *testing.T) {
	_, err := Compress([]byte("abc"), 2, 2, crc16Params)
	assert.True(t, errors.Is(err, ErrTooShort))

	_, err = Compress([]byte("abc"), 1, 0, crc16Params)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("nonsense"))
	assert.Equal(t, ErrInvalidFormat, err)

	_, err = Parse([]byte("XXXX0101    1021\nL00|ABCD\nTEXT=a"))
	assert.Equal(t, ErrInvalidFormat, err)

	_, err = Parse([]byte("CRCCx1zz    zzzz\nbad line\nL05|ABCD\nTEXT=a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Contains(t, err.Error(), "layer count")
	assert.Contains(t, err.Error(), "missing length")
	assert.Contains(t, err.Error(), "polynomial")
	assert.Contains(t, err.Error(), "bad line")
	assert.Contains(t, err.Error(), "bad index")

	_, err = Parse([]byte("CRCC0201    1021\nL00|ABCD\nTEXT=a"))
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestDecompressErrors(t *testing.T) {
	l, err := Compress([]byte("abcdefgh"), 1, 2, crc16Params)
	require.NoError(t, err)

	_, err = Decompress(context.Background(), l, crc.Params{Width: 8, Poly: 0x07}, searchFunc)
	assert.Equal(t, ErrPolynomialMismatch, err)

	failing := func(ctx context.Context, partial []byte, checksum string,
		p crc.Params, missingLength int) ([]byte, error) {
		return nil, search.ErrNotFound
	}
	_, err = Decompress(context.Background(), l, crc16Params, failing)
	assert.True(t, errors.Is(err, ErrLayerFailed))
	assert.True(t, errors.Is(err, search.ErrNotFound))
}
