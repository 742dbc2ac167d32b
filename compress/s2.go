package compress

import (
	"fmt"
	"slices"

	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses payloads as S2 blocks, the Snappy-compatible format
// from klauspost/compress. A block starts with its decoded length, so a
// payload that disagrees with the chunk header is rejected before decoding.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress appends one S2 block holding data to dst.
func (c S2Compressor) Compress(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst, nil
	}

	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, fmt.Errorf("s2: payload of %d bytes is too large", len(data))
	}

	n := len(dst)
	dst = slices.Grow(dst, bound)[:n+bound]
	encoded := s2.Encode(dst[n:], data)

	return dst[:n+len(encoded)], nil
}

// Decompress decodes an S2 block of exactly size bytes.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize("s2", 0, size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 block header: %w", err)
	}
	if err := checkSize("s2", n, size); err != nil {
		return nil, err
	}

	return s2.Decode(make([]byte, size), data)
}
