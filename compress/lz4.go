package compress

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/voxpal/errs"
)

// lz4CompressorPool keeps lz4.Compressor hash tables warm between chunks.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads as raw LZ4 blocks. A raw block does not
// record its decoded length; the chunk header does, and decoding writes into
// a buffer of exactly that size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress appends one LZ4 block holding data to dst.
func (c LZ4Compressor) Compress(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst, nil
	}

	bound := lz4.CompressBlockBound(len(data))
	n := len(dst)
	dst = slices.Grow(dst, bound)[:n+bound]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	written, err := lc.CompressBlock(data, dst[n:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if written == 0 {
		return nil, fmt.Errorf("lz4: block of %d bytes did not fit its bound", len(data))
	}

	return dst[:n+written], nil
}

// Decompress decodes an LZ4 block into exactly size bytes. A block that
// would decode past size fails without growing the buffer.
func (c LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize("lz4", 0, size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		// lz4 reports corrupt input and a too-small buffer the same way
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("%w: lz4 block is corrupt or decodes past %d bytes", errs.ErrInvalidPayload, size)
		}

		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if err := checkSize("lz4", n, size); err != nil {
		return nil, err
	}

	return out, nil
}
