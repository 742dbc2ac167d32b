//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zstdLevel matches the default level of the pure-Go encoder.
const zstdLevel = 3

// Compress appends one Zstandard frame holding data to dst using libzstd.
func (c ZstdCompressor) Compress(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst, nil
	}

	return gozstd.CompressLevel(dst, data, zstdLevel), nil
}

// Decompress decodes one Zstandard frame of exactly size bytes.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, checkSize("zstd", 0, size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSize("zstd", len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
