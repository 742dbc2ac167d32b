// Package voxpal stores voxel worlds as palette-compressed, bit-packed chunks.
//
// A chunk is a 16x256x16 column of tiles split into sixteen 16x16x16
// sections. Each populated section keeps the distinct tile states it uses in
// a palette and one small index per tile, packed into 64-bit words just wide
// enough to address the palette. Sections that hold nothing cost no storage.
//
// # Core Features
//
//   - Bit-packed unsigned vectors with Minecraft-compatible word layout
//   - Palette vectors that widen their indices as distinct values arrive
//   - 16^3 and 32^3 cube maps with packed Y/Z/X coordinate indices
//   - Chunks with lazily materialized sections
//   - A compact blob format with optional compression (None, Zstd, S2, LZ4)
//     and an xxHash64 payload checksum
//   - A file-backed chunk store
//
// # Basic Usage
//
// Building and encoding a chunk:
//
//	import "github.com/arloliu/voxpal"
//
//	c := chunk.New()
//	c.Set(5, 67, 9, tile.New(7))
//
//	data, err := voxpal.Encode(c)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding it again:
//
//	c, err := voxpal.Decode(data)
//	fmt.Println(c.Get(5, 67, 9)) // tile(7)
//
// # Package Structure
//
// This package provides top-level wrappers around the codec and store
// packages for the common cases. For custom byte order or compression, use
// NewEncoder with codec options, or the codec package directly.
package voxpal

import (
	"log/slog"

	"github.com/arloliu/voxpal/chunk"
	"github.com/arloliu/voxpal/codec"
	"github.com/arloliu/voxpal/format"
	"github.com/arloliu/voxpal/store"
)

var defaultEncoderOptions = []codec.EncoderOption{
	codec.WithLittleEndian(),
	codec.WithCompression(format.CompressionZstd),
}

// NewEncoder creates a chunk encoder with custom options.
//
// Parameters:
//   - opts: Optional configuration functions (see codec.EncoderOption)
//
// Returns:
//   - *codec.Encoder: The created encoder.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - codec.WithLittleEndian() / codec.WithBigEndian()
//   - codec.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//
// Example:
//
//	encoder, err := voxpal.NewEncoder(
//	    codec.WithCompression(format.CompressionS2),
//	)
func NewEncoder(opts ...codec.EncoderOption) (*codec.Encoder, error) {
	return codec.NewEncoder(opts...)
}

// NewDefaultEncoder creates a chunk encoder with recommended default settings:
// little-endian byte order and Zstd compression.
func NewDefaultEncoder() (*codec.Encoder, error) {
	return codec.NewEncoder(defaultEncoderOptions...)
}

// NewDecoder creates a chunk decoder. Byte order and compression are detected
// from each blob header.
func NewDecoder() *codec.Decoder {
	return codec.NewDecoder()
}

// Encode serializes c with the default encoder settings.
//
// Returns:
//   - []byte: The encoded blob.
//   - error: errs.ErrNilChunk for a nil chunk, or a compression error.
func Encode(c *chunk.Chunk) ([]byte, error) {
	encoder, err := NewDefaultEncoder()
	if err != nil {
		return nil, err
	}

	return encoder.Encode(c)
}

// Decode rebuilds a chunk from a blob written by any encoder configuration.
func Decode(data []byte) (*chunk.Chunk, error) {
	return codec.NewDecoder().Decode(data)
}

// OpenStore opens a file-backed chunk store rooted at dir. Chunks are saved
// with the default encoder settings followed by opts.
//
// Example:
//
//	s, err := voxpal.OpenStore("world", slog.Default())
//	err = s.Save(store.Key{X: 0, Z: 0}, c)
func OpenStore(dir string, log *slog.Logger, opts ...codec.EncoderOption) (*store.Store, error) {
	allOpts := append(append([]codec.EncoderOption{}, defaultEncoderOptions...), opts...)
	return store.New(dir, log, allOpts...)
}
