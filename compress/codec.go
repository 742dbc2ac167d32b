package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/format"
)

// Compressor compresses a complete chunk payload.
type Compressor interface {
	// Compress appends the compressed form of data to dst and returns the
	// extended slice, so an encoder can compress straight after the blob
	// header. Empty data appends nothing.
	Compress(dst, data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress restores data into a slice of exactly size bytes, the
	// uncompressed length recorded in the chunk header. A payload that does
	// not restore to size bytes fails with ErrInvalidPayload; codecs whose
	// format records the length check it before decoding anything.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression round trip.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size, or 0 for an
// empty input. Values below 1.0 mean the codec saved space.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage of the original size.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses and decompresses data with the codec for compressionType
// and reports sizes and timings. It fails if the round trip does not restore
// data byte for byte.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	stats := CompressionStats{
		Algorithm:    compressionType,
		OriginalSize: int64(len(data)),
	}

	start := time.Now()
	compressed, err := codec.Compress(nil, data)
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed, len(data))
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s decompress: %w", compressionType, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if !bytes.Equal(restored, data) {
		return CompressionStats{}, fmt.Errorf("%s round trip changed the payload", compressionType)
	}

	return stats, nil
}

// CreateCodec returns a new Codec for compressionType.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: what the codec is for, used in error messages
//
// Returns:
//   - Codec: the codec
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %d", errs.ErrInvalidCompression, target, uint8(compressionType))
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(compressionType))
}

// checkSize reports a restored payload whose length differs from the header.
func checkSize(codec string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s payload restores to %d bytes, header says %d",
			errs.ErrInvalidPayload, codec, got, want)
	}

	return nil
}
