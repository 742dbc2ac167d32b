package codec

import (
	"fmt"

	"github.com/arloliu/voxpal/compress"
	"github.com/arloliu/voxpal/endian"
	"github.com/arloliu/voxpal/format"
	"github.com/arloliu/voxpal/header"
	"github.com/arloliu/voxpal/internal/options"
)

// EncoderConfig holds the settings shared by every blob an Encoder writes.
type EncoderConfig struct {
	header *header.Header
	codec  compress.Codec
	engine endian.EndianEngine
}

// NewEncoderConfig returns the default configuration: little-endian,
// uncompressed.
func NewEncoderConfig() *EncoderConfig {
	h := header.New()

	return &EncoderConfig{
		header: h,
		engine: h.Flag.GetEndianEngine(),
	}
}

// Compression returns the configured payload compression.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.header.Flag.Compression()
}

// Engine returns the configured byte order.
func (c *EncoderConfig) Engine() endian.EndianEngine {
	return c.engine
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid chunk compression: %v", comp)
	}
}

func (c *EncoderConfig) setEndianess(endiness endianness) {
	switch endiness {
	case bigEndianOpt:
		c.header.Flag.WithBigEndian()
	default:
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

func (c *EncoderConfig) setCodec() error {
	codec, err := compress.CreateCodec(c.header.Flag.Compression(), "chunk")
	if err != nil {
		return err
	}
	c.codec = codec

	return nil
}

type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian sets the encoder to use little-endian byte order.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian sets the encoder to use big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(bigEndianOpt)
	})
}

// WithCompression sets the payload compression.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}
