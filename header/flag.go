package header

import (
	"github.com/arloliu/voxpal/endian"
	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/format"
)

// Flag is the first four bytes of a chunk header.
type Flag struct {
	// Options is a packed field.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved and must be 0.
	// Bits 4-15 hold the magic number, 0xC510 for chunk blob format v1.
	Options uint16

	// EncodingType is the payload encoding.
	EncodingType uint8
	// CompressionType is the payload compression.
	CompressionType uint8
}

// NewFlag returns a little-endian, uncompressed palette flag.
func NewFlag() Flag {
	return Flag{
		Options:         MagicChunkV1Opt,
		EncodingType:    uint8(format.EncodingPalette),
		CompressionType: uint8(format.CompressionNone),
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number bits of Options.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

func (f Flag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

func (f *Flag) SetEncoding(enc format.EncodingType) {
	f.EncodingType = uint8(enc)
}

func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

func (f *Flag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// Validate checks the magic number, the reserved bits, the encoding and the compression.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicChunkV1Opt || f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.Encoding().IsValid() || !f.Compression().IsValid() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the engine for the flag's byte order.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
