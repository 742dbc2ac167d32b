// Package header reads and writes the fixed 32-byte header that starts every
// chunk blob.
//
// Layout:
//
//	0-1    options: endianness bit and magic number, always little-endian
//	2      payload encoding
//	3      payload compression
//	4-5    section mask, bit i set when section i is stored
//	6-7    reserved, zero
//	8-19   chunk position X, Y, Z as float32
//	20-23  uncompressed payload length
//	24-31  xxHash64 of the stored payload
//
// Every field after the options uses the byte order selected by the
// endianness bit.
package header

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/voxpal/endian"
	"github.com/arloliu/voxpal/errs"
)

// Header is the decoded form of a chunk blob header.
type Header struct {
	// Flag holds the magic number, byte order, encoding and compression.
	Flag Flag // byte offset 0-3
	// SectionMask has bit i set when section i is present in the payload.
	SectionMask uint16 // byte offset 4-5
	// Position is the chunk's world position.
	X, Y, Z float32 // byte offset 8-19
	// PayloadSize is the payload length before compression.
	PayloadSize uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the payload as stored, after compression.
	Checksum uint64 // byte offset 24-31
}

// New returns a header with a default flag and zero fields.
func New() *Header {
	return &Header{Flag: NewFlag()}
}

// Parse decodes the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not HeaderSize bytes long,
//     ErrInvalidHeaderFlags if the flag or the reserved bytes are invalid
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	// Options is always little-endian so the byte order can be read first.
	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]
	if err := h.Flag.Validate(); err != nil {
		return fmt.Errorf("%w: options 0x%04X, encoding %d, compression %d",
			err, h.Flag.Options, h.Flag.EncodingType, h.Flag.CompressionType)
	}

	engine := h.Flag.GetEndianEngine()

	h.SectionMask = engine.Uint16(data[4:6])
	if engine.Uint16(data[6:8]) != 0 {
		return fmt.Errorf("%w: reserved bytes set", errs.ErrInvalidHeaderFlags)
	}
	h.X = endian.Float32(engine, data[8:12])
	h.Y = endian.Float32(engine, data[12:16])
	h.Z = endian.Float32(engine, data[16:20])
	h.PayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to b.
func (h *Header) AppendTo(b []byte) []byte {
	b = append(b, make([]byte, HeaderSize)...)
	h.Put(b[len(b)-HeaderSize:])

	return b
}

// Put writes the serialized header into b[:HeaderSize], typically space an
// encoder reserved in front of the payload. Panics if b is shorter than
// HeaderSize.
func (h *Header) Put(b []byte) {
	out := b[:HeaderSize]
	clear(out)

	engine := h.Flag.GetEndianEngine()

	binary.LittleEndian.PutUint16(out[0:2], h.Flag.Options)
	out[2] = h.Flag.EncodingType
	out[3] = h.Flag.CompressionType
	engine.PutUint16(out[4:6], h.SectionMask)
	endian.PutFloat32(engine, out[8:12], h.X)
	endian.PutFloat32(engine, out[12:16], h.Y)
	endian.PutFloat32(engine, out[16:20], h.Z)
	engine.PutUint32(out[20:24], h.PayloadSize)
	engine.PutUint64(out[24:32], h.Checksum)
}

// Parse decodes the header at the start of a chunk blob.
//
// Returns:
//   - Header: the parsed header
//   - error: ErrInvalidHeaderSize if data is shorter than HeaderSize, or a
//     flag validation error
func Parse(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
