package codec

import (
	"fmt"

	"github.com/arloliu/voxpal/bitpack"
	"github.com/arloliu/voxpal/chunk"
	"github.com/arloliu/voxpal/compress"
	"github.com/arloliu/voxpal/cube"
	"github.com/arloliu/voxpal/endian"
	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/header"
	"github.com/arloliu/voxpal/internal/hash"
	"github.com/arloliu/voxpal/internal/pool"
	"github.com/arloliu/voxpal/palette"
	"github.com/arloliu/voxpal/tile"
)

// Decoder turns blobs back into chunks.
type Decoder struct{}

// NewDecoder creates a decoder. Byte order and compression are read from each
// blob's header.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeHeader parses and validates only the blob header.
func (d *Decoder) DecodeHeader(data []byte) (header.Header, error) {
	return header.Parse(data)
}

// Decode rebuilds a chunk from a blob produced by Encoder.Encode.
//
// Returns:
//   - *chunk.Chunk: the decoded chunk
//   - error: ErrInvalidHeaderSize or ErrInvalidHeaderFlags for a bad header,
//     ErrChecksumMismatch if the payload was altered, a decompression error,
//     or ErrInvalidPayload, ErrInvalidPalette or ErrInvalidPackedData for a
//     malformed payload
func (d *Decoder) Decode(data []byte) (*chunk.Chunk, error) {
	h, err := header.Parse(data)
	if err != nil {
		return nil, err
	}

	stored := data[header.PayloadOffset:]
	if !hash.Verify(stored, h.Checksum) {
		return nil, fmt.Errorf("%w: header 0x%016X, payload 0x%016X",
			errs.ErrChecksumMismatch, h.Checksum, hash.Checksum(stored))
	}

	if h.PayloadSize > maxPayloadSize {
		return nil, fmt.Errorf("%w: header claims %d payload bytes, limit %d",
			errs.ErrInvalidPayload, h.PayloadSize, maxPayloadSize)
	}

	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(stored, int(h.PayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk payload: %w", err)
	}

	c := chunk.New()
	c.SetPosition(chunk.Position{X: h.X, Y: h.Y, Z: h.Z})

	r := payloadReader{data: payload, engine: h.Flag.GetEndianEngine()}
	for i := range chunk.SectionCount {
		if h.SectionMask&(1<<i) == 0 {
			continue
		}
		m, err := r.readSection()
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		*c.Section(i) = chunk.SectionFromCube(m)
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidPayload, r.remaining())
	}

	return c, nil
}

type payloadReader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

func (r *payloadReader) remaining() int {
	return len(r.data) - r.off
}

func (r *payloadReader) take(n int) ([]byte, error) {
	if n > r.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrInvalidPayload, n, r.off, r.remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *payloadReader) readUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *payloadReader) readUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *payloadReader) readSection() (*cube.Map16[tile.State], error) {
	paletteLen, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	if paletteLen == 0 {
		return nil, fmt.Errorf("%w: empty palette", errs.ErrInvalidPalette)
	}

	raw, err := r.take(int(paletteLen) * paletteEntrySize)
	if err != nil {
		return nil, err
	}
	entries := make([]tile.State, paletteLen)
	for i := range entries {
		entry := raw[i*paletteEntrySize:]
		format := tile.StateFormat(entry[8])
		if !format.IsValid() {
			return nil, fmt.Errorf("%w: entry %d has unknown state format %d", errs.ErrInvalidPalette, i, entry[8])
		}
		entries[i] = tile.WithFormat(tile.TileID(r.engine.Uint64(entry)), format)
	}

	width, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	wordCount, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	raw, err = r.take(int(wordCount) * 8)
	if err != nil {
		return nil, err
	}

	words, cleanup := pool.GetWordSlice(int(wordCount))
	defer cleanup()
	for i := range words {
		words[i] = r.engine.Uint64(raw[i*8:])
	}

	indices, err := bitpack.FromWords(int(width), cube.Volume16, words)
	if err != nil {
		return nil, err
	}
	data, err := palette.FromParts(entries, indices)
	if err != nil {
		return nil, err
	}

	return cube.Map16FromPalette(data)
}
