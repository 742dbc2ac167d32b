package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/voxpal/chunk"
	"github.com/arloliu/voxpal/cube"
	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/header"
	"github.com/arloliu/voxpal/internal/hash"
	"github.com/arloliu/voxpal/internal/options"
	"github.com/arloliu/voxpal/internal/pool"
	"github.com/arloliu/voxpal/tile"
)

const (
	// paletteEntrySize is the encoded size of one tile state.
	paletteEntrySize = 8 + 1

	// maxSectionSize is the largest section record: a full u16 palette and
	// 64-bit indices.
	maxSectionSize = 2 + math.MaxUint16*paletteEntrySize + 1 + 2 + cube.Volume16*8

	// maxPayloadSize bounds the uncompressed payload a decoder will allocate.
	maxPayloadSize = chunk.SectionCount * maxSectionSize
)

// Encoder turns chunks into blobs.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates an encoder.
//
// Parameters:
//   - opts: byte order and compression options
//
// Returns:
//   - *Encoder: the encoder
//   - error: configuration error if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodec(); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// Encode serializes c into a new blob.
//
// Returns:
//   - []byte: header followed by the payload, owned by the caller
//   - error: ErrNilChunk, or a compression error
func (e *Encoder) Encode(c *chunk.Chunk) ([]byte, error) {
	if c == nil {
		return nil, errs.ErrNilChunk
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	for i := range chunk.SectionCount {
		section := c.Section(i)
		if section.IsEmpty() {
			continue
		}
		if err := e.appendSection(buf, section.Cube()); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
	}

	// compress straight after the header slot, then fill the header in
	blob := make([]byte, header.HeaderSize, header.HeaderSize+buf.Len())
	blob, err := e.codec.Compress(blob, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress chunk payload: %w", err)
	}

	h := *e.header
	pos := c.Position()
	h.SectionMask = c.PopulatedMask()
	h.X, h.Y, h.Z = pos.X, pos.Y, pos.Z
	h.PayloadSize = uint32(buf.Len()) //nolint: gosec
	h.Checksum = hash.Checksum(blob[header.HeaderSize:])
	h.Put(blob)

	return blob, nil
}

func (e *Encoder) appendSection(buf *pool.ByteBuffer, m *cube.Map16[tile.State]) error {
	entries := m.Palette()
	indices := m.Vector().Indices()
	words := indices.Words()

	if len(entries) > math.MaxUint16 || len(words) > math.MaxUint16 {
		return fmt.Errorf("%w: %d palette entries, %d words", errs.ErrInvalidPayload, len(entries), len(words))
	}

	buf.Grow(2 + len(entries)*paletteEntrySize + 1 + 2 + len(words)*8)

	b := buf.B
	b = e.engine.AppendUint16(b, uint16(len(entries)))
	for _, ts := range entries {
		b = e.engine.AppendUint64(b, uint64(ts.ID()))
		b = append(b, uint8(ts.Format()))
	}
	b = append(b, uint8(indices.Width()))
	b = e.engine.AppendUint16(b, uint16(len(words)))
	for _, w := range words {
		b = e.engine.AppendUint64(b, w)
	}
	buf.B = b

	return nil
}
