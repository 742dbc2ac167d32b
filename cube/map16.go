package cube

import (
	"fmt"
	"iter"

	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/palette"
)

// defaultPaletteHint sizes the palette slice of a new cube. Typical terrain
// sections hold fewer than sixteen distinct tiles.
const defaultPaletteHint = 16

const (
	// Size16 is the edge length of a Map16.
	Size16 = 16
	// Volume16 is the number of cells in a Map16.
	Volume16 = Size16 * Size16 * Size16
)

// Index16 is the linear position of a cell in a 16x16x16 cube.
type Index16 uint16

// Encode16 flattens (x, y, z) into an Index16.
//
// Panics if any coordinate is outside [0, 16).
func Encode16(x, y, z int) Index16 {
	checkCoords(x, y, z, Size16)

	return Index16(y<<8 | z<<4 | x)
}

// Decode returns the (x, y, z) coordinates of the index.
func (i Index16) Decode() (x, y, z int) {
	return int(i & 0xF), int(i >> 8), int((i >> 4) & 0xF)
}

// X returns the x coordinate.
func (i Index16) X() int { return int(i & 0xF) }

// Y returns the y coordinate.
func (i Index16) Y() int { return int(i >> 8) }

// Z returns the z coordinate.
func (i Index16) Z() int { return int((i >> 4) & 0xF) }

// Map16 is a 16x16x16 cube of T values stored as a palette vector.
type Map16[T comparable] struct {
	data *palette.Vector[T]
}

// NewMap16 creates a cube where every cell holds the zero value of T.
func NewMap16[T comparable]() *Map16[T] {
	var zero T

	return FilledMap16(zero)
}

// FilledMap16 creates a cube where every cell holds value.
func FilledMap16[T comparable](value T) *Map16[T] {
	return &Map16[T]{data: palette.Filled(defaultPaletteHint, Volume16, value)}
}

// Map16FromSeq creates a cube from exactly Volume16 values in linear index order.
//
// Panics if seq does not yield exactly Volume16 values.
func Map16FromSeq[T comparable](seq iter.Seq[T]) *Map16[T] {
	data := palette.FromSeq(defaultPaletteHint, seq)
	if data.Len() != Volume16 {
		panic(fmt.Sprintf("cube: Map16 needs %d values, got %d", Volume16, data.Len()))
	}

	return &Map16[T]{data: data}
}

// Map16FromPalette wraps an existing palette vector, typically one rebuilt by
// a decoder. The vector is owned by the cube afterwards.
//
// Returns ErrInvalidPalette if the vector does not hold exactly Volume16 slots.
func Map16FromPalette[T comparable](data *palette.Vector[T]) (*Map16[T], error) {
	if data == nil || data.Len() != Volume16 {
		return nil, fmt.Errorf("%w: Map16 needs %d slots", errs.ErrInvalidPalette, Volume16)
	}

	return &Map16[T]{data: data}, nil
}

// Get returns the value at (x, y, z).
func (m *Map16[T]) Get(x, y, z int) T {
	return m.data.Get(int(Encode16(x, y, z)))
}

// Set stores value at (x, y, z).
func (m *Map16[T]) Set(x, y, z int, value T) {
	m.data.Set(int(Encode16(x, y, z)), value)
}

// At returns the value at a linear index.
func (m *Map16[T]) At(i Index16) T {
	return m.data.Get(int(i))
}

// SetAt stores value at a linear index.
func (m *Map16[T]) SetAt(i Index16, value T) {
	m.data.Set(int(i), value)
}

// Update replaces the value at (x, y, z) with fn applied to it. Other cells
// sharing the same palette entry are unaffected.
func (m *Map16[T]) Update(x, y, z int, fn func(T) T) {
	m.data.Update(int(Encode16(x, y, z)), fn)
}

// IdenticalEntry returns a pointer to the palette entry used by (x, y, z).
// Writing through it changes every cell that holds the same value. See
// palette.Vector.PaletteEntry for the pointer's lifetime.
func (m *Map16[T]) IdenticalEntry(x, y, z int) *T {
	return m.data.PaletteEntry(int(Encode16(x, y, z)))
}

// ReplaceIdentical changes the value of (x, y, z) and of every cell sharing
// its palette entry.
func (m *Map16[T]) ReplaceIdentical(x, y, z int, value T) {
	m.data.ReplaceIdentical(int(Encode16(x, y, z)), value)
}

// Fill sets every cell to value.
func (m *Map16[T]) Fill(value T) {
	m.data.Fill(value)
}

// Len returns Volume16.
func (m *Map16[T]) Len() int {
	return m.data.Len()
}

// PaletteLen returns the number of distinct palette entries.
func (m *Map16[T]) PaletteLen() int {
	return m.data.PaletteLen()
}

// Palette returns the palette entries in first-seen order. It must not be modified.
func (m *Map16[T]) Palette() []T {
	return m.data.Palette()
}

// Vector returns the underlying palette vector.
func (m *Map16[T]) Vector() *palette.Vector[T] {
	return m.data
}

// Clone returns a deep copy of the cube.
func (m *Map16[T]) Clone() *Map16[T] {
	return &Map16[T]{data: m.data.Clone()}
}

// All returns an iterator over every cell with its index, y-outer, z-middle,
// x-inner.
func (m *Map16[T]) All() iter.Seq2[Index16, T] {
	return func(yield func(Index16, T) bool) {
		i := Index16(0)
		for value := range m.data.All() {
			if !yield(i, value) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over every cell value in linear index order.
func (m *Map16[T]) Values() iter.Seq[T] {
	return m.data.All()
}
