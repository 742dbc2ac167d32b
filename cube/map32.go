package cube

import (
	"fmt"
	"iter"

	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/palette"
)

const (
	// Size32 is the edge length of a Map32.
	Size32 = 32
	// Volume32 is the number of cells in a Map32.
	Volume32 = Size32 * Size32 * Size32
)

// Index32 is the linear position of a cell in a 32x32x32 cube.
type Index32 uint16

// Encode32 flattens (x, y, z) into an Index32.
//
// Panics if any coordinate is outside [0, 32).
func Encode32(x, y, z int) Index32 {
	checkCoords(x, y, z, Size32)

	return Index32(y<<10 | z<<5 | x)
}

// Decode returns the (x, y, z) coordinates of the index.
func (i Index32) Decode() (x, y, z int) {
	return int(i & 0x1F), int(i >> 10), int((i >> 5) & 0x1F)
}

// X returns the x coordinate.
func (i Index32) X() int { return int(i & 0x1F) }

// Y returns the y coordinate.
func (i Index32) Y() int { return int(i >> 10) }

// Z returns the z coordinate.
func (i Index32) Z() int { return int((i >> 5) & 0x1F) }

// Map32 is a 32x32x32 cube of T values stored as a palette vector. It is
// used for coarse level-of-detail data where one cell covers several blocks.
type Map32[T comparable] struct {
	data *palette.Vector[T]
}

// NewMap32 creates a cube where every cell holds the zero value of T.
func NewMap32[T comparable]() *Map32[T] {
	var zero T

	return FilledMap32(zero)
}

// FilledMap32 creates a cube where every cell holds value.
func FilledMap32[T comparable](value T) *Map32[T] {
	return &Map32[T]{data: palette.Filled(defaultPaletteHint, Volume32, value)}
}

// Map32FromSeq creates a cube from exactly Volume32 values in linear index order.
//
// Panics if seq does not yield exactly Volume32 values.
func Map32FromSeq[T comparable](seq iter.Seq[T]) *Map32[T] {
	data := palette.FromSeq(defaultPaletteHint, seq)
	if data.Len() != Volume32 {
		panic(fmt.Sprintf("cube: Map32 needs %d values, got %d", Volume32, data.Len()))
	}

	return &Map32[T]{data: data}
}

// Map32FromPalette wraps an existing palette vector, typically one rebuilt by
// a decoder. The vector is owned by the cube afterwards.
//
// Returns ErrInvalidPalette if the vector does not hold exactly Volume32 slots.
func Map32FromPalette[T comparable](data *palette.Vector[T]) (*Map32[T], error) {
	if data == nil || data.Len() != Volume32 {
		return nil, fmt.Errorf("%w: Map32 needs %d slots", errs.ErrInvalidPalette, Volume32)
	}

	return &Map32[T]{data: data}, nil
}

// Get returns the value at (x, y, z).
func (m *Map32[T]) Get(x, y, z int) T {
	return m.data.Get(int(Encode32(x, y, z)))
}

// Set stores value at (x, y, z).
func (m *Map32[T]) Set(x, y, z int, value T) {
	m.data.Set(int(Encode32(x, y, z)), value)
}

// At returns the value at a linear index.
func (m *Map32[T]) At(i Index32) T {
	return m.data.Get(int(i))
}

// SetAt stores value at a linear index.
func (m *Map32[T]) SetAt(i Index32, value T) {
	m.data.Set(int(i), value)
}

// Update replaces the value at (x, y, z) with fn applied to it.
func (m *Map32[T]) Update(x, y, z int, fn func(T) T) {
	m.data.Update(int(Encode32(x, y, z)), fn)
}

// IdenticalEntry returns a pointer to the palette entry used by (x, y, z).
func (m *Map32[T]) IdenticalEntry(x, y, z int) *T {
	return m.data.PaletteEntry(int(Encode32(x, y, z)))
}

// ReplaceIdentical changes the value of (x, y, z) and of every cell sharing
// its palette entry.
func (m *Map32[T]) ReplaceIdentical(x, y, z int, value T) {
	m.data.ReplaceIdentical(int(Encode32(x, y, z)), value)
}

// Fill sets every cell to value.
func (m *Map32[T]) Fill(value T) {
	m.data.Fill(value)
}

// Len returns Volume32.
func (m *Map32[T]) Len() int {
	return m.data.Len()
}

// PaletteLen returns the number of distinct palette entries.
func (m *Map32[T]) PaletteLen() int {
	return m.data.PaletteLen()
}

// Palette returns the palette entries in first-seen order. It must not be modified.
func (m *Map32[T]) Palette() []T {
	return m.data.Palette()
}

// Vector returns the underlying palette vector.
func (m *Map32[T]) Vector() *palette.Vector[T] {
	return m.data
}

// Clone returns a deep copy of the cube.
func (m *Map32[T]) Clone() *Map32[T] {
	return &Map32[T]{data: m.data.Clone()}
}

// All returns an iterator over every cell with its index, y-outer, z-middle,
// x-inner.
func (m *Map32[T]) All() iter.Seq2[Index32, T] {
	return func(yield func(Index32, T) bool) {
		i := Index32(0)
		for value := range m.data.All() {
			if !yield(i, value) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over every cell value in linear index order.
func (m *Map32[T]) Values() iter.Seq[T] {
	return m.data.All()
}

func checkCoords(x, y, z, size int) {
	if uint(x) >= uint(size) || uint(y) >= uint(size) || uint(z) >= uint(size) {
		panic(fmt.Sprintf("cube: coordinate (%d, %d, %d) out of range [0, %d)", x, y, z, size))
	}
}
