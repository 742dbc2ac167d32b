// Package palette implements palette compression on top of a bit-packed
// index array.
//
// A Vector[T] stores each distinct value once, in first-seen order, in a
// palette. Every logical slot holds a small integer index into that palette,
// packed into a bitpack.Vector just wide enough to address it. Voxel data is
// dominated by a handful of repeated values (air, stone, dirt), so a 4096-slot
// section with eight distinct tiles costs 2 KiB of indices instead of 4096
// full values.
//
// Writes look the value up with a linear scan of the palette. Palettes are
// expected to stay in the tens of entries, where a scan beats hashing. When a
// new distinct value no longer fits the current index width, every index is
// re-packed at the wider width (a width migration). Palette entries are never
// removed, even when no slot refers to them any more.
//
// # Aliasing Mutation
//
// PaletteEntry and ReplaceIdentical modify a palette entry in place, which
// changes the value observed at every slot mapped to that entry. Slot-local
// writes go through Set and Update. Neither kind of mutation is safe to run
// concurrently with any other access to the same Vector.
package palette

import (
	"fmt"
	"iter"
	"math/bits"
	"slices"

	"github.com/arloliu/voxpal/bitpack"
	"github.com/arloliu/voxpal/errs"
)

const (
	// MinIndexWidth is the narrowest index width a Vector starts with. Sixteen
	// palette slots leave room for a few distinct values before the first
	// migration.
	MinIndexWidth = 4

	// FilledIndexWidth is the index width of a vector created by Filled.
	FilledIndexWidth = 1

	// DefaultPaletteCapacity is the palette size hint used by New.
	DefaultPaletteCapacity = 4

	// DefaultLengthCapacity is the slot capacity hint used by New.
	DefaultLengthCapacity = 16
)

// Vector is a compressed array of T where repeated values share one palette entry.
//
// The zero value of T is treated as the default value.
type Vector[T comparable] struct {
	palette    []T
	indices    *bitpack.Vector
	migrations int
}

// New creates an empty vector with default capacity hints.
func New[T comparable]() *Vector[T] {
	return WithCapacity[T](DefaultPaletteCapacity, DefaultLengthCapacity)
}

// WithCapacity creates an empty vector.
//
// Parameters:
//   - paletteHint: expected number of distinct values; selects the initial
//     index width as ceil(log2(paletteHint)), at least MinIndexWidth bits
//   - lengthHint: expected number of slots to preallocate
func WithCapacity[T comparable](paletteHint int, lengthHint int) *Vector[T] {
	return &Vector[T]{
		palette: make([]T, 0, max(paletteHint, 1)),
		indices: bitpack.WithCapacity(indexWidthFor(paletteHint), lengthHint),
	}
}

// Filled creates a vector of length slots that all hold value.
//
// The palette starts as [value] and the indices start one bit wide, zero
// filled a word at a time, so a uniform vector costs one bit per slot and
// this is much cheaper than length individual writes. paletteHint only sizes
// the palette slice; the index width grows through migrations.
func Filled[T comparable](paletteHint int, length int, value T) *Vector[T] {
	v := &Vector[T]{
		palette: make([]T, 1, max(paletteHint, 1)),
		indices: bitpack.Filled(FilledIndexWidth, length, 0),
	}
	v.palette[0] = value

	return v
}

// FromSeq creates a vector holding every value produced by seq, in order.
func FromSeq[T comparable](paletteHint int, seq iter.Seq[T]) *Vector[T] {
	v := WithCapacity[T](paletteHint, DefaultLengthCapacity)
	for value := range seq {
		v.Push(value)
	}

	return v
}

// FromParts assembles a vector from a palette and an index array, typically
// read back from storage. The palette is copied; indices is taken over by the
// vector and must not be used by the caller afterwards.
//
// Returns ErrInvalidPalette if any index points outside the palette, or if
// the palette is too large for the index width to keep growing.
//
// Equal palette entries are accepted: ReplaceIdentical can leave two entries
// with the same value, and a vector saved in that state must load back with
// the same slot-to-entry mapping. Later writes of that value use the first
// entry.
func FromParts[T comparable](palette []T, indices *bitpack.Vector) (*Vector[T], error) {
	if indices == nil {
		return nil, fmt.Errorf("%w: nil index array", errs.ErrInvalidPalette)
	}
	if uint64(len(palette)) > indices.MaxValue() {
		return nil, fmt.Errorf("%w: %d palette entries for %d-bit indices",
			errs.ErrInvalidPalette, len(palette), indices.Width())
	}
	for i, index := range enumerate(indices.All()) {
		if index >= uint64(len(palette)) {
			return nil, fmt.Errorf("%w: slot %d refers to entry %d of %d",
				errs.ErrInvalidPalette, i, index, len(palette))
		}
	}

	return &Vector[T]{
		palette: slices.Clone(palette),
		indices: indices,
	}, nil
}

// Len returns the number of logical slots.
func (v *Vector[T]) Len() int {
	return v.indices.Len()
}

// PaletteLen returns the number of distinct palette entries.
func (v *Vector[T]) PaletteLen() int {
	return len(v.palette)
}

// IndexWidth returns the current number of bits per slot.
func (v *Vector[T]) IndexWidth() int {
	return v.indices.Width()
}

// Migrations returns how many times the index array was re-packed at a wider width.
func (v *Vector[T]) Migrations() int {
	return v.migrations
}

// PackedSize returns the number of bytes used by the packed index array.
func (v *Vector[T]) PackedSize() int {
	return v.indices.SizeBytes()
}

// Palette returns the distinct values in first-seen order.
//
// The returned slice aliases the vector's palette and must not be modified;
// use ReplaceIdentical to change an entry.
func (v *Vector[T]) Palette() []T {
	return v.palette
}

// Indices returns the packed index array. It must not be modified.
func (v *Vector[T]) Indices() *bitpack.Vector {
	return v.indices
}

// Get returns the value at index.
//
// Panics if index is outside [0, Len()).
func (v *Vector[T]) Get(index int) T {
	return v.palette[v.indices.Get(index)]
}

// Set stores value at index, adding it to the palette if it is new.
//
// Panics if index is outside [0, Len()).
func (v *Vector[T]) Set(index int, value T) {
	if index < 0 || index >= v.indices.Len() {
		panic(fmt.Sprintf("palette: index %d out of range [0, %d)", index, v.indices.Len()))
	}

	v.indices.Set(index, v.paletteIndex(value))
}

// Push appends value as a new slot, adding it to the palette if it is new.
func (v *Vector[T]) Push(value T) {
	v.indices.Push(v.paletteIndex(value))
}

// Update replaces the value at index with fn applied to it. Only that slot
// changes, even if other slots share the same palette entry.
func (v *Vector[T]) Update(index int, fn func(T) T) {
	v.Set(index, fn(v.Get(index)))
}

// PaletteEntry returns a pointer to the palette entry used by the slot at
// index. Writing through it changes the value of every slot that shares the
// entry.
//
// The pointer is valid until the next Set, Push, Update or Fill, any of which
// may reallocate the palette. Writing a value equal to another entry leaves
// two equal entries; later writes of that value use the first one.
func (v *Vector[T]) PaletteEntry(index int) *T {
	return &v.palette[v.indices.Get(index)]
}

// ReplaceIdentical overwrites the palette entry used by the slot at index,
// changing the value of every slot that shares the entry.
func (v *Vector[T]) ReplaceIdentical(index int, value T) {
	*v.PaletteEntry(index) = value
}

// Fill resets every slot to value and the palette to [value]. The index width
// is kept.
func (v *Vector[T]) Fill(value T) {
	clear(v.palette)
	v.palette = append(v.palette[:0], value)
	v.indices.Fill(v.indices.Len(), 0)
}

// Clone returns a deep copy that shares no storage with v.
func (v *Vector[T]) Clone() *Vector[T] {
	return &Vector[T]{
		palette:    slices.Clone(v.palette),
		indices:    v.indices.Clone(),
		migrations: v.migrations,
	}
}

// All returns an iterator over the slot values in index order. It can be
// restarted and used by several readers at once while nothing writes.
func (v *Vector[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range v.indices.All() {
			if !yield(v.palette[index]) {
				return
			}
		}
	}
}

// paletteIndex returns the palette position of value, appending it and
// widening the indices first when it is new.
func (v *Vector[T]) paletteIndex(value T) uint64 {
	if p := slices.Index(v.palette, value); p >= 0 {
		return uint64(p)
	}

	v.palette = append(v.palette, value)
	if n := uint64(len(v.palette)); n > v.indices.MaxValue() {
		v.indices = v.indices.ResizedCopy(bits.Len64(n))
		v.migrations++
	}

	return uint64(len(v.palette) - 1)
}

func indexWidthFor(paletteHint int) int {
	if paletteHint <= 1 {
		return MinIndexWidth
	}

	return min(max(MinIndexWidth, bits.Len(uint(paletteHint-1))), bitpack.WordBits)
}

func enumerate[V any](seq iter.Seq[V]) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}
