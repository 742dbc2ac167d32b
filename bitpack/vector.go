// Package bitpack provides a vector of fixed-width unsigned integers packed
// into 64-bit words.
//
// A Vector with an item width of W bits stores floor(64/W) values per word.
// Value i lives in word i/perWord, starting at bit (i%perWord)*W, and values
// never straddle a word boundary. Widths that do not divide 64 leave the top
// 64%W bits of every word unused: a 7-bit vector stores 9 values per word
// using 63 bits.
//
// This is the same layout Minecraft uses for block state long arrays since
// version 1.16, so the words of a Vector can be handed to any reader of that
// format as-is.
//
// # Failure Semantics
//
// An index outside [0, Len()), a value wider than MaxValue(), or a width
// outside [1, 64] is a caller bug and panics. The only error-returning
// constructor is FromWords, which validates data that came from outside the
// process.
//
// # Thread Safety
//
// A Vector is not safe for concurrent mutation. Any number of goroutines may
// read or iterate it concurrently as long as nothing mutates it meanwhile.
package bitpack

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/voxpal/errs"
)

const (
	// WordBits is the number of bits in one storage word.
	WordBits = 64

	// DefaultCapacity is the element capacity preallocated by New.
	DefaultCapacity = 16
)

// Vector is a growable array of unsigned integers, each Width() bits wide.
type Vector struct {
	words    []uint64
	maxValue uint64
	width    int
	perWord  int
	length   int
}

// New creates an empty vector of width-bit integers.
func New(width int) *Vector {
	return WithCapacity(width, DefaultCapacity)
}

// WithCapacity creates an empty vector of width-bit integers with room for
// capacity elements before the word slice has to grow.
//
// Panics if width is 0 or greater than 64.
func WithCapacity(width int, capacity int) *Vector {
	checkWidth(width)

	perWord := WordBits / width

	return &Vector{
		words:    make([]uint64, 0, wordsFor(capacity, perWord)),
		maxValue: maxValueFor(width),
		width:    width,
		perWord:  perWord,
	}
}

// Filled creates a vector holding length copies of value.
//
// Panics if width is invalid or value does not fit in width bits.
func Filled(width int, length int, value uint64) *Vector {
	v := WithCapacity(width, length)
	v.Fill(length, value)

	return v
}

// FromSeq packs every value produced by seq into a new width-bit vector.
//
// Panics if width is invalid or any value does not fit in width bits.
func FromSeq(width int, seq iter.Seq[uint64]) *Vector {
	v := New(width)
	for value := range seq {
		v.Push(value)
	}

	return v
}

// FromWords rebuilds a vector from words produced by Words().
//
// The words slice is copied. It must hold exactly the number of words needed
// for length width-bit values.
//
// Returns:
//   - *Vector: the rebuilt vector
//   - error: ErrInvalidPackedData if width is out of range, length is negative,
//     the word count does not match, or the last word has bits set past the
//     final value
func FromWords(width int, length int, words []uint64) (*Vector, error) {
	if width < 1 || width > WordBits {
		return nil, fmt.Errorf("%w: width %d", errs.ErrInvalidPackedData, width)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: length %d", errs.ErrInvalidPackedData, length)
	}

	perWord := WordBits / width
	want := wordsFor(length, perWord)
	if len(words) != want {
		return nil, fmt.Errorf("%w: %d words for %d values of %d bits, want %d",
			errs.ErrInvalidPackedData, len(words), length, width, want)
	}
	// Push ORs into the last word, so bits past the last value must be clear.
	if rest := length % perWord; rest > 0 && words[want-1]>>(rest*width) != 0 {
		return nil, fmt.Errorf("%w: non-zero padding in last word", errs.ErrInvalidPackedData)
	}

	return &Vector{
		words:    append(make([]uint64, 0, want), words...),
		maxValue: maxValueFor(width),
		width:    width,
		perWord:  perWord,
		length:   length,
	}, nil
}

// Len returns the number of stored values.
func (v *Vector) Len() int {
	return v.length
}

// IsEmpty reports whether the vector holds no values.
func (v *Vector) IsEmpty() bool {
	return v.length == 0
}

// Width returns the number of bits per value.
func (v *Vector) Width() int {
	return v.width
}

// MaxValue returns the largest value that fits in Width() bits.
func (v *Vector) MaxValue() uint64 {
	return v.maxValue
}

// PerWord returns how many values are packed into each 64-bit word.
func (v *Vector) PerWord() int {
	return v.perWord
}

// Words returns the packed storage words.
//
// The returned slice aliases the vector's storage and must not be modified.
// Bits past the last value are always zero.
func (v *Vector) Words() []uint64 {
	return v.words
}

// SizeBytes returns the number of bytes used by the packed words.
func (v *Vector) SizeBytes() int {
	return len(v.words) * 8
}

// Get returns the value at index.
//
// Panics if index is outside [0, Len()).
func (v *Vector) Get(index int) uint64 {
	v.checkIndex(index)
	word, shift := v.locate(index)

	return (v.words[word] >> shift) & v.maxValue
}

// Set replaces the value at index.
//
// Panics if index is outside [0, Len()) or value is greater than MaxValue().
func (v *Vector) Set(index int, value uint64) {
	v.checkIndex(index)
	v.checkValue(value)
	word, shift := v.locate(index)

	v.words[word] = v.words[word]&^(v.maxValue<<shift) | value<<shift
}

// Push appends value, allocating a new word when the previous one is full.
//
// Panics if value is greater than MaxValue().
func (v *Vector) Push(value uint64) {
	v.checkValue(value)

	word, shift := v.locate(v.length)
	if word == len(v.words) {
		v.words = append(v.words, 0)
	}
	v.words[word] |= value << shift
	v.length++
}

// Clear removes all values but keeps the allocated words.
func (v *Vector) Clear() {
	clear(v.words)
	v.words = v.words[:0]
	v.length = 0
}

// Fill resets the vector to length copies of value.
//
// Whole words are written at a time, so filling costs O(length/PerWord()).
//
// Panics if value is greater than MaxValue().
func (v *Vector) Fill(length int, value uint64) {
	v.checkValue(value)
	if length < 0 {
		panic(fmt.Sprintf("bitpack: negative fill length %d", length))
	}

	v.Clear()
	v.length = length
	if length == 0 {
		return
	}

	var pattern uint64
	for i := range v.perWord {
		pattern |= value << (i * v.width)
	}

	full, rest := length/v.perWord, length%v.perWord
	for range full {
		v.words = append(v.words, pattern)
	}
	if rest > 0 {
		v.words = append(v.words, pattern&(1<<(rest*v.width)-1))
	}
}

// ResizedCopy returns a new vector holding the same values packed at width
// bits each. The receiver is left untouched.
//
// Panics if width is invalid or any value does not fit in width bits.
func (v *Vector) ResizedCopy(width int) *Vector {
	resized := WithCapacity(width, v.length)
	for value := range v.All() {
		resized.Push(value)
	}

	return resized
}

// Clone returns a deep copy of the vector.
func (v *Vector) Clone() *Vector {
	c := *v
	c.words = append(make([]uint64, 0, cap(v.words)), v.words...)

	return &c
}

// All returns an iterator over the stored values in index order.
//
// The iterator walks the words directly instead of calling Get per element,
// and can be restarted any number of times.
func (v *Vector) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		remaining := v.length
		for _, word := range v.words {
			n := min(remaining, v.perWord)
			for range n {
				if !yield(word & v.maxValue) {
					return
				}
				word >>= v.width
			}
			remaining -= n
		}
	}
}

// String returns a short description for debugging.
func (v *Vector) String() string {
	return fmt.Sprintf("bitpack.Vector{width: %d, len: %d, words: %d}", v.width, v.length, len(v.words))
}

func (v *Vector) locate(index int) (word int, shift int) {
	word = index / v.perWord

	return word, (index - word*v.perWord) * v.width
}

func (v *Vector) checkIndex(index int) {
	if index < 0 || index >= v.length {
		panic(fmt.Sprintf("bitpack: index %d out of range [0, %d)", index, v.length))
	}
}

func (v *Vector) checkValue(value uint64) {
	if value > v.maxValue {
		panic(fmt.Sprintf("bitpack: value %d exceeds %d-bit maximum %d", value, v.width, v.maxValue))
	}
}

func checkWidth(width int) {
	if width < 1 || width > WordBits {
		panic(fmt.Sprintf("bitpack: item width %d out of range [1, %d]", width, WordBits))
	}
}

// maxValueFor avoids computing 1<<64, which would wrap to zero.
func maxValueFor(width int) uint64 {
	if width == WordBits {
		return math.MaxUint64
	}

	return 1<<width - 1
}

func wordsFor(count int, perWord int) int {
	if count <= 0 {
		return 0
	}

	return (count + perWord - 1) / perWord
}
