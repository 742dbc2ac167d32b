package chunk

import (
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/arloliu/voxpal/cube"
	"github.com/arloliu/voxpal/tile"
)

const (
	// SectionCount is the number of sections in a chunk.
	SectionCount = 16
	// Height is the number of tiles in a chunk column.
	Height = SectionCount * cube.Size16

	randomizedSections = 2
	randomizeSections  = 8
)

// Position is the world position of a chunk.
type Position struct {
	X, Y, Z float32
}

// Chunk is a 16x256x16 column of tiles made of SectionCount sections. The
// zero value is an all-void chunk at the origin.
type Chunk struct {
	position Position
	sections [SectionCount]Section
}

// New returns an all-void chunk.
func New() *Chunk {
	return &Chunk{}
}

// Filled returns a chunk where every tile is ts. A void ts allocates nothing.
func Filled(ts tile.State) *Chunk {
	c := New()
	for i := range c.sections {
		c.sections[i] = FilledSection(ts)
	}

	return c
}

// Randomized returns a chunk whose two lowest sections hold random tiles and
// whose remaining sections are void.
func Randomized(r *rand.Rand) *Chunk {
	c := New()
	for i := range randomizedSections {
		c.sections[i] = RandomizedSection(r)
	}

	return c
}

// Fill sets every tile in the chunk to ts. Void sections stay void when ts is void.
func (c *Chunk) Fill(ts tile.State) {
	for i := range c.sections {
		c.sections[i].Fill(ts)
	}
}

// Randomize overwrites the lower eight sections with random tiles.
func (c *Chunk) Randomize(r *rand.Rand) {
	for i := range randomizeSections {
		c.sections[i].Randomize(r)
	}
}

// Position returns the chunk's world position.
func (c *Chunk) Position() Position {
	return c.position
}

// SetPosition moves the chunk.
func (c *Chunk) SetPosition(p Position) {
	c.position = p
}

// Section returns section i, counted from the bottom.
//
// Panics if i is outside [0, SectionCount).
func (c *Chunk) Section(i int) *Section {
	if i < 0 || i >= SectionCount {
		panic(fmt.Sprintf("chunk: section %d out of range [0, %d)", i, SectionCount))
	}

	return &c.sections[i]
}

// Sections returns all sections, bottom first.
func (c *Chunk) Sections() *[SectionCount]Section {
	return &c.sections
}

// Get returns the tile at chunk-local (x, y, z), with y in [0, Height).
func (c *Chunk) Get(x, y, z int) tile.State {
	s, sy := c.locate(y)
	return s.Get(x, sy, z)
}

// Set stores ts at chunk-local (x, y, z), with y in [0, Height).
func (c *Chunk) Set(x, y, z int, ts tile.State) {
	s, sy := c.locate(y)
	s.Set(x, sy, z, ts)
}

// PopulatedMask returns a bit set with bit i set when section i owns storage.
func (c *Chunk) PopulatedMask() uint16 {
	var mask uint16
	for i := range c.sections {
		if !c.sections[i].IsEmpty() {
			mask |= 1 << i
		}
	}

	return mask
}

// PopulatedCount returns the number of sections that own storage.
func (c *Chunk) PopulatedCount() int {
	return bits.OnesCount16(c.PopulatedMask())
}

// Clone returns a deep copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	clone := &Chunk{position: c.position}
	for i := range c.sections {
		clone.sections[i] = c.sections[i].Clone()
	}

	return clone
}

func (c *Chunk) locate(y int) (*Section, int) {
	if y < 0 || y >= Height {
		panic(fmt.Sprintf("chunk: y %d out of range [0, %d)", y, Height))
	}

	return &c.sections[y/cube.Size16], y % cube.Size16
}
