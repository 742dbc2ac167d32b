package chunk

import (
	"iter"
	"math/rand/v2"

	"github.com/arloliu/voxpal/cube"
	"github.com/arloliu/voxpal/tile"
)

// randomWeights is the tile distribution used by the randomizers: out of 363
// draws, 360 are tile 1 and void, tile 2 and tile 3 get one each.
var randomWeights = struct {
	total int
	cut   [3]int
}{
	total: 363,
	cut:   [3]int{1, 361, 362},
}

// Section is a 16x16x16 block of tiles. The zero value is a void section.
type Section struct {
	cube *cube.Map16[tile.State]
}

// VoidSection returns a section that holds only void tiles and no storage.
func VoidSection() Section {
	return Section{}
}

// FilledSection returns a section where every tile is ts. tile.Void() yields a
// void section without allocating; a void id carrying a format is a distinct
// state and is stored.
func FilledSection(ts tile.State) Section {
	if ts == tile.Void() {
		return VoidSection()
	}

	return Section{cube: cube.FilledMap16(ts)}
}

// RandomizedSection returns a populated section of random tiles, mostly tile 1.
// It is meant for tests, benchmarks and demo worlds.
func RandomizedSection(r *rand.Rand) Section {
	return Section{cube: cube.Map16FromSeq(randomTiles(r, cube.Volume16))}
}

// SectionFromCube wraps an existing cube, typically one rebuilt by a decoder.
// A nil cube yields a void section.
func SectionFromCube(c *cube.Map16[tile.State]) Section {
	return Section{cube: c}
}

// Cube returns the backing cube, or nil if the section is void.
func (s *Section) Cube() *cube.Map16[tile.State] {
	return s.cube
}

// CubeMut returns the backing cube, allocating a void-filled one first if the
// section is void.
func (s *Section) CubeMut() *cube.Map16[tile.State] {
	if s.cube == nil {
		s.cube = cube.FilledMap16(tile.Void())
	}

	return s.cube
}

// IsEmpty reports whether the section is void and owns no storage.
func (s *Section) IsEmpty() bool {
	return s.cube == nil
}

// Get returns the tile at (x, y, z), section-local.
func (s *Section) Get(x, y, z int) tile.State {
	if s.cube == nil {
		cube.Encode16(x, y, z) // bounds check
		return tile.Void()
	}

	return s.cube.Get(x, y, z)
}

// Set stores ts at (x, y, z), section-local. Writing tile.Void() into a void
// section does nothing.
func (s *Section) Set(x, y, z int, ts tile.State) {
	if s.cube == nil && ts == tile.Void() {
		cube.Encode16(x, y, z) // bounds check
		return
	}

	s.CubeMut().Set(x, y, z, ts)
}

// Fill sets every tile to ts.
//
// A populated section filled with tile.Void() keeps its cube, now holding
// only void, and is still reported (and persisted) as populated. Only a
// section that was never materialized stays storage-free.
func (s *Section) Fill(ts tile.State) {
	if s.cube == nil && ts == tile.Void() {
		return
	}

	s.CubeMut().Fill(ts)
}

// Randomize overwrites every tile with a random one, populating the section.
func (s *Section) Randomize(r *rand.Rand) {
	c := s.CubeMut()
	i := cube.Index16(0)
	for ts := range randomTiles(r, cube.Volume16) {
		c.SetAt(i, ts)
		i++
	}
}

// PaletteLen returns the number of distinct tile states in the section, 0 if
// it is void.
func (s *Section) PaletteLen() int {
	if s.cube == nil {
		return 0
	}

	return s.cube.PaletteLen()
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() Section {
	if s.cube == nil {
		return Section{}
	}

	return Section{cube: s.cube.Clone()}
}

func randomTiles(r *rand.Rand, n int) iter.Seq[tile.State] {
	return func(yield func(tile.State) bool) {
		for range n {
			if !yield(randomTile(r)) {
				return
			}
		}
	}
}

func randomTile(r *rand.Rand) tile.State {
	n := r.IntN(randomWeights.total)
	switch {
	case n < randomWeights.cut[0]:
		return tile.Void()
	case n < randomWeights.cut[1]:
		return tile.New(1)
	case n < randomWeights.cut[2]:
		return tile.New(2)
	default:
		return tile.New(3)
	}
}
