package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpal/tile"
)

func TestNew(t *testing.T) {
	c := New()

	assert.Zero(t, c.PopulatedMask())
	assert.Equal(t, Position{}, c.Position())
	for i := range SectionCount {
		assert.True(t, c.Section(i).IsEmpty())
	}
}

func TestFilled(t *testing.T) {
	t.Run("void", func(t *testing.T) {
		c := Filled(tile.Void())
		assert.Zero(t, c.PopulatedMask())
	})

	t.Run("stone", func(t *testing.T) {
		c := Filled(tile.New(1))
		assert.Equal(t, uint16(0xFFFF), c.PopulatedMask())
		assert.Equal(t, SectionCount, c.PopulatedCount())
		assert.Equal(t, tile.New(1), c.Get(0, 255, 0))
	})
}

func TestRandomized(t *testing.T) {
	c := Randomized(newRand())

	assert.Equal(t, uint16(0b11), c.PopulatedMask())
	assert.Equal(t, tile.Void(), c.Get(0, 32, 0))
}

func TestChunk_Randomize(t *testing.T) {
	c := New()
	c.Randomize(newRand())

	assert.Equal(t, uint16(0x00FF), c.PopulatedMask())
}

func TestChunk_Fill(t *testing.T) {
	c := New()
	c.Set(3, 40, 3, tile.New(5))
	require.Equal(t, uint16(1<<2), c.PopulatedMask())

	c.Fill(tile.Void())
	assert.Equal(t, uint16(1<<2), c.PopulatedMask(), "populated sections stay populated")
	assert.Equal(t, tile.Void(), c.Get(3, 40, 3))

	c.Fill(tile.New(6))
	assert.Equal(t, uint16(0xFFFF), c.PopulatedMask())
	assert.Equal(t, tile.New(6), c.Get(15, 0, 15))
}

func TestChunk_SetGet(t *testing.T) {
	c := New()
	c.Set(1, 17, 2, tile.New(8))

	assert.Equal(t, tile.New(8), c.Get(1, 17, 2))
	assert.Equal(t, tile.New(8), c.Section(1).Get(1, 1, 2))
	assert.True(t, c.Section(0).IsEmpty())
	assert.Equal(t, tile.Void(), c.Get(1, 1, 2))

	c.Set(0, 200, 0, tile.Void())
	assert.True(t, c.Section(12).IsEmpty())
}

func TestChunk_OutOfRange(t *testing.T) {
	c := New()

	assert.Panics(t, func() { c.Get(0, Height, 0) })
	assert.Panics(t, func() { c.Set(0, -1, 0, tile.New(1)) })
	assert.Panics(t, func() { c.Get(16, 0, 0) })
	assert.Panics(t, func() { c.Section(SectionCount) })
}

func TestChunk_Position(t *testing.T) {
	c := New()
	c.SetPosition(Position{X: 16, Y: 0, Z: -32})

	assert.Equal(t, Position{X: 16, Y: 0, Z: -32}, c.Position())
}

func TestChunk_Sections(t *testing.T) {
	c := New()
	c.Sections()[4] = FilledSection(tile.New(2))

	assert.Equal(t, uint16(1<<4), c.PopulatedMask())
	assert.Equal(t, tile.New(2), c.Get(0, 64, 0))
}

func TestChunk_Clone(t *testing.T) {
	c := Randomized(newRand())
	c.SetPosition(Position{X: 1})
	clone := c.Clone()
	clone.Set(0, 0, 0, tile.New(99))

	assert.Equal(t, c.Position(), clone.Position())
	assert.NotEqual(t, tile.New(99), c.Get(0, 0, 0))
	assert.Equal(t, c.Get(5, 5, 5), clone.Get(5, 5, 5))
}
