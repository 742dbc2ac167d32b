package palette

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpal/bitpack"
	"github.com/arloliu/voxpal/errs"
)

type block struct {
	id   uint16
	meta uint8
}

func TestNew_GrowsIndexWidth(t *testing.T) {
	p := New[int]()
	for i := range 2 {
		p.Push(i)
	}
	require.Equal(t, 2, p.PaletteLen())
	// there is a minimum of 4 bits
	require.Equal(t, uint64(0xF), p.Indices().MaxValue())

	for i := 2; i < 18; i++ {
		p.Push(i)
	}
	require.Equal(t, 18, p.PaletteLen())
	require.Equal(t, uint64(0x1F), p.Indices().MaxValue())

	for i := range 18 {
		require.Equal(t, i, p.Get(i))
	}
}

func TestWithCapacity_IndexWidth(t *testing.T) {
	tests := []struct {
		hint  int
		width int
	}{
		{0, 4},
		{1, 4},
		{16, 4},
		{17, 5},
		{32, 5},
		{33, 6},
		{256, 8},
		{1000, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.width, WithCapacity[int](tt.hint, 0).IndexWidth(), "hint %d", tt.hint)
	}
}

func TestVector_Dedup(t *testing.T) {
	t.Run("same value at two slots", func(t *testing.T) {
		p := Filled(4, 8, block{})
		p.Set(2, block{id: 7})
		p.Set(5, block{id: 7})

		assert.Equal(t, 2, p.PaletteLen())
		assert.Equal(t, block{id: 7}, p.Get(2))
		assert.Equal(t, block{id: 7}, p.Get(5))
	})

	t.Run("order independent", func(t *testing.T) {
		for _, order := range [][]int{{0, 1}, {1, 0}} {
			p := WithCapacity[string](4, 2)
			p.Push("")
			p.Push("")
			for _, i := range order {
				p.Set(i, "stone")
			}
			// "" stays as the first palette entry
			assert.Equal(t, []string{"", "stone"}, p.Palette())
		}
	})

	t.Run("push reuses entries", func(t *testing.T) {
		p := New[string]()
		for _, s := range []string{"air", "stone", "air", "dirt", "stone", "air"} {
			p.Push(s)
		}

		assert.Equal(t, []string{"air", "stone", "dirt"}, p.Palette())
		assert.Equal(t, []string{"air", "stone", "air", "dirt", "stone", "air"}, slices.Collect(p.All()))
	})
}

func TestVector_MigrationBoundary(t *testing.T) {
	t.Run("2^W distinct values migrate once", func(t *testing.T) {
		p := New[int]()
		require.Equal(t, 4, p.IndexWidth())

		for i := range 16 {
			p.Push(i)
		}

		assert.Equal(t, 1, p.Migrations())
		assert.Equal(t, 5, p.IndexWidth())
		for i := range 16 {
			assert.Equal(t, i, p.Get(i))
		}
	})

	t.Run("below the boundary no migration", func(t *testing.T) {
		p := New[int]()
		for i := range 15 {
			p.Push(i)
		}

		assert.Zero(t, p.Migrations())
		assert.Equal(t, 4, p.IndexWidth())
	})

	t.Run("set on a filled vector", func(t *testing.T) {
		p := Filled(16, 4096, 0)
		require.Equal(t, FilledIndexWidth, p.IndexWidth())

		for i := 1; i < 300; i++ {
			p.Set(i*13, i)
		}

		assert.Equal(t, 300, p.PaletteLen())
		assert.Equal(t, 9, p.IndexWidth())
		// 1->2, 2->3, 3->4, 4->5, 5->6, 6->7, 7->8, 8->9
		assert.Equal(t, 8, p.Migrations())

		for i := range 4096 {
			want := 0
			if i%13 == 0 && i > 0 && i/13 < 300 {
				want = i / 13
			}
			require.Equal(t, want, p.Get(i), "slot %d", i)
		}
	})

	t.Run("rewriting known values never migrates", func(t *testing.T) {
		p := Filled(4, 64, "a")
		p.Set(0, "b")
		before := p.Migrations()

		for i := range 64 {
			p.Set(i, []string{"a", "b"}[i%2])
		}
		assert.Equal(t, before, p.Migrations())
	})
}

func TestFilled(t *testing.T) {
	p := Filled(16, 4096, block{id: 1})

	assert.Equal(t, 4096, p.Len())
	assert.Equal(t, 1, p.PaletteLen())
	assert.Equal(t, 1, p.IndexWidth())
	assert.Equal(t, 512, p.PackedSize())

	for v := range p.All() {
		require.Equal(t, block{id: 1}, v)
	}
}

func TestVector_Update(t *testing.T) {
	p := Filled(4, 4, block{id: 1})
	p.Update(2, func(b block) block {
		b.meta = 3
		return b
	})

	assert.Equal(t, block{id: 1}, p.Get(0))
	assert.Equal(t, block{id: 1, meta: 3}, p.Get(2))
	assert.Equal(t, 2, p.PaletteLen())
}

func TestVector_AliasingMutation(t *testing.T) {
	t.Run("palette entry pointer", func(t *testing.T) {
		p := Filled(4, 6, block{id: 1})
		p.Set(4, block{id: 2})

		p.PaletteEntry(0).meta = 9

		for i := range 6 {
			if i == 4 {
				assert.Equal(t, block{id: 2}, p.Get(i))
				continue
			}
			assert.Equal(t, block{id: 1, meta: 9}, p.Get(i))
		}
		assert.Equal(t, 2, p.PaletteLen())
	})

	t.Run("replace identical", func(t *testing.T) {
		p := FromSeq(4, slices.Values([]string{"grass", "dirt", "grass", "grass"}))
		p.ReplaceIdentical(2, "snow")

		assert.Equal(t, []string{"snow", "dirt", "snow", "snow"}, slices.Collect(p.All()))
		assert.Equal(t, []string{"snow", "dirt"}, p.Palette())
	})

	t.Run("replacing with an existing value keeps first match", func(t *testing.T) {
		p := FromSeq(4, slices.Values([]string{"a", "b"}))
		p.ReplaceIdentical(1, "a")
		p.Push("a")

		assert.Equal(t, []string{"a", "a"}, p.Palette())
		assert.Equal(t, uint64(0), p.Indices().Get(2))
	})
}

func TestVector_Fill(t *testing.T) {
	p := FromSeq(4, slices.Values([]int{1, 2, 3, 4, 5}))
	p.Fill(9)

	assert.Equal(t, 5, p.Len())
	assert.Equal(t, []int{9}, p.Palette())
	assert.Equal(t, []int{9, 9, 9, 9, 9}, slices.Collect(p.All()))
}

func TestVector_Bounds(t *testing.T) {
	p := Filled(4, 4, 0)

	require.Panics(t, func() { p.Get(4) })
	require.Panics(t, func() { p.Set(4, 1) })
	require.Panics(t, func() { p.Set(-1, 1) })
	// a rejected write must not leak into the palette
	assert.Equal(t, 1, p.PaletteLen())
}

func TestVector_PaletteNeverShrinks(t *testing.T) {
	p := Filled(4, 4, "air")
	p.Set(0, "stone")
	p.Set(0, "air")

	assert.Equal(t, []string{"air", "stone"}, p.Palette())
}

func TestVector_Clone(t *testing.T) {
	p := FromSeq(4, slices.Values([]int{1, 2, 1}))
	c := p.Clone()
	c.Set(0, 5)
	c.ReplaceIdentical(1, 7)

	assert.Equal(t, []int{1, 2, 1}, slices.Collect(p.All()))
	assert.Equal(t, []int{5, 7, 1}, slices.Collect(c.All()))
}

func TestFromParts(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		src := FromSeq(4, slices.Values([]string{"a", "b", "a", "c"}))

		indices, err := bitpack.FromWords(src.IndexWidth(), src.Len(), src.Indices().Words())
		require.NoError(t, err)

		p, err := FromParts(src.Palette(), indices)
		require.NoError(t, err)
		assert.Equal(t, slices.Collect(src.All()), slices.Collect(p.All()))

		p.Set(0, "d")
		assert.Len(t, src.Palette(), 3, "palette is copied")
	})

	t.Run("index out of palette", func(t *testing.T) {
		indices := bitpack.FromSeq(4, slices.Values([]uint64{0, 1, 2}))
		_, err := FromParts([]string{"a", "b"}, indices)
		require.ErrorIs(t, err, errs.ErrInvalidPalette)
	})

	t.Run("palette too large for width", func(t *testing.T) {
		indices := bitpack.FromSeq(1, slices.Values([]uint64{0, 1}))
		_, err := FromParts([]string{"a", "b"}, indices)
		require.ErrorIs(t, err, errs.ErrInvalidPalette)
	})

	t.Run("empty palette with slots", func(t *testing.T) {
		_, err := FromParts([]string{}, bitpack.Filled(4, 2, 0))
		require.ErrorIs(t, err, errs.ErrInvalidPalette)
	})

	t.Run("nil indices", func(t *testing.T) {
		_, err := FromParts([]string{"a"}, nil)
		require.ErrorIs(t, err, errs.ErrInvalidPalette)
	})
}
