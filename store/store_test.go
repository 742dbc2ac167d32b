package store

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpal/chunk"
	"github.com/arloliu/voxpal/codec"
	"github.com/arloliu/voxpal/errs"
	"github.com/arloliu/voxpal/format"
	"github.com/arloliu/voxpal/tile"
)

func newTestStore(t *testing.T, opts ...codec.EncoderOption) *Store {
	t.Helper()

	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler), opts...)
	require.NoError(t, err)

	return s
}

func TestKey_FileName(t *testing.T) {
	tests := []struct {
		key  Key
		name string
	}{
		{Key{0, 0}, "c.0.0.vox"},
		{Key{3, -7}, "c.3.-7.vox"},
		{Key{-2147483648, 2147483647}, "c.-2147483648.2147483647.vox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.key.fileName())

			key, ok := parseKey(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.key, key)
		})
	}
}

func TestParseKey_Rejects(t *testing.T) {
	for _, name := range []string{
		"c.1.2.vox.tmp",
		"c.1.vox",
		"c.1.2.3.vox",
		"c.a.2.vox",
		"d.1.2.vox",
		"c.1.2.dat",
		"c.99999999999.0.vox",
	} {
		_, ok := parseKey(name)
		assert.False(t, ok, name)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for _, comp := range []format.CompressionType{format.CompressionNone, format.CompressionZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			s := newTestStore(t, codec.WithCompression(comp))

			c := chunk.Randomized(rand.New(rand.NewPCG(5, 6)))
			c.SetPosition(chunk.Position{X: 16, Z: -32})
			c.Set(4, 200, 4, tile.New(12))

			key := Key{X: 1, Z: -2}
			require.NoError(t, s.Save(key, c))
			require.FileExists(t, filepath.Join(s.Dir(), "chunks", "c.1.-2.vox"))
			require.True(t, s.Exists(key))

			loaded, err := s.Load(key)
			require.NoError(t, err)
			require.Equal(t, c.Position(), loaded.Position())
			require.Equal(t, c.PopulatedMask(), loaded.PopulatedMask())
			for x := range 16 {
				for y := range chunk.Height {
					for z := range 16 {
						require.Equal(t, c.Get(x, y, z), loaded.Get(x, y, z))
					}
				}
			}
		})
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := newTestStore(t)
	key := Key{X: 4, Z: 4}

	require.NoError(t, s.Save(key, chunk.Filled(tile.New(1))))
	require.NoError(t, s.Save(key, chunk.New()))

	loaded, err := s.Load(key)
	require.NoError(t, err)
	assert.Zero(t, loaded.PopulatedMask())

	_, err = os.Stat(s.Path(key) + tempSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist, "temp file is renamed away")
}

func TestStore_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(Key{X: 9, Z: 9})
	require.ErrorIs(t, err, errs.ErrChunkNotFound)

	err = s.Delete(Key{X: 9, Z: 9})
	require.ErrorIs(t, err, errs.ErrChunkNotFound)
	assert.False(t, s.Exists(Key{X: 9, Z: 9}))
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	key := Key{X: -1, Z: 0}

	require.NoError(t, s.Save(key, chunk.New()))
	require.NoError(t, s.Delete(key))

	_, err := s.Load(key)
	require.ErrorIs(t, err, errs.ErrChunkNotFound)
}

func TestStore_Keys(t *testing.T) {
	s := newTestStore(t)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, key := range []Key{{2, 0}, {-1, 5}, {2, -3}, {0, 0}} {
		require.NoError(t, s.Save(key, chunk.New()))
	}
	// stray files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "chunks", "notes.txt"), nil, fileMode))
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "chunks", "c.7.7.vox"), dirMode))

	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []Key{{-1, 5}, {0, 0}, {2, -3}, {2, 0}}, keys)
}

func TestStore_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	key := Key{X: 3, Z: 3}

	require.NoError(t, s.Save(key, chunk.Filled(tile.New(2))))

	path := s.Path(key)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0x01
	require.NoError(t, os.WriteFile(path, data, fileMode))

	_, err = s.Load(key)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestStore_NilChunk(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.Save(Key{}, nil), errs.ErrNilChunk)
}

func TestNew_InvalidOption(t *testing.T) {
	_, err := New(t.TempDir(), nil, codec.WithCompression(format.CompressionType(0xF)))
	require.Error(t, err)
}

func TestStore_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := New(t.TempDir(), log)
	require.NoError(t, err)
	require.NoError(t, s.Save(Key{X: 1, Z: 1}, chunk.Filled(tile.New(3))))
	_, err = s.Load(Key{X: 1, Z: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=\"saved chunk\"")
	assert.Contains(t, out, "msg=\"loaded chunk\"")
	assert.Contains(t, out, "sections=16")
}
