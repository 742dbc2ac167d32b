package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	level    int
	name     string
	verbose  bool
	lastCall string
}

func (c *testConfig) setLevel(level int) error {
	if level < 0 {
		return errors.New("level cannot be negative")
	}
	c.level = level
	c.lastCall = "setLevel"

	return nil
}

func (c *testConfig) setName(name string) {
	c.name = name
	c.lastCall = "setName"
}

func TestNew(t *testing.T) {
	cfg := &testConfig{}

	t.Run("applies the function", func(t *testing.T) {
		err := New(func(c *testConfig) error { return c.setLevel(3) }).apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 3, cfg.level)
	})

	t.Run("propagates errors", func(t *testing.T) {
		err := New(func(c *testConfig) error { return c.setLevel(-1) }).apply(cfg)
		require.ErrorContains(t, err, "level cannot be negative")
		require.Equal(t, 3, cfg.level)
	})
}

func TestNoError(t *testing.T) {
	cfg := &testConfig{}

	err := NoError(func(c *testConfig) { c.setName("zstd") }).apply(cfg)
	require.NoError(t, err)
	require.Equal(t, "zstd", cfg.name)
}

func TestApply(t *testing.T) {
	t.Run("in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply[*testConfig](cfg,
			New(func(c *testConfig) error { return c.setLevel(1) }),
			NoError(func(c *testConfig) { c.setName("lz4") }),
			NoError(func(c *testConfig) { c.verbose = true }),
		)

		require.NoError(t, err)
		require.Equal(t, 1, cfg.level)
		require.Equal(t, "lz4", cfg.name)
		require.True(t, cfg.verbose)
		require.Equal(t, "setName", cfg.lastCall)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply[*testConfig](cfg,
			New(func(c *testConfig) error { return c.setLevel(5) }),
			New(func(c *testConfig) error { return c.setLevel(-1) }),
			NoError(func(c *testConfig) { c.setName("never") }),
		)

		require.Error(t, err)
		require.Equal(t, 5, cfg.level)
		require.Empty(t, cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, testConfig{}, *cfg)
	})
}
