package qsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlternateKind(t *testing.T) {
	for in, want := range map[string]AlternateKind{"s": Shell, "S": Shell, "shell": Shell, "i": Insertion, "Insertion": Insertion} {
		got, err := ParseAlternateKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAlternateKind("x")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, "shell", Shell.String())
	assert.Equal(t, "insertion", Insertion.String())
}

func TestConfigValidate(t *testing.T) {
	ok := DefaultConfig()
	assert.NoError(t, ok.Validate(100))
	assert.NoError(t, ok.Validate(0), "empty buffers are accepted")
	assert.NoError(t, ok.Validate(1), "single elements are accepted")

	for name, tc := range map[string]struct {
		mutate func(*Config)
		size   int
	}{
		"negative threshold": {func(c *Config) { c.Threshold = -1 }, 100},
		"unknown alternate":  {func(c *Config) { c.Alternate = AlternateKind(7) }, 100},
		"zero pieces":        {func(c *Config) { c.Pieces = 0 }, 100},
		"zero workers":       {func(c *Config) { c.MaxWorkers = 0 }, 100},
		"workers over pieces": {func(c *Config) {
			c.Pieces = 2
			c.MaxWorkers = 3
		}, 100},
		"pieces over size": {func(c *Config) {}, 9},
		"pieces over two":  {func(c *Config) {}, 2},
		"negative size":    {func(c *Config) {}, -1},
	} {
		c := DefaultConfig()
		tc.mutate(&c)
		assert.ErrorIs(t, c.Validate(tc.size), ErrInvalidConfiguration, name)
	}

	seq := DefaultConfig()
	seq.Multithread = false
	assert.NoError(t, seq.Validate(3), "piece count only binds in multithread mode")
}
