package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/slice_analyzer_go/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3, cfg.Slice.ValueColumn)
	assert.Equal(t, 1239.8, cfg.Slice.EnergyConstant)
	assert.True(t, cfg.Plot.LogY)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "slicer.yaml", `
slice:
  value_column: 2
  allow_ragged_rows: true
plot:
  log_y: false
export:
  dir: /tmp/slices
`)
	t.Setenv("SLICER_SLICE_VALUE_COLUMN", "5")
	t.Setenv("SLICER_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Slice.ValueColumn, "env wins over file")
	assert.True(t, cfg.Slice.AllowRaggedRows)
	assert.False(t, cfg.Plot.LogY, "file value kept when env unset")
	assert.Equal(t, "/tmp/slices", cfg.Export.Dir)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 0, cfg.Slice.XColumn)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/slicer.yaml")
	require.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("SLICER_SLICE_X_COLUMN", "first")
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative column", mutate: func(c *Config) { c.Slice.ValueColumn = -1 }},
		{name: "zero constant", mutate: func(c *Config) { c.Slice.EnergyConstant = 0 }},
		{name: "same columns", mutate: func(c *Config) { c.Slice.XColumn = c.Slice.ValueColumn }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "zero width", mutate: func(c *Config) { c.Plot.Width = 0 }},
		{name: "empty export dir", mutate: func(c *Config) { c.Export.Dir = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
