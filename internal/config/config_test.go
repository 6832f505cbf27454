package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ",", c.Delimiter)
	assert.True(t, c.ShowPlot)
	assert.True(t, c.Color)
	assert.Equal(t, 10.0, c.HeatmapWidthIn)
	assert.Equal(t, 8.0, c.HeatmapHeightIn)
	assert.Equal(t, 0, c.MaxCategoryValues)
	assert.Equal(t, os.TempDir(), c.HeatmapDir)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		Delimiter:         ";",
		Sheet:             "Data",
		NAValues:          []string{"-", "?"},
		ShowPlot:          false,
		HeatmapDir:        "/tmp/plots",
		HeatmapWidthIn:    6,
		HeatmapHeightIn:   4,
		MaxCategoryValues: 25,
	}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ";", out.Delimiter)
	assert.Equal(t, "Data", out.Sheet)
	assert.Equal(t, []string{"-", "?"}, out.NAValues)
	assert.False(t, out.ShowPlot)
	assert.Equal(t, "/tmp/plots", out.HeatmapDir)
	assert.Equal(t, 25, out.MaxCategoryValues)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet: FromFile\n"), 0o644))
	t.Setenv("DATABRIEF_SHEET", "FromEnv")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", c.Sheet)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet: [unterminated\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
