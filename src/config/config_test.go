package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_DefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"defaults"}, cfg.LoadedFrom)
	assert.Equal(t, 300*time.Millisecond, cfg.Chart.Transition)
	assert.Equal(t, 200*time.Millisecond, cfg.Chart.Hover.Duration)

	opts := cfg.ScaleOptions()
	assert.Equal(t, [2]float64{0, 960}, opts.XDomain)
	assert.Equal(t, [2]float64{0, 500}, opts.YDomain)
	assert.Equal(t, 0.3, opts.BandPadding)
	assert.Equal(t, 20.0, opts.Margin.Left)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
log_level: debug
data:
  path: other.xlsx
  load_delay: 0s
chart:
  transition: 250ms
  band_padding: 0.2
  colors:
    selected: "#ff0000"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "other.xlsx", cfg.Data.Path)
	assert.Equal(t, time.Duration(0), cfg.Data.LoadDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Chart.Transition)
	assert.Equal(t, 0.2, cfg.Chart.BandPadding)
	// untouched keys keep defaults
	assert.Equal(t, "#666666", cfg.Chart.Colors.Primary)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.Palette().Selected)
	assert.Equal(t, []string{"defaults", p}, cfg.LoadedFrom)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv(EnvDataPath, "/tmp/env.csv")
	t.Setenv(EnvLogLevel, "WARN")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.csv", cfg.Data.Path)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Contains(t, cfg.LoadedFrom, "environment")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad level":     "log_level: loud\n",
		"bad color":     "chart:\n  colors:\n    primary: grey\n",
		"bad padding":   "chart:\n  band_padding: 1.5\n",
		"short domain":  "chart:\n  x_domain: [0]\n",
		"reversed":      "chart:\n  y_domain: [500, 0]\n",
		"zero duration": "chart:\n  transition: 0s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}, ParseHex("#666666"))
	assert.Equal(t, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}, ParseHex("#ccc"))
}
