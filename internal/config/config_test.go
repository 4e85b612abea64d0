package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younessemlali/xml-contract-corrector/internal/refdata"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
reference:
  url: https://example.org/commandes.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, 6, cfg.PadWidth)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, refdata.DefaultCacheTTL, cfg.Reference.CacheTTL.Std())
	assert.Equal(t, 10*time.Second, cfg.Reference.Timeout.Std())
	require.NotNil(t, cfg.ArchiveInputs)
	assert.True(t, *cfg.ArchiveInputs)
}

func TestLoadParsesDurations(t *testing.T) {
	path := writeConfig(t, `
reference:
  url: https://example.org/commandes.csv
  cache_ttl: 1h
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Reference.CacheTTL.Std())
	assert.Equal(t, 3*time.Second, cfg.Reference.Timeout.Std())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
reference:
  url: https://example.org/commandes.csv
  cache_ttl: soon
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadRequiresASource(t *testing.T) {
	path := writeConfig(t, `
input_dir: ./docs
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reference source configured")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, `
reference:
  path: ./commandes.csv
log_level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSourceSelection(t *testing.T) {
	t.Run("url builds http source", func(t *testing.T) {
		cfg := &Config{Reference: ReferenceConfig{URL: "https://example.org/c.csv"}}
		src := cfg.Source(nil)
		assert.IsType(t, &refdata.HTTPSource{}, src)
	})

	t.Run("path builds file source", func(t *testing.T) {
		cfg := &Config{Reference: ReferenceConfig{Path: "./commandes.xlsx"}}
		src := cfg.Source(nil)
		assert.IsType(t, &refdata.FileSource{}, src)
	})

	t.Run("demo only when nothing configured", func(t *testing.T) {
		cfg := &Config{Reference: ReferenceConfig{AllowDemoData: true}}
		src := cfg.Source(nil)
		assert.IsType(t, refdata.DemoSource{}, src)
	})

	t.Run("allow_demo_data wraps primary in a chain", func(t *testing.T) {
		cfg := &Config{Reference: ReferenceConfig{
			URL:           "https://example.org/c.csv",
			AllowDemoData: true,
		}}
		src := cfg.Source(nil)
		require.IsType(t, &refdata.Chain{}, src)

		chain := src.(*refdata.Chain)
		assert.IsType(t, &refdata.HTTPSource{}, chain.Primary)
		assert.IsType(t, refdata.DemoSource{}, chain.Fallback)
	})

	t.Run("no implicit fallback", func(t *testing.T) {
		cfg := &Config{Reference: ReferenceConfig{URL: "https://example.org/c.csv"}}
		src := cfg.Source(nil)
		assert.NotContains(t, src.Name(), "demonstration")
	})
}
