package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, dir string) *Config {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "liquidation.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []float64{1000, 1500, 2000, 2500, 3000}, cfg.Analysis.COGSBins)
	assert.Equal(t, 2000.0, cfg.Analysis.HighCOGSThreshold)
	assert.Equal(t, 0.5, cfg.Analysis.CosmeticRecoveryRate)
	assert.Equal(t, "liquidated", cfg.Analysis.DispositionSynonyms["liquidate"])

	require.Len(t, cfg.Analysis.KeyChecks, 14)
	assert.Equal(t, "IOG", cfg.Analysis.KeyChecks[0].Label)
	assert.Equal(t, "Factory_Reset", cfg.Analysis.KeyChecks[13].Label)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
store:
  driver: postgres
  database_url: postgres://localhost/liq
server:
  port: 9000
analysis:
  high_cogs_threshold: 1500
  key_checks:
    - label: Works
      match: does_the_item_work
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg := loadFrom(t, dir)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 1500.0, cfg.Analysis.HighCOGSThreshold)
	// An explicit key-check list replaces the default ordering entirely.
	require.Len(t, cfg.Analysis.KeyChecks, 1)
	assert.Equal(t, "Works", cfg.Analysis.KeyChecks[0].Label)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LIQCLI_LOG_LEVEL", "debug")
	t.Setenv("LIQCLI_SERVER_PORT", "7070")

	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level"})
	require.Error(t, err)
}
