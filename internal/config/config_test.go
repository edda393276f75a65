package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "quotes.db", cfg.Store.DatabaseURL)
	assert.Equal(t, int64(10), cfg.Ingest.MaxFileMB)
	assert.Equal(t, 0, cfg.Ingest.SheetIndex)
	assert.Equal(t, "Article", cfg.Ingest.Columns.Article)
	assert.Equal(t, "Request Date", cfg.Ingest.Columns.QuotedAt)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/quotes
ingest:
  max_file_mb: 25
  columns:
    supplier: Fournisseur
    price: Prix
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/quotes", cfg.Store.DatabaseURL)
	assert.Equal(t, int64(25), cfg.Ingest.MaxFileMB)
	assert.Equal(t, "Fournisseur", cfg.Ingest.Columns.Supplier)
	assert.Equal(t, "Prix", cfg.Ingest.Columns.Price)
	// Unset column names keep their defaults.
	assert.Equal(t, "Article", cfg.Ingest.Columns.Article)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestIngestOptions(t *testing.T) {
	opts := IngestConfig{MaxFileMB: 10, SheetIndex: 1}.Options()
	assert.Equal(t, int64(10<<20), opts.MaxFileBytes)
	assert.Equal(t, 1, opts.SheetIndex)
}

func TestInitLoggerBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}

func TestInitLoggerConsole(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
