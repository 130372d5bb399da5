package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: production
database:
  host: db.internal
  port: 5433
  user: engine
  database: wardrobe
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
pipeline:
  chunk_size: 2000
  dedup_threshold: 0.8
`)

	cfg, err := Load(path, "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 2000, cfg.Pipeline.ChunkSize)
	assert.InEpsilon(t, 0.8, cfg.Pipeline.DedupThreshold, 1e-9)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "env: local\n")

	cfg, err := Load(path, "dev")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 5, cfg.Pipeline.MaxClusters)
	assert.Equal(t, int64(42), cfg.Pipeline.ClusterSeed)
	assert.InEpsilon(t, 0.7, cfg.Pipeline.DedupThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Pipeline.MaxOutfits)
	assert.InEpsilon(t, 60.0, cfg.Pipeline.ColdThresholdF, 1e-9)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_SecretsFromEnvironment(t *testing.T) {
	t.Setenv("PGPASSWORD", "s3cret")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("EBAY_APP_ID", "app-123")
	t.Setenv("WEATHER_API_KEY", "wx-456")

	path := writeConfig(t, "env: local\n")

	cfg, err := Load(path, "dev")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "app-123", cfg.Catalog.AppID)
	assert.Equal(t, "wx-456", cfg.Weather.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "dev")
	require.Error(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Database: "d", SSLMode: "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=d sslmode=disable",
		cfg.ConnectionString())
	assert.Equal(t, "postgres://u:p@localhost:5432/d?sslmode=disable", cfg.URL())
}
