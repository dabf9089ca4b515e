package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: dev
api_port: 9090
api_host: 0.0.0.0
seed:
  source: config
  users:
    - id: 7
      name: Carol
      balance: 42.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 9090, cfg.ApiPort)
	assert.Equal(t, "0.0.0.0", cfg.ApiHost)
	assert.Equal(t, []models.User{{ID: 7, Name: "Carol", Balance: 42.5}}, cfg.Seed.Users)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "env: local\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ApiPort)
	assert.Equal(t, "localhost", cfg.ApiHost)
	assert.Equal(t, SeedSourceConfig, cfg.Seed.Source)
	assert.Equal(t, DefaultUsers(), cfg.Seed.Users)
}
