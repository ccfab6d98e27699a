package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9090"
database:
  url: "postgres://localhost/promo"
media:
  baseUrl: "https://media.kratolib.test"
  apiKey: "k"
rateLimit:
  requestsPerSecond: 5
  burst: 10
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres://localhost/promo", cfg.Database.URL)
	assert.Equal(t, "https://media.kratolib.test", cfg.Media.BaseURL)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	// Unset keys keep defaults.
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROMO_SERVER_ADDR", ":7070")
	t.Setenv("MEDIA_API_KEY", "from-env")
	t.Setenv("REDIS_DB", "3")

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Media.APIKey)
	assert.Equal(t, 3, cfg.Redis.DB)
}
