package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	// No explicit path and no default file present: defaults apply.
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 9878, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_BACKEND_URL", "https://api.pagecraft.example")

	path := filepath.Join(t.TempDir(), "studio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  base_url: ${TEST_BACKEND_URL}
credentials:
  redis_addr: localhost:6379
  redis_key: studio:test
server:
  host: 0.0.0.0
  port: 9999
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.pagecraft.example", cfg.Backend.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Credentials.RedisAddr)
	assert.Equal(t, "studio:test", cfg.Credentials.RedisKey)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: https://cms.example\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://cms.example", cfg.Backend.BaseURL)
	assert.Equal(t, 9878, cfg.Server.Port, "unset fields keep their defaults")
}
