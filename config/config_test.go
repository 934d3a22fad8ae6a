package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("MONGODB_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URL")
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("MONGODB_NAME", "gastropanel_test")
	t.Setenv("PORT", "8081")
	t.Setenv("WEB_SECRET", "override-secret")
	t.Setenv("TOKEN_TTL_HOURS", "12")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	assert.Equal(t, "gastropanel_test", cfg.Database.Name)
	assert.Equal(t, 8081, cfg.Web.Port)
	assert.Equal(t, "override-secret", cfg.Web.Secret)
	assert.Equal(t, 12, cfg.Web.TokenTTLHours)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	t.Setenv("MONGODB_URL", "")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "gastropanel.yml")
	body := `
web:
  port: 9090
database:
  url: mongodb://db:27017
  name: kitchen
logger:
  mode: production
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URL)
	assert.Equal(t, "kitchen", cfg.Database.Name)
	assert.Equal(t, "production", cfg.Logger.Mode)
	// Defaults survive for fields the file leaves out.
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
}

func TestLoadRejectsOutOfRangePort(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "gastropanel.yml")
	require.NoError(t, os.WriteFile(path, []byte("web:\n  port: 70000\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
