package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, "/media/", cfg.Media.URL)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: "9000"
database:
  driver: sqlite
  dsn: yatube.db
auth:
  secret: from-yaml
  access_ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_REFRESH_TTL", "2h")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "yatube.db", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 2*time.Hour, cfg.Auth.RefreshTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	_, err := Load("")
	assert.Error(t, err)
}
