package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "UPSTREAM_TIMEOUT", "CORS_ALLOW_ORIGINS", "REDIS_ADDR", "RABBITMQ_URL", "SESSION_COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "https://cafeteria.com/roles", cfg.AuthRolesClaim)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.SessionCookieSecure)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("MENU_CACHE_TTL", "5m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 5*time.Minute, cfg.MenuCacheTTL)
	assert.True(t, cfg.SessionCookieSecure)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_BASE_URL=http://from-file:4000\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("API_BASE_URL", "")
	// godotenv does not override variables that are already set, so make
	// sure this one is really absent.
	require.NoError(t, os.Unsetenv("API_BASE_URL"))

	assert.Equal(t, "http://from-file:4000", Load().APIBaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Config{APIBaseURL: "http://x"}
	assert.Error(t, cfg.Validate())

	cfg.AuthHS256Secret = "s"
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	_, err := Config{LogLevel: "debug", AppEnv: "dev"}.NewLogger()
	require.NoError(t, err)

	_, err = Config{LogLevel: "loud"}.NewLogger()
	assert.Error(t, err)
}
