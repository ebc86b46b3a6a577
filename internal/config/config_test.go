package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load looks at so a developer .env does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "ALLOW_ORIGIN", "PORT", "RATE_LIMIT_REQUESTS_PER_SECOND",
		"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_DATABASE", "DB_CONNECTION_STR", "USE_CONNECTION_STR",
		"SECRET_KEY", "GOOGLE_AUTH_CLIENT", "GOOGLE_AUTH_SECRET", "OAUTH_REDIRECT_URL", "TOKEN_TTL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "AI_TIMEOUT", "USE_MOCK_AI",
		"GCS_BUCKET", "REDIS_URL", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadYAMLWithDefaults(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
server:
  allow_origins: ["http://localhost:5173"]
database:
  use_connection_string: true
  connection_string: postgres://u:p@localhost:5432/nexus
auth:
  secret_key: yaml-secret
ai:
  api_key: sk-test
  timeout: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, uint(5), cfg.Server.RateLimitPerSecond)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "yaml-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.False(t, cfg.AI.UseMock)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
server:
  port: 9000
database:
  host: yaml-host
  port: "5432"
  user: u
  name: db
auth:
  secret_key: yaml-secret
`)
	t.Setenv("PORT", "7000")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("ALLOW_ORIGIN", "http://a.test, http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins)
	assert.True(t, cfg.AI.UseMock, "no api key means offline advisor")
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "postgres://x")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", cfg.Database.ConnectionString)
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.EqualError(t, err, "SECRET_KEY is required")

	t.Setenv("SECRET_KEY", "s")
	_, err = Load("")
	assert.EqualError(t, err, "database configuration is incomplete")

	t.Setenv("USE_CONNECTION_STR", "yes-please")
	_, err = Load("")
	assert.ErrorContains(t, err, "USE_CONNECTION_STR")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ServerConfig{LogLevel: "DEBUG"}.ParseLevel())
	assert.Equal(t, slog.LevelWarn, ServerConfig{LogLevel: "warning"}.ParseLevel())
	assert.Equal(t, slog.LevelInfo, ServerConfig{}.ParseLevel())
}
