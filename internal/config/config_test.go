package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "JWT_SECRET", "JWT_ISSUER",
	"STREAK_CRON", "RATE_LIMIT_PER_MINUTE", "ALLOWED_ORIGINS", "ANALYTICS_WORKERS",
}

func clearEnv(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Success: Should fill defaults when nothing is configured", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 60, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, "5432", cfg.Database.Port)
		assert.Equal(t, "6379", cfg.Redis.Port)
		assert.Equal(t, 30*time.Minute, cfg.Redis.CacheTTL)
		assert.Equal(t, "kanso-insights", cfg.Auth.Issuer)
		assert.Equal(t, "0 5 0 * * *", cfg.Analytics.StreakCron)
	})

	t.Run("Success: Should read the YAML file", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, `
server:
  port: "9090"
  rate_limit_per_minute: 120
database:
  user: kanso_user
  name: kanso_db
redis:
  cache_ttl: 10m
auth:
  jwt_secret: from-file
analytics:
  workers: 4
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 120, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, "kanso_user", cfg.Database.User)
		assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
		assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
		assert.Equal(t, 4, cfg.Analytics.Workers)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Success: Should let the environment win over the file", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "server:\n  port: \"9090\"\nauth:\n  jwt_secret: from-file\n")
		t.Setenv("PORT", "7070")
		t.Setenv("JWT_SECRET", "from-env")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
		assert.Equal(t, 5, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	})

	t.Run("Success: Should follow CONFIG_FILE", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "server:\n  port: \"6060\"\n")
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load("ignored.yaml")

		require.NoError(t, err)
		assert.Equal(t, "6060", cfg.Server.Port)
	})

	t.Run("Fail: Should reject malformed YAML", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "server: [unclosed")

		_, err := Load(path)

		assert.Error(t, err)
	})

	t.Run("Fail: Should reject non-numeric overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

		_, err := Load("")

		assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Auth.JWTSecret = "secret"
		cfg.Database.User = "kanso_user"
		cfg.Database.Name = "kanso_db"
		return cfg
	}

	t.Run("Success: Should accept a complete config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Fail: Should require a JWT secret", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "jwt_secret")
	})

	t.Run("Fail: Should require database credentials", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Name = ""
		assert.ErrorContains(t, cfg.Validate(), "database.name")
	})

	t.Run("Fail: Should reject negative workers", func(t *testing.T) {
		cfg := valid()
		cfg.Analytics.Workers = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "kanso_user"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.Name = "kanso_db"
	cfg.Database.SSLMode = "disable"

	assert.Equal(t, "postgres://kanso_user:secret@db:5433/kanso_db?sslmode=disable", cfg.PostgresDSN())
}
