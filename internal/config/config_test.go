package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_ADDR", "REDIS_PASSWORD", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[database]
host = "db"
dbname = "artists"

[redis]
enabled = true
addr = "cache:6379"
slots_ttl = 120

[scheduling]
buffer_minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15, cfg.Scheduling.BufferMinutes)
	assert.Equal(t, 120, cfg.Scheduling.DefaultDurationMinutes)
	assert.Equal(t, 2*time.Minute, cfg.Redis.SlotsTTLDuration())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user= password= dbname=artists sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "artists"
password = "from-file"
`)
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"missing database", ``, nil},
		{"redis without addr", "[database]\nhost = \"db\"\ndbname = \"a\"\n[redis]\nenabled = true\n", nil},
		{"bad port", "[server]\nhttp_port = 70000\n[database]\nhost = \"db\"\ndbname = \"a\"\n", nil},
		{"negative buffer", "[database]\nhost = \"db\"\ndbname = \"a\"\n[scheduling]\nbuffer_minutes = -5\n", nil},
		{"bad rate limit", "[database]\nhost = \"db\"\ndbname = \"a\"\n[rate_limit]\nenabled = true\nburst = 0\n", nil},
		{"invalid DB_PORT", "[database]\nhost = \"db\"\ndbname = \"a\"\n", map[string]string{"DB_PORT": "x"}},
		{"broken toml", "[database\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
