package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/aurora/badger", cfg.Storage.BadgerDir())
	assert.Equal(t, "zstd", cfg.Storage.Compression)

	assert.Equal(t, "aurora", cfg.Shell.Hostname)
	assert.Equal(t, "user", cfg.Shell.User)
	assert.Equal(t, []string{"/bin", "/usr/bin"}, cfg.Shell.SearchPath())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"AURORA_PORT":                 "9000",
		"AURORA_HOST":                 "127.0.0.1",
		"CORS_ORIGINS":                "http://localhost:3000,http://localhost:5173",
		"AURORA_STORAGE_BACKEND":      "memory",
		"AURORA_DATA_DIR":             "/var/lib/aurora",
		"AURORA_SNAPSHOT_COMPRESSION": "none",
		"AURORA_HOSTNAME":             "desk",
		"AURORA_USER":                 "guest",
		"AURORA_PATH":                 "/usr/bin: /bin:",
		"LOG_LEVEL":                   "debug",
		"LOG_DEV":                     "true",
		"RATE_LIMIT_RPS":              "500",
		"RATE_LIMIT_BURST":            "1000",
		"RATE_LIMIT_ENABLED":          "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/aurora/badger", cfg.Storage.BadgerDir())
	assert.Equal(t, "none", cfg.Storage.Compression)
	assert.Equal(t, "desk", cfg.Shell.Hostname)
	assert.Equal(t, "guest", cfg.Shell.User)
	assert.Equal(t, []string{"/usr/bin", "/bin"}, cfg.Shell.SearchPath())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "AURORA_STORAGE_BACKEND", "redis"},
		{"unknown compression", "AURORA_SNAPSHOT_COMPRESSION", "lz4"},
		{"empty search path", "AURORA_PATH", "::"},
		{"bad integer", "RATE_LIMIT_RPS", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}
