package config

import (
	"testing"
	"time"

	"dataprep/internal"
	"dataprep/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "MAX_UPLOAD_MB",
	"SHUTDOWN_TIMEOUT", "PPROF_ENABLED", "PPROF_PORT", "MAX_CONCURRENT_ANALYSES",
}

func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 50, cfg.Upload.MaxSizeMB)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 8, cfg.Upload.MaxConcurrent)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "6060", cfg.Profiling.Port)
	assert.Equal(t, internal.LogLevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("PPROF_ENABLED", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Upload.MaxSizeMB)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, internal.LogLevelDebug, cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"GIN_MODE", "prod"},
		{"LOG_LEVEL", "LOUD"},
		{"MAX_UPLOAD_MB", "0"},
		{"MAX_UPLOAD_MB", "lots"},
		{"MAX_CONCURRENT_ANALYSES", "0"},
		{"SHUTDOWN_TIMEOUT", "soon"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"PPROF_ENABLED", "maybe"},
		{"CORS_ALLOWED_ORIGINS", " , "},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
