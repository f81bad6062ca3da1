package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
core_api_base_url = "http://localhost:8081/api"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"

[production]
host = ""
port = 9000
log_level = "debug"
logs_path = "/var/log/nutriview/service.log"
core_api_base_url = "https://api.vidanutri.com/api"
core_api_timeout_seconds = 15
core_api_cache_size_mb = 50
redis_host = "redis"
redis_port = "6379"
login_rate_limit_allowed_per_min = 10
prometheus_metrics_host = ""
prometheus_metrics_port = "2112"
sentry_enabled = true
honeycomb_tracing_enabled = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "http://localhost:8081/api", cfg.CoreAPIBaseURL)
	assert.False(t, cfg.SentryEnabled)

	// defaults kick in when not set
	assert.Equal(t, 30, cfg.CoreAPITimeoutSeconds)
	assert.Equal(t, 20, cfg.CoreAPICacheSizeMB)
	assert.Equal(t, 15, cfg.LoginRateLimitAllowedPerMin)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.vidanutri.com/api", cfg.CoreAPIBaseURL)
	assert.Equal(t, 15, cfg.CoreAPITimeoutSeconds)
	assert.Equal(t, 50, cfg.CoreAPICacheSizeMB)
	assert.Equal(t, 10, cfg.LoginRateLimitAllowedPerMin)
	assert.True(t, cfg.SentryEnabled)
	assert.True(t, cfg.HoneycombTracingEnabled)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("development", "/does/not/exist/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
