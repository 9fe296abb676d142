package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-ahmed/issue-reporter/internal/config"
)

// unsetenv clears keys for the duration of the test. t.Setenv registers the
// restore; the unset makes envDefault values apply.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	unsetenv(t,
		"PORT", "ENV", "RATE_LIMIT_PER_MINUTE",
		"MONGODB_URL", "MONGODB_DATABASE", "MONGODB_CONNECT_TIMEOUT",
		"MONGODB_MAX_POOL_SIZE", "MONGODB_MIN_POOL_SIZE",
		"MONGODB_MAX_CONN_IDLE_TIME", "MONGODB_RETRY_ATTEMPTS",
		"MONGODB_RETRY_INTERVAL",
		"RELAY_ENDPOINT", "RELAY_SERVICE_ID", "RELAY_TEMPLATE_ID",
		"RELAY_USER_ID", "RELAY_TIMEOUT",
	)
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.RateLimitPerMinute)

	assert.Equal(t, "issue_reporter", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, uint64(100), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, uint64(1), cfg.Mongo.MinPoolSize)
	assert.Equal(t, 300*time.Second, cfg.Mongo.MaxConnIdleTime)
	assert.Equal(t, 3, cfg.Mongo.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.Mongo.RetryInterval)

	assert.Equal(t, "https://api.emailjs.com/api/v1.0/email/send", cfg.Relay.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.Relay.Timeout)
	assert.False(t, cfg.Relay.Configured(), "relay is unconfigured by default")
}

func TestLoadRequiresMongoURL(t *testing.T) {
	clearConfigEnv(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URL")
}

func TestLoadRejectsHalfConfiguredRelay(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("RELAY_SERVICE_ID", "service_abc")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")
}

func TestLoadAcceptsFullRelay(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("RELAY_SERVICE_ID", "service_abc")
	t.Setenv("RELAY_TEMPLATE_ID", "template_xyz")
	t.Setenv("RELAY_USER_ID", "user_123")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Relay.Configured())
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}
