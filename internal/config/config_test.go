package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{"ENVIRONMENT": "development"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "1h", cfg.JWTExpiry)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":   "development",
		"PORT":          "8080",
		"DB_HOST":       "db.internal",
		"KAFKA_BROKERS": "kafka-1:9092,kafka-2:9092",
		"JWT_EXPIRY":    "30m",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration())
}

func TestLoad_InvalidPort(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
		"PORT":        "99999",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidJWTExpiry(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
		"JWT_EXPIRY":  "two hours",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_Development_AcceptsDefaultSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
		"JWT_SECRET":  "change-this-to-a-secure-secret",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "change-this-to-a-secure-secret", cfg.JWTSecret)
}

func TestLoad_Production_RejectsDefaultSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "change-this-to-a-secure-secret",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be explicitly set")
}

func TestLoad_Production_RejectsShortSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "short-secret",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_Production_AcceptsStrongSecret(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "a-genuinely-strong-production-secret-0123456789",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
