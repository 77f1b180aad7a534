package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "true")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "test")
	t.Setenv("DB_NAME", "test")
	t.Setenv("TEST_DB_PASSWORD", "secret")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "nonsense")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigCI(t *testing.T) {
	setCIEnv(t)
	t.Setenv("DEFAULT_USER_ID", "")
	t.Setenv("APP_TIMEZONE", "Europe/Berlin")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, DefaultUserID, cfg.DefaultUserID)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
}

func TestLoadConfigRejectsBadDefaultUser(t *testing.T) {
	setCIEnv(t)
	t.Setenv("DEFAULT_USER_ID", "not-a-uuid")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_USER_ID")
}

func TestLoadConfigCIRequiresDBPassword(t *testing.T) {
	setCIEnv(t)
	t.Setenv("TEST_DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
}
