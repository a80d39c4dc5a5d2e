package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MENUBOARD_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 60*time.Second, cfg.Redis.MenuTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, time.Minute, cfg.Publisher.Interval)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MENUBOARD_ENV", "production")
	t.Setenv("MENUBOARD_SERVER_ADDR", ":9999")
	t.Setenv("MENUBOARD_JWT_SECRET", "s3cret")
	t.Setenv("MENUBOARD_DATABASE_URL", "postgres://localhost/menuboard")
	t.Setenv("MENUBOARD_REDIS_MENU_TTL", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Second, cfg.Redis.MenuTTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSecrets(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWT.Secret = "x"
	assert.ErrorIs(t, cfg.Validate(), ErrMissingDatabaseURL)
}

func TestValidate_AllowedOrigins(t *testing.T) {
	cfg := &Config{}
	cfg.JWT.Secret = "x"
	cfg.Database.URL = "postgres://localhost/menuboard"

	assert.ErrorIs(t, cfg.Validate(), ErrNoAllowedOrigins)

	cfg.Server.AllowedOrigins = []string{" "}
	assert.ErrorIs(t, cfg.Validate(), ErrNoAllowedOrigins)

	cfg.Server.AllowedOrigins = []string{"https://menu.example.com"}
	assert.NoError(t, cfg.Validate())
}

func TestValidatePublisher(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.ValidatePublisher(), ErrMissingDatabaseURL)

	cfg.Database.URL = "postgres://localhost/menuboard"
	assert.ErrorIs(t, cfg.ValidatePublisher(), ErrInvalidInterval)

	cfg.Publisher.Interval = -time.Second
	assert.ErrorIs(t, cfg.ValidatePublisher(), ErrInvalidInterval)

	cfg.Publisher.Interval = time.Minute
	assert.NoError(t, cfg.ValidatePublisher())
}

func TestLoad_ZeroPublisherIntervalIsRejected(t *testing.T) {
	t.Setenv("MENUBOARD_ENV", "production")
	t.Setenv("MENUBOARD_DATABASE_URL", "postgres://localhost/menuboard")
	t.Setenv("MENUBOARD_PUBLISHER_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.ErrorIs(t, cfg.ValidatePublisher(), ErrInvalidInterval)
}
