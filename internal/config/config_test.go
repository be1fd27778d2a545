package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/chama/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "KES", cfg.App.Currency)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.Equal(t, "postgres://postgres:@localhost:5432/chama?sslmode=disable", cfg.ConnectionString())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Nairobi", loc.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("SWEEP_INTERVAL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unset")
	os.Unsetenv("AUTH_JWT_SECRET")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLocation_Invalid(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Timezone = "Mars/Olympus"

	_, err := cfg.Location()
	assert.Error(t, err)
}
