package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

func setRequired(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "postgres://localhost/alfred")
	t.Setenv("SEAMLESS_USER", "corp@example.com")
	t.Setenv("SEAMLESS_PASS", "hunter2")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, order.Money(2500), cfg.Ceiling)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.BatchPause)
	assert.Equal(t, "11:30", cfg.OrderTime)
	assert.False(t, cfg.DryRun)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PER_PERSON_CEILING", "$30.00")
	t.Setenv("MAX_ATTEMPTS", "5")
	t.Setenv("DRY_RUN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, order.Money(3000), cfg.Ceiling)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.True(t, cfg.DryRun)
}

func TestLoadRejectsBadOrderTime(t *testing.T) {
	setRequired(t)
	t.Setenv("ORDER_TIME", "noonish")

	_, err := Load()
	assert.Error(t, err)
}
