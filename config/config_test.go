package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("BOT_USERNAME", "@StarsBot")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, "StarsBot", cfg.BotUsername)
	assert.Equal(t, int64(5), cfg.ReferralBonus)
	assert.Equal(t, int64(1), cfg.DailyBonus)
	assert.Equal(t, 24*time.Hour, cfg.BonusCooldown)
	assert.Equal(t, int64(15), cfg.MinWithdrawal)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.WebhookEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("BOT_USERNAME", "StarsBot")
	t.Setenv("MIN_WITHDRAWAL", "50")
	t.Setenv("BONUS_COOLDOWN", "12h")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, int64(50), cfg.MinWithdrawal)
	assert.Equal(t, 12*time.Hour, cfg.BonusCooldown)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_WebhookRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("BOT_USERNAME", "StarsBot")
	t.Setenv("WEBHOOK_URL", "https://example.com")
	t.Setenv("WEBHOOK_SECRET", "")

	_, err := load()
	require.Error(t, err)
}
