package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"starsbot/database"
)

// Config holds all application configuration
type Config struct {
	// Telegram configuration
	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	BotUsername      string `mapstructure:"bot_username"`
	AdminID          int64  `mapstructure:"admin_id"`
	SupportLink      string `mapstructure:"support_link"`

	// Database configuration
	DatabaseURL  string `mapstructure:"database_url"`
	DatabaseName string `mapstructure:"database_name"`

	// Economy configuration
	ReferralBonus int64         `mapstructure:"referral_bonus"`
	DailyBonus    int64         `mapstructure:"daily_bonus"`
	BonusCooldown time.Duration `mapstructure:"bonus_cooldown"`
	MinWithdrawal int64         `mapstructure:"min_withdrawal"`

	// Conversation sessions idle longer than this are dropped
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// Broadcast sends per second
	BroadcastRate int `mapstructure:"broadcast_rate"`

	// Webhook mode is enabled when WebhookURL is set
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	HTTPAddr      string `mapstructure:"http_addr"`

	LogLevel string `mapstructure:"log_level"`

	// Environment
	Environment string `mapstructure:"environment"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

var keys = []string{
	"telegram_bot_token",
	"bot_username",
	"admin_id",
	"support_link",
	"database_url",
	"database_name",
	"referral_bonus",
	"daily_bonus",
	"bonus_cooldown",
	"min_withdrawal",
	"session_ttl",
	"broadcast_rate",
	"webhook_url",
	"webhook_secret",
	"http_addr",
	"log_level",
	"environment",
}

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// WebhookEnabled reports whether updates arrive over HTTP instead of long polling
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// load reads .env (if present), an optional CONFIG_FILE and the environment
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.BotUsername = strings.TrimPrefix(config.BotUsername, "@")

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("referral_bonus", 5)
	v.SetDefault("daily_bonus", 1)
	v.SetDefault("bonus_cooldown", 24*time.Hour)
	v.SetDefault("min_withdrawal", 15)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("broadcast_rate", 25)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "development")
}

func (c *Config) validate() error {
	if c.Environment == "test" {
		return nil
	}

	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AdminID == 0 {
		return fmt.Errorf("ADMIN_ID is required")
	}
	if c.BotUsername == "" {
		return fmt.Errorf("BOT_USERNAME is required")
	}
	if c.ReferralBonus < 0 || c.DailyBonus <= 0 || c.MinWithdrawal <= 0 {
		return fmt.Errorf("economy amounts must be positive")
	}
	if c.BonusCooldown <= 0 {
		return fmt.Errorf("BONUS_COOLDOWN must be positive")
	}
	if c.WebhookURL != "" && c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
	}
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		TelegramBotToken: "test-token",
		BotUsername:      "StarsTestBot",
		AdminID:          999999,
		ReferralBonus:    5,
		DailyBonus:       1,
		BonusCooldown:    24 * time.Hour,
		MinWithdrawal:    15,
		SessionTTL:       30 * time.Minute,
		BroadcastRate:    1000,
		HTTPAddr:         ":8080",
		LogLevel:         "debug",
		Environment:      "test",
	}
}
