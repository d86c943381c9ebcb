package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

type Config struct {
	// Discord Bot
	DiscordToken   string
	OrderChannelID string

	// Database
	DatabaseURL string

	// Web Server
	WebBind    string
	JWTSecret  string
	AdminToken string

	// Ordering site account
	SeamlessURL  string
	SeamlessUser string
	SeamlessPass string
	ReceiptsDir  string

	// Automation run
	OrderTime    string // daily trigger, HH:MM local time
	DeliveryTime string // slot label on the site
	Ceiling      order.Money
	MaxAttempts  int
	BatchPause   time.Duration
	Instructions string
	DryRun       bool
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		OrderChannelID: os.Getenv("ORDER_CHANNEL_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		WebBind:        getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		JWTSecret:      getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		SeamlessURL:    getEnvDefault("SEAMLESS_URL", "https://www.seamless.com"),
		SeamlessUser:   os.Getenv("SEAMLESS_USER"),
		SeamlessPass:   os.Getenv("SEAMLESS_PASS"),
		ReceiptsDir:    getEnvDefault("RECEIPTS_DIR", "receipts"),
		OrderTime:      getEnvDefault("ORDER_TIME", "11:30"),
		DeliveryTime:   getEnvDefault("DELIVERY_TIME", "11:45 AM"),
		Instructions:   os.Getenv("DELIVERY_INSTRUCTIONS"),
		DryRun:         os.Getenv("DRY_RUN") == "true",
	}

	ceiling, err := order.ParseMoney(getEnvDefault("PER_PERSON_CEILING", "25.00"))
	if err != nil {
		return nil, fmt.Errorf("PER_PERSON_CEILING is invalid: %w", err)
	}
	cfg.Ceiling = ceiling

	attempts, err := strconv.Atoi(getEnvDefault("MAX_ATTEMPTS", "3"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("MAX_ATTEMPTS must be a positive integer")
	}
	cfg.MaxAttempts = attempts

	pauseSeconds, err := strconv.Atoi(getEnvDefault("BATCH_PAUSE_SECONDS", "5"))
	if err != nil || pauseSeconds < 0 {
		return nil, fmt.Errorf("BATCH_PAUSE_SECONDS must be a non-negative integer")
	}
	cfg.BatchPause = time.Duration(pauseSeconds) * time.Second

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SeamlessUser == "" || cfg.SeamlessPass == "" {
		return nil, fmt.Errorf("SEAMLESS_USER and SEAMLESS_PASS are required")
	}
	if _, err := time.Parse("15:04", cfg.OrderTime); err != nil {
		return nil, fmt.Errorf("ORDER_TIME must be HH:MM: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
