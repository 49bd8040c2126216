package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup and passed
// down explicitly.
type Config struct {
	Port        string
	Environment string
	AppBaseURL  string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Session tokens
	JWTSecret       string
	JWTExpiresIn    time.Duration
	CookieExpiresIn time.Duration

	// Outbound mail (Amazon SES); empty FromEmail disables sending
	SESRegion    string
	SESFromEmail string
	SESFromName  string

	// Domain events; empty broker list disables publishing
	KafkaBrokers []string
	KafkaTopic   string
}

// Production reports whether the service runs in production mode. It controls
// secure cookies and error-detail exposure.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// LoadConfig reads configuration from the environment, with an optional .env
// file for local development.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		AppBaseURL:   os.Getenv("APP_BASE_URL"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnv("SES_FROM_NAME", "GymFlow"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "gym.events"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	expiresIn, err := getEnvDuration("JWT_EXPIRES_IN", 90*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiresIn = expiresIn

	cookieDays, err := getEnvInt("JWT_COOKIE_EXPIRES_IN", 90)
	if err != nil {
		return nil, err
	}
	cfg.CookieExpiresIn = time.Duration(cookieDays) * 24 * time.Hour

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
