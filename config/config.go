package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Phone    PhoneConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	MaxConns int32
}

type TelegramConfig struct {
	MessageToken string // token for sending order notifications to admin
	AdminID      int64  // chat that receives new order notifications
}

type PhoneConfig struct {
	// DefaultRegion is used for numbers without a leading "+". Empty means
	// only international numbers are accepted.
	DefaultRegion string
}

type LogConfig struct {
	Mode string // "dev" or "prod"
}

type MetricsConfig struct {
	Addr string // empty disables the /metrics listener
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_CONNS: %w", err)
	}
	adminID, err := strconv.ParseInt(getEnv("ADMIN_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID: %w", err)
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "foodcart"),
			MaxConns: int32(maxConns),
		},
		Telegram: TelegramConfig{
			MessageToken: getEnv("MESSAGE_TOKEN", ""),
			AdminID:      adminID,
		},
		Phone: PhoneConfig{
			DefaultRegion: strings.ToUpper(getEnv("PHONE_REGION", "")),
		},
		Log: LogConfig{
			Mode: getEnv("LOG_MODE", "dev"),
		},
		Metrics: MetricsConfig{
			Addr: lookupEnv("METRICS_ADDR", ":9090"),
		},
	}, nil
}

// AutoMigrate reports whether AUTO_MIGRATE is set to "1" or "true".
func AutoMigrate() bool {
	v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE"))
	return v == "1" || strings.EqualFold(v, "true")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupEnv is like getEnv but keeps an explicitly empty value.
func lookupEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}
