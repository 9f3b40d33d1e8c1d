package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// CORS Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// SMTP Configuration
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM"`

	// Quote Form Configuration
	QuoteRecipient  string        `env:"QUOTE_RECIPIENT"`
	FallbackContact string        `env:"FALLBACK_CONTACT" envDefault:"Please call us at (800) 555-0134 or email quotes@rxbridge.com"`
	MinDwellTime    time.Duration `env:"MIN_DWELL_TIME" envDefault:"2s"`
	MailTimeout     time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	// Rate Limiting Configuration
	APIRateLimit    int           `env:"API_RATE_LIMIT" envDefault:"60"`
	APIRateWindow   time.Duration `env:"API_RATE_WINDOW" envDefault:"60s"`
	QuoteRateLimit  int           `env:"QUOTE_RATE_LIMIT" envDefault:"3"`
	QuoteRateWindow time.Duration `env:"QUOTE_RATE_WINDOW" envDefault:"60s"`

	// Optional shared limiter store for multi-instance deployments
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try multiple locations for .env file. godotenv.Load does not overwrite
	// variables that are already set, so the first match wins.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}
