package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// BackendURL selects the remote store: postgres://..., sqlite://path or sqlite://:memory:.
	BackendURL string `env:"BACKEND_URL"`
	// BackendKey signs session tokens. Without it the backend runs degraded.
	BackendKey string `env:"BACKEND_KEY"`

	AuthTokenExpiry   time.Duration `env:"AUTH_TOKEN_EXPIRY" envDefault:"24h"`
	AdminEmails       []string      `env:"ADMIN_EMAILS" envSeparator:","`
	ClientIdleTimeout time.Duration `env:"CLIENT_IDLE_TIMEOUT" envDefault:"30m"`
	CookieSecure      bool          `env:"COOKIE_SECURE"`
	CORSOrigins       []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Email EmailConfig
}

// EmailConfig configures the mailer used for event status emails.
type EmailConfig struct {
	Provider              string `env:"EMAIL_PROVIDER" envDefault:"noop"`
	FromAddress           string `env:"EMAIL_FROM_ADDRESS"`
	FromName              string `env:"EMAIL_FROM_NAME" envDefault:"EventHub"`
	SESRegion             string `env:"AWS_SES_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID        string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	SESInsecureSkipVerify bool   `env:"AWS_SES_INSECURE_SKIP_VERIFY"`
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		// A missing .env is fine: the process environment still applies.
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AdminEmails = trimAll(cfg.AdminEmails)
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	return cfg, nil
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// BackendConfigured reports whether both the backend endpoint and key are set.
func (c *Config) BackendConfigured() bool {
	return strings.TrimSpace(c.BackendURL) != "" && strings.TrimSpace(c.BackendKey) != ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
