// Package config loads the server configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DBURI       string
	DBName      string
	JWTSecret   string
	StripeKey   string
	SendGridKey string
	EmailSender string
	Environment string
}

// Load reads the configuration. A missing .env file is fine; missing
// required variables are not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", "5000"),
		DBURI:       os.Getenv("DB_URI"),
		DBName:      getenv("DB_NAME", "doctors-portal"),
		JWTSecret:   os.Getenv("ACCESS_TOKEN"),
		StripeKey:   os.Getenv("STRIPE_SECRET_KEY"),
		SendGridKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender: os.Getenv("EMAIL_SENDER"),
		Environment: getenv("APP_ENV", "development"),
	}

	var missing []string
	if cfg.DBURI == "" {
		missing = append(missing, "DB_URI")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
