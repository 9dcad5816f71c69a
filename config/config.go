// Package config builds the process configuration from the environment.
// The resulting struct is constructed once in main and passed into the
// database and auth layers; nothing reads the environment after startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Development fallbacks. The URI and secret are insecure; production
// must override them.
const (
	defaultMongoURI    = "mongodb://localhost:27017"
	defaultMongoDB     = "notekeep"
	defaultTokenSecret = "I5N2ZlYzdmMzc5YjciLCJpYXQiOjE3MzIwMjc"
	defaultPort        = "5000"
	defaultTokenTTL    = 24 * time.Hour
)

// Config holds everything the process needs to run.
type Config struct {
	Addr        string
	MongoURI    string
	MongoDB     string
	TokenSecret string
	// TokenTTL bounds the lifetime of issued tokens. Zero disables
	// expiration.
	TokenTTL time.Duration
}

// Validate checks the configuration is complete.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.MongoURI, validation.Required),
		validation.Field(&c.MongoDB, validation.Required),
		validation.Field(&c.TokenSecret, validation.Required),
		validation.Field(&c.TokenTTL, validation.Min(time.Duration(0))),
	)
}

// FromEnv reads PORT, MONGO_URI, MONGO_DB, TOKEN_SECRET and TOKEN_TTL,
// falling back to the development defaults for anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:        ":" + envOr("PORT", defaultPort),
		MongoURI:    envOr("MONGO_URI", defaultMongoURI),
		MongoDB:     envOr("MONGO_DB", defaultMongoDB),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		TokenTTL:    defaultTokenTTL,
	}

	if cfg.TokenSecret == "" {
		slog.Warn("TOKEN_SECRET not set, using insecure built-in secret")
		cfg.TokenSecret = defaultTokenSecret
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
