// Package config loads process configuration from the environment.
//
// All knobs arrive as environment variables (optionally via a .env file
// loaded by main before we get here). DATABASE_URL and SECRET_KEY are
// required; everything else has a development-friendly default.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port         string `env:"PORT" env-default:"3001"`
	DatabaseURL  string `env:"DATABASE_URL"`
	SecretKey    string `env:"SECRET_KEY"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`

	// FavoritesAuth gates the favorites routes behind the auth
	// middleware. Kept as a flag because an earlier iteration of the
	// service served favorites without accounts.
	FavoritesAuth bool `env:"FAVORITES_AUTH" env-default:"true"`
}

// Load reads configuration from the environment and validates the
// required fields.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	return &cfg, nil
}
