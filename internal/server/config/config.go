// Package config loads the dev server configuration from the environment,
// with an optional .env file on top.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	JWTSecret     string
	TokenTTL      time.Duration
	CodeTTL       time.Duration
	AllowedOrigin string
	LoginRPS      float64 // sustained rate allowed on the auth endpoints
	LoginBurst    int
}

func Load() (*Config, error) {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          envOr("PORTAL_ADDR", "127.0.0.1:8080"),
		JWTSecret:     envOr("PORTAL_JWT_SECRET", "dev-only-secret"),
		AllowedOrigin: envOr("PORTAL_ALLOWED_ORIGIN", "*"),
		LoginRPS:      1,
		LoginBurst:    5,
	}

	var err error
	if cfg.TokenTTL, err = envDuration("PORTAL_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CodeTTL, err = envDuration("PORTAL_CODE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
