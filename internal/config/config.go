package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string

	DatabaseURL string

	JWTIssuer     string
	JWTAudience   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	BcryptCost int

	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseURL: os.Getenv("ANIME_API_DATABASE_URL"),
		JWTIssuer:   getEnv("ANIME_API_JWT_ISSUER", "anime_api"),
		JWTAudience: getEnv("ANIME_API_JWT_AUDIENCE", "anime_api"),
		JWTSecret:   os.Getenv("ANIME_API_SECRET"),
		BcryptCost:  10,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("ANIME_API_BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse ANIME_API_BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	accessTTL, err := time.ParseDuration(getEnv("ANIME_API_ACCESS_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("parse ANIME_API_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = accessTTL

	refreshTTL, err := time.ParseDuration(getEnv("ANIME_API_REFRESH_TTL", "336h"))
	if err != nil {
		return nil, fmt.Errorf("parse ANIME_API_REFRESH_TTL: %w", err)
	}
	cfg.JWTRefreshTTL = refreshTTL

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "ANIME_API_DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, "ANIME_API_SECRET must be at least 32 chars")
	}
	if c.JWTAccessTTL <= 0 || c.JWTAccessTTL > time.Hour {
		errs = append(errs, "ANIME_API_ACCESS_TTL must be between 1s and 1h")
	}
	if c.JWTRefreshTTL <= 0 || c.JWTRefreshTTL > (30*24*time.Hour) {
		errs = append(errs, "ANIME_API_REFRESH_TTL must be between 1s and 30d")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, "ANIME_API_BCRYPT_COST must be between 4 and 31")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
