package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultSessionTTL      = 12 * time.Hour
	defaultExportRateLimit = 2.0
	envDevelopment         = "development"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	Port            string
	DBPath          string
	LogLevel        string
	SessionSecret   string
	SessionTTL      time.Duration
	ExportRateLimit float64

	// Letterhead overrides; blank values keep the stored profile.
	BusinessName    string
	BusinessTagline string
	BusinessAddress string
	BusinessPhone   string
	BusinessEmail   string
	Jurisdiction    string
}

// IsDev reports whether the server runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || strings.EqualFold(c.Env, envDevelopment)
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := Config{
		Env:             os.Getenv("APP_ENV"),
		Port:            getEnv("PORT", defaultPort),
		DBPath:          getEnv("DB_PATH", defaultDBPath),
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", defaultSessionTTL),
		ExportRateLimit: getEnvAsFloat("EXPORT_RATE_LIMIT", defaultExportRateLimit),
		BusinessName:    os.Getenv("BUSINESS_NAME"),
		BusinessTagline: os.Getenv("BUSINESS_TAGLINE"),
		BusinessAddress: os.Getenv("BUSINESS_ADDRESS"),
		BusinessPhone:   os.Getenv("BUSINESS_PHONE"),
		BusinessEmail:   os.Getenv("BUSINESS_EMAIL"),
		Jurisdiction:    os.Getenv("JURISDICTION"),
	}

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set; session cookies use a per-process key")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", fallback.String())
		return fallback
	}
	return d
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}
