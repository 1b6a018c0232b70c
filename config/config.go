package config

import (
	"os"
	"strings"
	"time"
)

// Config holds everything main needs to wire the server. Values come from the
// environment (optionally a .env file) with sensible defaults for local use.
type Config struct {
	Server struct {
		Host         string
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	Database struct {
		Path           string
		MigrationsPath string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Geocoder struct {
		BaseURL string
	}
	Seed struct {
		AdminName     string
		AdminPassword string
	}
	LogLevel string
}

// Load builds the config from the environment.
func Load() *Config {
	cfg := &Config{}

	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", "10s")
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", "10s")
	cfg.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s")

	cfg.Database.Path = getEnv("DB_PATH", "./dabois.db")
	cfg.Database.MigrationsPath = getEnv("MIGRATIONS_PATH", "pkg/db/migrations/sqlite")

	cfg.CORS.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))

	cfg.Geocoder.BaseURL = getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org")

	cfg.Seed.AdminName = getEnv("SEED_ADMIN_NAME", "admin")
	cfg.Seed.AdminPassword = getEnv("SEED_ADMIN_PASSWORD", "")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
