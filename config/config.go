package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment         string
	ServerPort          string
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	SessionDuration     time.Duration
	SeedAdminNationalID string
	SeedAdminPassword   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		ServerPort:          getEnv("PORT", "8080"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              getEnv("DB_NAME", "attendance"),
		SessionDuration:     time.Duration(getEnvInt("SESSION_DURATION_MINUTES", 15)) * time.Minute,
		SeedAdminNationalID: getEnv("SEED_ADMIN_NATIONAL_ID", "1000000001"),
		SeedAdminPassword:   os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if cfg.DBPassword == "" {
		return nil, errors.New("DB_PASSWORD environment variable is required")
	}

	return cfg, nil
}

// IsProduction reports whether secure cookie flags should be enforced.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
