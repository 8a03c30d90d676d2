package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	AppPort       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	MigrationsDir string
	JWTSecret     string
	JWTExpiration time.Duration
	BypassTTL     time.Duration
}

func LoadConfig() *Config {
	// Try to load .env file but don't fail if it doesn't exist
	_ = godotenv.Load()

	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		AppPort:       getEnv("APP_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "als_tracker_db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/database/migrations"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret"),
		JWTExpiration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
		BypassTTL:     getDurationEnv("PASSWORD_BYPASS_TTL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s format. Use format like '24h'", key)
	}
	return parsed
}
