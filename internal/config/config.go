package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type BookingConfig struct {
	// GracePeriod is how long a pending reservation holds its window
	// awaiting payment before the sweep cancels it.
	GracePeriod   time.Duration
	SweepInterval time.Duration

	// LockBackend selects the per-resource serialization scope: "memory"
	// for single-node, "redis" for multi-node.
	LockBackend     string
	LockWaitTimeout time.Duration
	LockTTL         time.Duration

	DefaultCurrency string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection:      getEnv("DB_CONNECTION_STRING", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Booking: BookingConfig{
			GracePeriod:     getEnvAsDuration("BOOKING_GRACE_PERIOD", 30*time.Minute),
			SweepInterval:   getEnvAsDuration("BOOKING_SWEEP_INTERVAL", time.Minute),
			LockBackend:     getEnv("LOCK_BACKEND", "memory"),
			LockWaitTimeout: getEnvAsDuration("LOCK_WAIT_TIMEOUT", 3*time.Second),
			LockTTL:         getEnvAsDuration("LOCK_TTL", 15*time.Second),
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
