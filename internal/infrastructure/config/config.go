// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (schedule store + airline/timezone reference data)
	PostgresURI string

	// Redis (provider response cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Kafka (update event bus)
	KafkaBrokers []string
	KafkaTopic   string

	// Flight data provider
	ProviderBaseURL   string
	ProviderAPIKey    string
	ProviderRateLimit float64 // requests per second
	ProviderBurst     int

	// Messenger delivery service
	MessengerBaseURL string
	MessengerToken   string

	// Polling loop
	PollInterval time.Duration
	PollBatch    int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightwatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "flight-updates"),

		ProviderBaseURL:   getEnv("PROVIDER_BASE_URL", "https://aeroapi.flightaware.com/aeroapi"),
		ProviderAPIKey:    getEnv("PROVIDER_API_KEY", ""),
		ProviderRateLimit: getEnvAsFloat("PROVIDER_RATE_LIMIT", 5),
		ProviderBurst:     getEnvAsInt("PROVIDER_BURST", 10),

		MessengerBaseURL: getEnv("MESSENGER_BASE_URL", ""),
		MessengerToken:   getEnv("MESSENGER_TOKEN", ""),

		PollInterval: time.Duration(getEnvAsInt("POLL_INTERVAL", 30)) * time.Second,
		PollBatch:    getEnvAsInt("POLL_BATCH", 100),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
