package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the api and worker binaries need. Values come
// from the environment with local-development defaults; a .env file is
// honored when present.
type Config struct {
	Env  string
	Port string

	MongoURL  string
	MongoDB   string
	RedisURL  string
	CartTTL   time.Duration
	JWTSecret string
	JWTExpiry time.Duration

	KafkaBrokers    []string
	OrderTopic      string
	NewsletterTopic string
	ConsumerGroup   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	AllowedOrigins []string
}

// Load reads the environment. Missing optional values fall back to defaults
// suitable for docker-compose development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		MongoURL:  getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "nexuscart"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:   time.Hour * 24 * 7,
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Hour * 24 * 30,

		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		OrderTopic:      getEnv("KAFKA_ORDER_TOPIC", "order.created"),
		NewsletterTopic: getEnv("KAFKA_NEWSLETTER_TOPIC", "newsletter.subscribed"),
		ConsumerGroup:   getEnv("KAFKA_CONSUMER_GROUP", "nexuscart-worker"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "nexuscart"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "nexuscart"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
