package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ✅ Global constants (accessible from other packages)
var UploadPath = "/data/uploads"
var BaseURL = "http://localhost:8080"

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Shared secret for access tokens minted by the hosted auth platform
	JWTAccessSecret string

	// ✅ Redis Config (change feeds + rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config (platform-originated push requests)
	KafkaBrokers   []string
	KafkaPushTopic string

	// ✅ FCM Config
	FCMCredentialsPath string // Path to Firebase service account JSON
	FCMProjectID       string // Firebase Project ID (optional, can be in JSON)

	// CORS
	AllowedOrigins []string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	if len(brokers) == 1 && brokers[0] == "" {
		brokers = nil
	}

	origins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	if len(origins) == 1 && origins[0] == "" {
		origins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
	}

	pushTopic := os.Getenv("KAFKA_PUSH_TOPIC")
	if pushTopic == "" {
		pushTopic = "push-requests"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if base := os.Getenv("BASE_URL"); base != "" {
		BaseURL = strings.TrimRight(base, "/")
	}

	return &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTAccessSecret: os.Getenv("JWT_ACCESS_SECRET"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:   brokers,
		KafkaPushTopic: pushTopic,

		FCMCredentialsPath: os.Getenv("FCM_CREDENTIALS_PATH"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),

		AllowedOrigins: origins,
	}
}
