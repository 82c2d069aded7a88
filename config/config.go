package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// JWT Configuration
	JWTSecret              string
	AccessTokenTTLMinutes  int
	RefreshTokenTTLHours   int
	ResetTokenTTLMinutes   int
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration (OTP store)
	RedisURL      string
	RedisPassword string
	OTPTTLMinutes int
	// OpenAI Configuration
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAITemperature    float64
	OpenAITimeoutSeconds int
	// Elasticsearch Configuration (search mirror)
	ElasticsearchURL string
	// CORS
	FrontendURL string
}

func LoadConfig() (*Config, error) {
	// Effective locally, ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// JWT
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTokenTTLMinutes: getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 15),
		RefreshTokenTTLHours:  getEnvInt("REFRESH_TOKEN_TTL_HOURS", 168), // 7 days
		ResetTokenTTLMinutes:  getEnvInt("RESET_TOKEN_TTL_MINUTES", 5),
		// SMTP
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@skillsplatform.dev"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OTPTTLMinutes: getEnvInt("OTP_TTL_MINUTES", 5),
		// OpenAI
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4.1"),
		OpenAITemperature:    getEnvFloat("OPENAI_TEMPERATURE", 0.4),
		OpenAITimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 30),
		// Elasticsearch
		ElasticsearchURL: getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		// CORS
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will be trivially forgeable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. OTP endpoints will be unavailable.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not configured. AI recommendations will be empty.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}
