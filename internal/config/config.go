package config

import (
	"os"
	"strconv"
)

// Config gathers every environment variable the API reads in one place,
// so main.go loads it once and hands pieces to the services that need them.
type Config struct {
	// HTTP
	Port string

	// Database
	DSN string

	// Auth
	JWTSecret string

	// Redis (optional, low-stock alert dedup falls back to the DB without it)
	RedisAddr     string
	RedisPassword string

	// SMTP (optional, mailer logs instead of sending when Host is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Gemini (optional, chatbot falls back to the canned reply without it)
	GeminiAPIKey string
}

// Load reads the configuration from the environment. Call godotenv.Load
// before this so a local .env file is picked up.
func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DSN:           os.Getenv("DB_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      getEnv("SMTP_FROM", "PCBulacan <noreply@pcbulacan.com>"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
