package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN string
	APP_URL     string

	// All date logic (subscriptions, publication schedules, availability
	// windows) is evaluated in this single zone.
	TIMEZONE string
	Location *time.Location

	STORAGE_PUBLIC_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	TIMEZONE = getEnv("TIMEZONE", "America/Sao_Paulo")
	loc, err := time.LoadLocation(TIMEZONE)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", TIMEZONE, err)
	}
	Location = loc

	STORAGE_PUBLIC_URL = getEnv("STORAGE_PUBLIC_URL", "http://localhost:8080/files")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

// Now returns the current time in the platform's reference timezone.
func Now() time.Time {
	if Location == nil {
		return time.Now()
	}
	return time.Now().In(Location)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
