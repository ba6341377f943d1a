package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	APP_URL     string

	STRIPE_SECRET_KEY      string
	STRIPE_PUBLISHABLE_KEY string
	STRIPE_WEBHOOK_SECRET  string

	// Price ids for the plan catalog, (BASE|EXTRA) x (monthly|yearly).
	STRIPE_BASE_MONTHLY_PRICE_ID  string
	STRIPE_BASE_YEARLY_PRICE_ID   string
	STRIPE_EXTRA_MONTHLY_PRICE_ID string
	STRIPE_EXTRA_YEARLY_PRICE_ID  string

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
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	APP_URL = getEnv("APP_URL", "http://localhost:3000")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_PUBLISHABLE_KEY = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")

	STRIPE_BASE_MONTHLY_PRICE_ID = getEnv("STRIPE_BASE_MONTHLY_PRICE_ID", "")
	STRIPE_BASE_YEARLY_PRICE_ID = getEnv("STRIPE_BASE_YEARLY_PRICE_ID", "")
	STRIPE_EXTRA_MONTHLY_PRICE_ID = getEnv("STRIPE_EXTRA_MONTHLY_PRICE_ID", "")
	STRIPE_EXTRA_YEARLY_PRICE_ID = getEnv("STRIPE_EXTRA_YEARLY_PRICE_ID", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
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
