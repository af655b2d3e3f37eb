package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	AllowOrigins string

	// SessionSecret signs password-reset tokens. Session cookies themselves
	// are opaque ids managed by the fiber session store.
	SessionSecret string

	StripeSecretKey string

	ShippingAPIURL string
	ShippingAPIKey string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	OrdersBCC string

	FrontendURL string
}

func Load() Config {
	return Config{
		Addr:            getenv("FARM_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AllowOrigins:    getenv("CORS_ORIGINS", "http://localhost:3000"),
		SessionSecret:   getenv("SESSION_SECRET", "dev-only-secret"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		ShippingAPIURL:  os.Getenv("SHIPPING_API_URL"),
		ShippingAPIKey:  os.Getenv("SHIPPING_API_KEY"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getenvInt("SMTP_PORT", 587),
		SMTPUser:        os.Getenv("EMAIL_USER"),
		SMTPPass:        os.Getenv("EMAIL_PASS"),
		EmailFrom:       getenv("EMAIL_FROM", "Howard's Farm <no-reply@howardsfarm.org>"),
		OrdersBCC:       getenv("ORDERS_BCC", "orders@howardsfarm.org"),
		FrontendURL:     getenv("FRONTEND_URL", "https://howardsfarm.org"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
