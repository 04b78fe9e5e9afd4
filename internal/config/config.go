package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (issued by the identity provider, verified here)
	JWTSecret string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	// Admin bootstrap (out-of-band first-admin procedure)
	AdminBootstrapToken string

	// Access cache
	AccessCacheSize int
	AccessCacheTTL  time.Duration

	// Rate limits (requests per minute, per IP)
	GeneralRateLimit int
	AuthRateLimit    int

	// Server
	Port            string
	CORSOrigins     string
	MaintenanceMode bool
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "causeway_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "https://causeway.app/checkout/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "https://causeway.app/checkout/cancel"),

		AdminBootstrapToken: getEnv("ADMIN_BOOTSTRAP_TOKEN", ""),

		AccessCacheSize: parseInt(getEnv("ACCESS_CACHE_SIZE", "100"), 100),
		AccessCacheTTL:  parseDuration(getEnv("ACCESS_CACHE_TTL", "5m"), 5*time.Minute),

		GeneralRateLimit: parseInt(getEnv("RATE_LIMIT_GENERAL", "60"), 60),
		AuthRateLimit:    parseInt(getEnv("RATE_LIMIT_AUTH", "10"), 10),

		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		MaintenanceMode: getEnv("MAINTENANCE_MODE", "false") == "true",
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
