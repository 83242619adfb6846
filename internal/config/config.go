package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"anoa.com/edusphere/pkg/database"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	PaymentProviderStripe   = "stripe"
	PaymentProviderMidtrans = "midtrans"
)

const developmentJWTSecret = "change-me"

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	StoreDriver string
	Database    database.Config
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string
	// SearchReindexSchedule is a cron spec; empty reindexes only at startup.
	SearchReindexSchedule string

	CloudinaryURL string

	JWTSecret string
	JWTTTL    time.Duration
	// DefaultJWTSecret is set when JWT_SECRET was empty and the public
	// development secret is in use.
	DefaultJWTSecret bool

	PaymentProvider    string
	PaymentCurrency    string
	StripeSecretKey    string
	MidtransServerKey  string
	MidtransProduction bool

	RequestTimeout    time.Duration
	RateLimitCheckout time.Duration

	SeedAdminEmail string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASS"),
			Name:     getEnv("DB_NAME", "edusphere"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		SearchReindexSchedule: getEnv("SEARCH_REINDEX_SCHEDULE", "@every 6h"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PaymentProvider:   getEnv("PAYMENT_PROVIDER", PaymentProviderStripe),
		PaymentCurrency:   strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),

		SeedAdminEmail: strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")),
	}
	cfg.Database.Debug = cfg.AppEnv == "development"

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.RequestTimeout, err = parseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RateLimitCheckout, err = parseDuration(getEnv("RATE_LIMIT_CHECKOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CHECKOUT: %w", err)
	}
	cfg.MidtransProduction, err = strconv.ParseBool(getEnv("MIDTRANS_PRODUCTION", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIDTRANS_PRODUCTION: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.AppEnv != "development" {
			return fmt.Errorf("JWT_SECRET is required outside development")
		}
		c.JWTSecret = developmentJWTSecret
		c.DefaultJWTSecret = true
	}

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.PaymentProvider {
	case PaymentProviderStripe, PaymentProviderMidtrans:
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider)
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
