package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisAddr     string
	RedisPassword string

	Providers ProvidersConfig
	RateLimit RateLimitConfig

	DriftToleranceMinor int64
	EnforceAmountMatch  bool

	SweepEnabled         bool
	SweepIntervalSeconds int

	SeedDemoData bool
}

// RateLimitConfig throttles webhook ingestion per provider. It shares the
// redis instance used by the duplicate cache.
type RateLimitConfig struct {
	Enabled            bool
	WebhookRate        float64
	WebhookBurst       int
	WebhookSourceRate  float64
	WebhookSourceBurst int
}

// ProvidersConfig carries per-gateway webhook settings.
type ProvidersConfig struct {
	StripeWebhookSecret string
	StripeXOFRate       float64

	MTNMoMoEnabled  bool
	LygosEnabled    bool
	CinetPayEnabled bool
	MonerooEnabled  bool

	// Delimiters overrides the reference delimiter per provider.
	Delimiters map[string]string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:      getenv("APP_SERVICE", "kelasi"),
		AppVersion:   getenv("APP_VERSION", "0.1.0"),
		Environment:  environment,
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "kelasi"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		Providers: ProvidersConfig{
			StripeWebhookSecret: strings.TrimSpace(getenv("STRIPE_WEBHOOK_SECRET", "")),
			StripeXOFRate:       getenvFloat("STRIPE_XOF_RATE", 655.957),
			MTNMoMoEnabled:      getenvBool("MTN_MOMO_ENABLED", true),
			LygosEnabled:        getenvBool("LYGOS_ENABLED", true),
			CinetPayEnabled:     getenvBool("CINETPAY_ENABLED", true),
			MonerooEnabled:      getenvBool("MONEROO_ENABLED", true),
			Delimiters: map[string]string{
				// CinetPay order ids cannot carry single underscores.
				"cinetpay": "__",
			},
		},

		RateLimit: RateLimitConfig{
			Enabled:            getenvBool("RATE_LIMIT_ENABLED", false),
			WebhookRate:        getenvFloat("RATE_LIMIT_WEBHOOK_RATE", 50),
			WebhookBurst:       getenvInt("RATE_LIMIT_WEBHOOK_BURST", 100),
			WebhookSourceRate:  getenvFloat("RATE_LIMIT_WEBHOOK_SOURCE_RATE", 10),
			WebhookSourceBurst: getenvInt("RATE_LIMIT_WEBHOOK_SOURCE_BURST", 20),
		},

		DriftToleranceMinor: getenvInt64("BILLING_DRIFT_TOLERANCE_MINOR", 0),
		EnforceAmountMatch:  getenvBool("BILLING_ENFORCE_AMOUNT_MATCH", false),

		SweepEnabled:         getenvBool("SUBSCRIPTION_SWEEP_ENABLED", true),
		SweepIntervalSeconds: getenvInt("SUBSCRIPTION_SWEEP_INTERVAL_SECONDS", 3600),

		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
