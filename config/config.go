package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is the process configuration read from the environment
type Config struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration

	StoreDriver string
	MongoURI    string
	DBName      string
	DBTimeout   time.Duration
	DBMaxPool   uint64

	TokenSecret    string
	TokenTTL       time.Duration
	AllowedOrigins []string

	StripeSecretKey string
	PaymentTimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	FirebaseProjectID   string
	FirebaseCredentials string
	FirebaseCredFile    string

	LogLevel string
	LogFile  string
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func env(key string, def interface{}) interface{} {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envFirst(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Load reads the configuration. Call godotenv.Load before it to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            cast.ToString(env("PORT", "5000")),
		Env:             cast.ToString(env("ENV", "development")),
		ShutdownTimeout: cast.ToDuration(env("SHUTDOWN_TIMEOUT", "10s")),

		StoreDriver: strings.ToLower(cast.ToString(env("STORE_DRIVER", DriverMongo))),
		DBName:      cast.ToString(env("DB_NAME", "assetsIT")),
		DBTimeout:   cast.ToDuration(env("DB_TIMEOUT", "10s")),
		DBMaxPool:   cast.ToUint64(env("DB_MAX_POOL", 50)),

		TokenSecret: envFirst("ACCESS_TOKEN_SECRET", "JWT_SECRET"),
		TokenTTL:    cast.ToDuration(env("TOKEN_TTL", "1h")),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PaymentTimeout:  cast.ToDuration(env("PAYMENT_TIMEOUT", "30s")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       cast.ToInt(env("REDIS_DB", 0)),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  cast.ToInt(env("SMTP_PORT", 2525)),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		FromEmail: os.Getenv("FROM_EMAIL"),

		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		FirebaseCredFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		LogLevel: cast.ToString(env("LOG_LEVEL", "info")),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	for _, origin := range strings.Split(cast.ToString(env("ALLOWED_ORIGINS", "http://localhost:5173")), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.MongoURI = envFirst("MONGO_URI", "MONGODB_URI")
	if cfg.MongoURI == "" && os.Getenv("DB_HOST") != "" {
		cfg.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
			url.QueryEscape(os.Getenv("DB_USER_NAME")),
			url.QueryEscape(os.Getenv("DB_PASSWORD")),
			os.Getenv("DB_HOST"))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI, MONGODB_URI or DB_HOST is required for the mongo store driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
