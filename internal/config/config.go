package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Token strategies.
const (
	StrategyJWT  = "jwt"
	StrategyHMAC = "hmac"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	StorageDriver    string
	DatabaseURI      string
	SQLitePath       string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	QueueEnabled     bool
	QueueConcurrency int
	AuthStrategy     string
	JWTSecret        string
	TokenTTL         time.Duration
	PaymentDelay     time.Duration
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	ShutdownTimeout  time.Duration
	PricingFile      string
	AdminEmail       string
	AdminPassword    string
	LogMode          string
	LogFile          string
	Pricing          PricingConfig
}

const (
	defaultRunAddress       = ":8080"
	defaultStorageDriver    = DriverMemory
	defaultSQLitePath       = "storefront.db"
	defaultQueueConcurrency = 4
	defaultAuthStrategy     = StrategyJWT
	defaultJWTSecret        = "change-me-in-production"
	defaultTokenTTL         = 24 * time.Hour
	defaultPaymentDelay     = 3 * time.Second
	defaultSessionTTL       = 30 * time.Minute
	defaultSweepInterval    = time.Minute
	defaultShutdownTimeout  = 10 * time.Second
	defaultLogMode          = "release"
)

// Load reads an optional .env file, then parses configuration from flags and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		StorageDriver:    getString(lookup, "STORAGE_DRIVER", defaultStorageDriver),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		SQLitePath:       getString(lookup, "SQLITE_PATH", defaultSQLitePath),
		RedisAddr:        getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:    getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:          getInt(lookup, "REDIS_DB", 0),
		QueueEnabled:     getBool(lookup, "QUEUE_ENABLED", false),
		QueueConcurrency: getInt(lookup, "QUEUE_CONCURRENCY", defaultQueueConcurrency),
		AuthStrategy:     getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:         getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		PaymentDelay:     getDuration(lookup, "PAYMENT_DELAY", defaultPaymentDelay),
		SessionTTL:       getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SweepInterval:    getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PricingFile:      getString(lookup, "PRICING_FILE", ""),
		AdminEmail:       getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:    getString(lookup, "ADMIN_PASSWORD", ""),
		LogMode:          getString(lookup, "LOG_MODE", defaultLogMode),
		LogFile:          getString(lookup, "LOG_FILE", ""),
	}

	flags := flag.NewFlagSet("storefront", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		paymentDelayStr    = cfg.PaymentDelay.String()
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver: memory, postgres or sqlite")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "SQLite database file")
	flags.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for sessions and queue")
	flags.BoolVar(&cfg.QueueEnabled, "queue", cfg.QueueEnabled, "Enable receipt queue")
	flags.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: jwt or hmac")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&paymentDelayStr, "payment-delay", paymentDelayStr, "Simulated payment delay")
	flags.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Idle checkout session lifetime")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.PricingFile, "pricing", cfg.PricingFile, "Pricing policy file")
	flags.StringVar(&cfg.LogMode, "log-mode", cfg.LogMode, "Log mode: debug or release")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentDelay, err = time.ParseDuration(paymentDelayStr); err != nil {
		return nil, fmt.Errorf("invalid payment delay: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.PaymentDelay < 0 {
		cfg.PaymentDelay = defaultPaymentDelay
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.QueueConcurrency <= 0 {
		cfg.QueueConcurrency = defaultQueueConcurrency
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for postgres storage")
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	switch cfg.AuthStrategy {
	case StrategyJWT, StrategyHMAC:
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.QueueEnabled && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address must be provided when queue is enabled")
	}

	if cfg.Pricing, err = LoadPricing(cfg.PricingFile); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
