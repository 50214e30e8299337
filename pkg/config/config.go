package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Lock manager selection: "local" (in-process) or "redis" (redsync).
	LockBackend       string
	RedisAddr         string
	LockWaitTimeout   time.Duration
	LockRetryInterval time.Duration
	LockExpiry        time.Duration

	// Transaction processor rules.
	MinTxnAmount    int64
	MaxTxnAmount    int64
	CancelWindow    time.Duration
	UseBalanceDelay time.Duration

	// Requests per minute per client IP. Zero disables rate limiting.
	RateLimitPerMinute int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOCK_BACKEND", "local")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("LOCK_WAIT_TIMEOUT", "5s")
	viper.SetDefault("LOCK_RETRY_INTERVAL", "50ms")
	viper.SetDefault("LOCK_EXPIRY", "10s")
	viper.SetDefault("MIN_TXN_AMOUNT", int64(10))
	viper.SetDefault("MAX_TXN_AMOUNT", int64(1_000_000_000))
	viper.SetDefault("CANCEL_WINDOW", "8760h")
	viper.SetDefault("USE_BALANCE_DELAY", "0s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", int64(0))

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.LockBackend = viper.GetString("LOCK_BACKEND")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.LockWaitTimeout = parseDuration("LOCK_WAIT_TIMEOUT", 5*time.Second)
	cfg.LockRetryInterval = parseDuration("LOCK_RETRY_INTERVAL", 50*time.Millisecond)
	cfg.LockExpiry = parseDuration("LOCK_EXPIRY", 10*time.Second)

	cfg.MinTxnAmount = viper.GetInt64("MIN_TXN_AMOUNT")
	cfg.MaxTxnAmount = viper.GetInt64("MAX_TXN_AMOUNT")
	cfg.CancelWindow = parseDuration("CANCEL_WINDOW", 365*24*time.Hour)
	cfg.UseBalanceDelay = parseDuration("USE_BALANCE_DELAY", 0)

	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
