package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Ledger lock acquisition: attempts and first backoff step
	LockRetries int
	LockBackoff time.Duration
	LockTTL     time.Duration

	// Stock summary cache TTL in seconds; 0 disables caching
	StockCacheTTL int64

	DefaultCurrency  string
	LowStockSchedule string
	ReindexSchedule  string
	SearchIndex      string

	// Per-IP limit on reserve/release, limiter format ("300-M")
	ReserveRateLimit string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          GetEnv("APP_NAME", "catalog"),
			Port:             GetEnv("PORT", "8080"),
			Env:              GetEnv("APP_ENV", "production"),
			Debug:            GetEnvBool("DEBUG", false),
			LockRetries:      GetEnvInt("LEDGER_LOCK_RETRIES", 3),
			LockBackoff:      GetEnvDuration("LEDGER_LOCK_BACKOFF_MS", 25*time.Millisecond),
			LockTTL:          GetEnvDuration("LEDGER_LOCK_TTL_MS", 5*time.Second),
			StockCacheTTL:    int64(GetEnvInt("STOCK_CACHE_TTL", 300)),
			DefaultCurrency:  GetEnv("DEFAULT_CURRENCY", "USD"),
			LowStockSchedule: GetEnv("LOW_STOCK_SCHEDULE", "0 7 * * *"),
			ReindexSchedule:  GetEnv("STOCK_REINDEX_SCHEDULE", "@every 15m"),
			SearchIndex:      GetEnv("ELASTICSEARCH_INDEX_PREFIX", "catalog"),
			ReserveRateLimit: GetEnv("RESERVE_RATE_LIMIT", "300-M"),
		}
	})
	return AppConfig
}
