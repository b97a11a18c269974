package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// Persistence
	StorageBackend    string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	SQLitePath        string

	// Store
	StoreOwnerID          string // ledger namespace
	StoreAssetsPath       string
	StoreAssetsSchemaPath string

	// Market
	MarketPlatform  string // "", "android" or "ios": selects platform product ids
	MarketWorkers   int
	MarketQueueSize int
	MarketDelay     time.Duration
	MarketOutcome   string

	// MarketBillingSupported is what the sandbox answers to the billing probe
	MarketBillingSupported bool

	EventDeadLetterPath string

	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string // remote addresses whose X-Forwarded-For is honored
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", DefaultStorageBackend)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "virtualstore"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),

		StoreOwnerID:          getEnv("STORE_OWNER_ID", DefaultStoreOwnerID),
		StoreAssetsPath:       getEnv("STORE_ASSETS_PATH", ConfigPathStoreAssets),
		StoreAssetsSchemaPath: getEnv("STORE_ASSETS_SCHEMA_PATH", ConfigPathStoreAssetsSchema),

		MarketPlatform:  strings.ToLower(getEnv("MARKET_PLATFORM", "")),
		MarketWorkers:   getEnvAsInt("MARKET_WORKERS", DefaultMarketWorkers),
		MarketQueueSize: getEnvAsInt("MARKET_QUEUE_SIZE", DefaultMarketQueueSize),
		MarketDelay:     getEnvAsDuration("MARKET_DELAY", DefaultMarketDelay),
		MarketOutcome:   strings.ToLower(getEnv("MARKET_OUTCOME", DefaultMarketOutcome)),

		MarketBillingSupported: getEnvAsBool("MARKET_BILLING_SUPPORTED", true),

		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.StorageBackend {
	case StorageBackendPostgres, StorageBackendSQLite, StorageBackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: expected postgres, sqlite or memory", cfg.StorageBackend)
	}

	switch cfg.MarketOutcome {
	case MarketOutcomeComplete, MarketOutcomeCancel, MarketOutcomeFail:
	default:
		return nil, fmt.Errorf("invalid MARKET_OUTCOME %q: expected complete, cancel or fail", cfg.MarketOutcome)
	}

	switch cfg.MarketPlatform {
	case "", "android", "ios":
	default:
		return nil, fmt.Errorf("invalid MARKET_PLATFORM %q: expected android, ios or empty", cfg.MarketPlatform)
	}

	if cfg.StoreOwnerID == "" {
		return nil, fmt.Errorf("STORE_OWNER_ID must not be empty")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat retrieves a float environment variable, falling back on parse errors
func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable, falling back on parse errors
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated environment variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration retrieves a duration environment variable ("500ms", "5m"), falling back on parse errors
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(DefaultPostgresConnTemplate,
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
