// Package config provides configuration management for the sales journal.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Store   StoreConfig
	Catalog CatalogConfig
	Ledger  LedgerConfig
	TopN    int
	Debug   bool
}

// StoreConfig represents journal storage configuration.
type StoreConfig struct {
	Root        string
	Path        string
	Driver      string
	OpenTimeout time.Duration
}

// CatalogConfig represents product catalog configuration.
type CatalogConfig struct {
	Path string
}

// LedgerConfig represents Beancount export configuration.
type LedgerConfig struct {
	Dir            string
	AccountMapping string
	Currency       string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	topN, err := parseIntEnv("SALES_TOP_N", 5)
	if err != nil {
		return nil, err
	}

	timeout, err := parseDurationEnv("STORE_OPEN_TIMEOUT", time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Store: StoreConfig{
			Root:        getEnvOrDefault("SALES_ROOT", "./data"),
			Path:        os.Getenv("SALES_STORE_PATH"),
			Driver:      strings.ToLower(getEnvOrDefault("SALES_STORE_DRIVER", DriverBolt)),
			OpenTimeout: timeout,
		},
		Catalog: CatalogConfig{
			Path: os.Getenv("SALES_CATALOG_PATH"),
		},
		Ledger: LedgerConfig{
			Dir:            os.Getenv("SALES_LEDGER_DIR"),
			AccountMapping: getEnvOrDefault("SALES_ACCOUNT_MAPPING", "config/account-mapping.yaml"),
			Currency:       getEnvOrDefault("SALES_CURRENCY", "THB"),
		},
		TopN:  topN,
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// Each required path names a field that must be set, e.g. []string{"store", "root"}.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		key := strings.Join(path, ".")
		var value string
		switch key {
		case "store.root":
			value = c.Store.Root
		case "ledger.currency":
			value = c.Ledger.Currency
		case "ledger.account_mapping":
			value = c.Ledger.AccountMapping
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	if c.Store.Driver != DriverBolt && c.Store.Driver != DriverSQLite {
		return fmt.Errorf("invalid SALES_STORE_DRIVER %q (expected %s or %s)", c.Store.Driver, DriverBolt, DriverSQLite)
	}
	if c.TopN < 1 {
		return fmt.Errorf("invalid SALES_TOP_N %d (must be at least 1)", c.TopN)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

// parseDurationEnv parses a time.Duration such as "500ms" from an environment variable.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s: %s", key, value)
	}

	return parsed, nil
}
