package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SALES_ROOT", "SALES_STORE_PATH", "SALES_STORE_DRIVER", "SALES_CATALOG_PATH",
	"SALES_LEDGER_DIR", "SALES_ACCOUNT_MAPPING", "SALES_CURRENCY", "SALES_TOP_N",
	"STORE_OPEN_TIMEOUT", "DEBUG",
}

// clearEnv blanks every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Store.Root)
	assert.Equal(t, DriverBolt, cfg.Store.Driver)
	assert.Equal(t, time.Second, cfg.Store.OpenTimeout)
	assert.Equal(t, "THB", cfg.Ledger.Currency)
	assert.Equal(t, 5, cfg.TopN)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate([]string{"store", "root"}))
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	// godotenv does not override variables that are already set, even if empty
	for _, key := range configKeys {
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "SALES_ROOT=/srv/shop\nSALES_STORE_DRIVER=SQLite\nSALES_TOP_N=3\nSTORE_OPEN_TIMEOUT=250ms\nDEBUG=true\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, key := range configKeys {
			_ = os.Unsetenv(key)
		}
	})

	assert.Equal(t, "/srv/shop", cfg.Store.Root)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.OpenTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)

	t.Setenv("SALES_TOP_N", "five")
	_, err := Load()
	assert.ErrorContains(t, err, "SALES_TOP_N")

	t.Setenv("SALES_TOP_N", "")
	t.Setenv("STORE_OPEN_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE_OPEN_TIMEOUT")

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "failed to load .env file")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Root: "data", Driver: DriverBolt},
		Ledger: LedgerConfig{Currency: "THB"},
		TopN:   5,
	}
	assert.NoError(t, cfg.Validate([]string{"store", "root"}, []string{"ledger", "currency"}))

	cfg.Ledger.Currency = " "
	err := cfg.Validate([]string{"ledger", "currency"}, []string{"ledger", "account_mapping"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.currency")
	assert.Contains(t, err.Error(), "ledger.account_mapping")

	assert.ErrorContains(t, cfg.Validate([]string{"catalog", "path"}), "unknown configuration key")
	cfg.Ledger.Currency = "THB"

	cfg.Store.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "SALES_STORE_DRIVER")

	cfg.Store.Driver = DriverSQLite
	cfg.TopN = 0
	assert.ErrorContains(t, cfg.Validate(), "SALES_TOP_N")
}
