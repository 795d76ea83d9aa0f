// Package pathutil provides centralized path management for journal data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for the store, the catalog, the export history and ledger files.
type PathResolver struct {
	dataRoot    string
	storePath   string
	catalogPath string
	historyPath string
	ledgerDir   string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the root directory for all journal data (e.g., ./data)
	DataRoot string
	// StorePath is the journal database file
	StorePath string
	// StoreDriver selects the default store file name ("bolt" or "sqlite")
	StoreDriver string
	// CatalogPath is an optional product catalog file; empty means the bundled catalog
	CatalogPath string
	// LedgerDir is the directory for exported Beancount files
	LedgerDir string
}

// New creates a new PathResolver with the given configuration.
// If StorePath is empty, it defaults to {DataRoot}/journal.db (bolt) or {DataRoot}/journal.sqlite
// If LedgerDir is empty, it defaults to {DataRoot}/ledger
// The export history always lives at {DataRoot}/.export/history.db
func New(config Config) *PathResolver {
	storePath := config.StorePath
	if storePath == "" {
		name := "journal.db"
		if config.StoreDriver == "sqlite" {
			name = "journal.sqlite"
		}
		storePath = filepath.Join(config.DataRoot, name)
	}

	ledgerDir := config.LedgerDir
	if ledgerDir == "" {
		ledgerDir = filepath.Join(config.DataRoot, "ledger")
	}

	return &PathResolver{
		dataRoot:    config.DataRoot,
		storePath:   storePath,
		catalogPath: config.CatalogPath,
		historyPath: filepath.Join(config.DataRoot, ".export", "history.db"),
		ledgerDir:   ledgerDir,
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetStorePath returns the journal database file path.
func (p *PathResolver) GetStorePath() string {
	return p.storePath
}

// GetCatalogPath returns the catalog file path, or "" for the bundled catalog.
func (p *PathResolver) GetCatalogPath() string {
	return p.catalogPath
}

// GetHistoryPath returns the export history database path.
func (p *PathResolver) GetHistoryPath() string {
	return p.historyPath
}

// GetLedgerDir returns the ledger directory.
func (p *PathResolver) GetLedgerDir() string {
	return p.ledgerDir
}

// GetYearDir returns the ledger directory path for a year.
// Example: ./data/ledger/2025
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.ledgerDir, year)
}

// GetMonthFilePath returns the ledger file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ./data/ledger/2025/2025-01.beancount
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	year := parts[0]
	filename := fmt.Sprintf("%s.beancount", yearMonth)

	return filepath.Join(p.GetYearDir(year), filename), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
