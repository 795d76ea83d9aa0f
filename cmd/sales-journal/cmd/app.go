package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/catalog"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/config"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/db"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/journal"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/pathutil"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	paths   *pathutil.PathResolver
	catalog *catalog.Catalog
	store   store.Store
	closers []func() error
}

// openApp loads configuration, the catalog and the journal store.
func openApp() (*app, error) {
	slog.Debug("Loading configuration")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}

	if err := cfg.Validate([]string{"store", "root"}); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	paths := pathutil.New(pathutil.Config{
		DataRoot:    cfg.Store.Root,
		StorePath:   cfg.Store.Path,
		StoreDriver: cfg.Store.Driver,
		CatalogPath: cfg.Catalog.Path,
		LedgerDir:   cfg.Ledger.Dir,
	})

	cat, err := loadCatalog(paths.GetCatalogPath())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, paths: paths, catalog: cat}

	storePath := paths.GetStorePath()
	slog.Debug("Opening journal store", "driver", cfg.Store.Driver, "path", storePath)

	var medium store.Medium
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		conn, err := db.Open(storePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrStorageUnavailable, err)
		}
		a.closers = append(a.closers, conn.Close)
		medium = db.NewKVMedium(conn)
	default:
		bm, err := store.OpenBolt(storePath, cfg.Store.OpenTimeout)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, bm.Close)
		medium = bm
	}

	a.store = store.New(medium)
	return a, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		slog.Debug("Using bundled catalog")
		return catalog.Default()
	}

	slog.Debug("Loading catalog", "path", path)
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// workflow creates the entry workflow, loading the current list.
func (a *app) workflow() (*journal.Workflow, error) {
	return journal.New(a.store, a.catalog, journal.WithLogger(slog.Default()))
}

// Close releases the store.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to close", "error", err)
		}
	}
}

// mustOpenApp opens the app or exits.
func mustOpenApp() *app {
	a, err := openApp()
	exitOnError(err, "failed to open journal")
	return a
}
