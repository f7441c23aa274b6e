package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/backend"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/symptom"
)

// loadDotEnv loads path into the environment if it exists. Variables that
// are already set win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveBackendConfig reads the environment and applies flag overrides.
func resolveBackendConfig(cmd *cobra.Command) (backend.Config, error) {
	cfg, err := backend.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Kind = v
	}
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	return cfg, cfg.Validate()
}

// resolveCatalog returns the catalog named by --catalog or SYMCHECK_CATALOG,
// or the built-in one.
func resolveCatalog(cmd *cobra.Command) (symptom.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv("SYMCHECK_CATALOG")
	}
	if path == "" {
		return symptom.DefaultCatalog(), nil
	}
	return symptom.LoadCatalog(path)
}

// resolveDBPath picks --db, then the store's default location.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newSession wires a Session from flags and environment. eventRepo may be
// nil.
func newSession(cmd *cobra.Command, eventRepo store.EventRepo) (*session.Session, error) {
	catalog, err := resolveCatalog(cmd)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cfg, err := resolveBackendConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}
	b, err := backend.New(cmd.Context(), cfg, eventRepo)
	if err != nil {
		return nil, err
	}
	return session.New(session.Options{
		Catalog:   catalog,
		Backend:   b,
		EventRepo: eventRepo,
	}), nil
}
