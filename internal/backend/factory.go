package backend

import (
	"fmt"
	"log/slog"

	"tally/internal/config"
	"tally/internal/storage"
	"tally/internal/store/memory"
	"tally/internal/store/supabase"
)

// FromAppConfig maps the application configuration onto a backend Config
// and builds the store.
func FromAppConfig(cfg *config.Config) (*Result, error) {
	return New(Config{
		Type:        Type(cfg.DataBackend),
		DBPath:      cfg.SQLiteDBPath,
		SupabaseURL: cfg.SupabaseURL,
		SupabaseKey: cfg.SupabaseKey,
	})
}

func createMemoryBackend() (*Result, error) {
	slog.Info("initializing in-memory backend")
	return &Result{
		Store:   memory.New(),
		Cleanup: func() error { return nil },
	}, nil
}

func createSQLiteBackend(cfg Config) (*Result, error) {
	slog.Info("initializing sqlite backend", "path", cfg.DBPath)

	repo, err := storage.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("create sqlite repository: %w", err)
	}

	return &Result{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func createSupabaseBackend(cfg Config) (*Result, error) {
	slog.Info("initializing supabase backend", "url", cfg.SupabaseURL)

	st, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return nil, fmt.Errorf("create supabase store: %w", err)
	}

	return &Result{
		Store:   st,
		Cleanup: func() error { return nil },
	}, nil
}
