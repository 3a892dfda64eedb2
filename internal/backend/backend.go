// Package backend wires a concrete store implementation from configuration.
package backend

import (
	"fmt"

	"tally/internal/store"
)

// Type selects which store implementation backs the ledger.
type Type string

const (
	Memory   Type = "memory"
	SQLite   Type = "sqlite"
	Supabase Type = "supabase"
)

// Config carries the settings needed to construct a backend.
type Config struct {
	Type Type

	// SQLite
	DBPath string

	// Supabase
	SupabaseURL string
	SupabaseKey string
}

// Result bundles a ready store with its cleanup hook. Cleanup is safe to
// call even when the backend holds no resources.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// Factory creates a backend from configuration.
type Factory interface {
	Create(cfg Config) (*Result, error)
}

// New builds a backend using the default factory.
func New(cfg Config) (*Result, error) {
	return DefaultFactory{}.Create(cfg)
}

// DefaultFactory implements Factory for the built-in backends.
type DefaultFactory struct{}

func (DefaultFactory) Create(cfg Config) (*Result, error) {
	switch cfg.Type {
	case Memory:
		return createMemoryBackend()
	case SQLite:
		return createSQLiteBackend(cfg)
	case Supabase:
		return createSupabaseBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown backend type: %q", cfg.Type)
	}
}
