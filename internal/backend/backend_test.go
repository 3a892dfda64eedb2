package backend

import (
	"testing"
)

func TestCreateMemoryBackend(t *testing.T) {
	result, err := New(Config{Type: Memory})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if result.Store == nil {
		t.Fatal("New() returned nil store")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	dbPath := t.TempDir() + "/tally.db"

	result, err := New(Config{Type: SQLite, DBPath: dbPath})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if result.Store == nil {
		t.Fatal("New() returned nil store")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestCreateUnknownBackend(t *testing.T) {
	_, err := New(Config{Type: "redis"})
	if err == nil {
		t.Fatal("New() = nil error, want failure for unknown backend")
	}
}
