package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	if store.DB() == nil {
		t.Error("DB() returned nil")
	}
}

func TestSQLiteStore_Close_Idempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Parallel()

	path, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath() error = %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("DefaultDBPath() = %s is not absolute", path)
	}

	if !strings.HasSuffix(path, filepath.Join(".shifu", "state.db")) {
		t.Errorf("DefaultDBPath() = %s does not end with .shifu/state.db", path)
	}
}

// Helper functions

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}

	return store
}
