package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPathOverride(t *testing.T) {
	t.Cleanup(ResetPath)

	path := filepath.Join(t.TempDir(), "qd.db")
	SetPath(path)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if got != path {
		t.Fatalf("DefaultPath = %q, want %q", got, path)
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qd.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file at %s: %v", path, err)
	}
}
