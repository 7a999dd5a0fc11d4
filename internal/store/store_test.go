package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/decaychain/internal/event"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"imports", "events", "particles"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
		"user_version": "1",
	}
	for name, want := range checks {
		if err := s.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_MigrationIndex(t *testing.T) {
	s := createTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_events_import'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("migration index missing: %v", err)
	}
}

func TestClose_NilDB(t *testing.T) {
	var s Store
	if err := s.Close(); err != nil {
		t.Errorf("Close() on zero store = %v", err)
	}
}

// writeTestStore creates a store at path holding two events and closes it.
func writeTestStore(t *testing.T, path string) {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	events := []event.Event{createTestEvent(1), event.New()}
	if _, err := s.Import(context.Background(), "test", events); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
}

func TestOpenReadOnly_ReadsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	writeTestStore(t, path)

	s, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	defer s.Close()

	n, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Entries() = %d, want 2", n)
	}

	if _, err := s.BeginImport(context.Background(), "more"); err == nil {
		t.Error("BeginImport() on a read-only store succeeded")
	}
}

func TestOpenReadOnly_DoesNotModifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	writeTestStore(t, path)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	s, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	if _, err := event.ReadAll(context.Background(), s); err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	s.Close()

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("reading a store changed the database file")
	}
}

func TestOpenReadOnly_RejectsForeignSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE notes (body TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := OpenReadOnly(path); !errors.Is(err, ErrNotEventStore) {
		t.Fatalf("OpenReadOnly() error = %v, want ErrNotEventStore", err)
	}

	db, err = sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var tables int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&tables); err != nil {
		t.Fatal(err)
	}
	if tables != 1 {
		t.Errorf("foreign database has %d tables after OpenReadOnly, want 1", tables)
	}
}

func TestOpenReadOnly_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE events (seq INTEGER); PRAGMA user_version = 1"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := OpenReadOnly(path); !errors.Is(err, ErrNotEventStore) {
		t.Fatalf("OpenReadOnly() error = %v, want ErrNotEventStore", err)
	}
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	if _, err := OpenReadOnly(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("OpenReadOnly() error = %v, want os.ErrNotExist", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("OpenReadOnly() created the database file")
	}
}
