// Package testutil provides shared test helpers for setting up databases and
// media directories.
package testutil

import (
	"os"
	"testing"

	"github.com/aerologix/aerologix/internal/storage"
	"github.com/aerologix/aerologix/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "aerologix-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestMedia creates a temporary media directory with a storage.Provider.
func TestMedia(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	media, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, media
}
