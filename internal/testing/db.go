// Package testing provides test helpers shared across packages.
package testing

import (
	"path/filepath"
	"testing"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/database"
)

// NewTestDB creates a file-backed SQLite database in a temporary directory
// and applies the embedded migrations. The returned cleanup function closes
// the connection; the directory is removed by the test framework.
func NewTestDB(t *testing.T, name string) (*database.DB, func()) {
	t.Helper()

	// Migrations need a real file, so in-memory databases are not used here.
	path := filepath.Join(t.TempDir(), name+".db")

	db, err := database.New(database.Config{
		Path:    path,
		Profile: database.ProfileCache,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	return db, func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
	}
}
