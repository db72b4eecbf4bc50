// store_test.go provides the database helper shared by the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"testing"

	"themeforge/internal/config"
	"themeforge/internal/database"
)

// testDB connects through database.Connect with the server's environment
// and applies the themes and fonts migrations. The connection is closed
// when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("skipping integration test: config: %v", err)
	}
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// cleanThemes deletes the given theme rows.
func cleanThemes(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := db.Exec("DELETE FROM themes WHERE id = $1", id); err != nil {
			t.Logf("clean theme %s: %v", id, err)
		}
	}
}

// cleanFonts deletes uploaded fonts whose id starts with prefix. Suffixed
// copies created on name collisions share the prefix.
func cleanFonts(t *testing.T, db *sql.DB, prefix string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM fonts WHERE id LIKE $1", prefix+"%"); err != nil {
		t.Logf("clean fonts: %v", err)
	}
}
