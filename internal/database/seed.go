package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"themeforge/internal/tokens"
)

// Seed publishes the default theme snapshot under themeID if no document
// exists yet. An existing document is never overwritten.
func Seed(db *sql.DB, themeID string) error {
	doc, err := json.Marshal(tokens.DefaultSnapshot())
	if err != nil {
		return fmt.Errorf("seed encode snapshot: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO themes (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, themeID, doc)
	if err != nil {
		return fmt.Errorf("seed insert theme: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		slog.Info("theme already seeded, skipping", "theme", themeID)
		return nil
	}

	slog.Info("database seeded with default theme", "theme", themeID)
	return nil
}
