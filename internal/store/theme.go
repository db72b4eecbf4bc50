// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"themeforge/internal/models"
)

// ThemeStore persists published snapshots as one JSONB document per
// theme id.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// snapshotKeys are the document keys a save always owns. They are removed
// from the stored document before merging so a field cleared in the new
// snapshot does not survive from the old one. Unknown keys are kept.
const snapshotKeys = `ARRAY['families','gradients','sectionBaseColor','sectionFilters','typography','eventName','particlesPalette','localFonts','devElements','updatedAt']`

// Get returns the published snapshot for id, with UpdatedAt set from the
// row. Returns nil if there is no document or the document is malformed.
func (s *ThemeStore) Get(ctx context.Context, id string) (*models.Snapshot, error) {
	var (
		doc     []byte
		updated time.Time
	)
	err := s.db.QueryRowContext(ctx, `SELECT document, updated_at FROM themes WHERE id = $1`, id).Scan(&doc, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get theme: %w", classifyPgError(err))
	}

	snap := models.DecodeSnapshot(doc)
	if snap == nil {
		slog.Warn("stored theme document is malformed, treating as absent", "theme", id)
		return nil, nil
	}
	snap.UpdatedAt = &updated
	return snap, nil
}

// Save writes snap as the published document for id. The last writer wins.
func (s *ThemeStore) Save(ctx context.Context, id string, snap *models.Snapshot) error {
	c := snap.Clone()
	c.UpdatedAt = nil
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO themes (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET document = (themes.document - `+snapshotKeys+`) || EXCLUDED.document,
		    updated_at = NOW()
	`, id, doc)
	if err != nil {
		return fmt.Errorf("save theme: %w", classifyPgError(err))
	}
	return nil
}
