// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"themeforge/internal/models"
)

// FontStore handles uploaded font database operations.
type FontStore struct {
	db *sql.DB
}

// NewFontStore creates a new FontStore.
func NewFontStore(db *sql.DB) *FontStore {
	return &FontStore{db: db}
}

// fontColumns lists the columns selected in font queries.
const fontColumns = `id, label, family, category, format, mime_type, file_name, data, s3_key, public_url, size_bytes, created_at`

// scanFont scans a font row from the result set.
func scanFont(scanner interface{ Scan(...any) error }) (*models.FontFile, error) {
	var f models.FontFile
	err := scanner.Scan(&f.ID, &f.Label, &f.Family, &f.Category, &f.Format, &f.MimeType,
		&f.FileName, &f.Data, &f.S3Key, &f.PublicURL, &f.SizeBytes, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// maxNameAttempts bounds the search for a free file name.
const maxNameAttempts = 100

// Create stores a new font. Fonts are immutable, so when the file name is
// taken a numeric suffix is added ("brand-1.woff2") and the id and label
// follow the new name.
func (s *FontStore) Create(ctx context.Context, f *models.FontFile) (*models.FontFile, error) {
	ext := filepath.Ext(f.FileName)
	stem := strings.TrimSuffix(f.FileName, ext)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := f.FileName
		if attempt > 0 {
			name = stem + "-" + strconv.Itoa(attempt) + ext
		}
		candidate := *f
		candidate.FileName = name
		candidate.Label = name
		candidate.ID = models.FontIDFromFileName(name)

		row := s.db.QueryRowContext(ctx, `
			INSERT INTO fonts (id, label, family, category, format, mime_type, file_name, data, s3_key, public_url, size_bytes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING
			RETURNING `+fontColumns,
			candidate.ID, candidate.Label, candidate.Family, candidate.Category, candidate.Format,
			candidate.MimeType, candidate.FileName, candidate.Data, candidate.S3Key, candidate.PublicURL,
			candidate.SizeBytes,
		)
		created, err := scanFont(row)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create font: %w", classifyPgError(err))
		}
		return created, nil
	}
	return nil, fmt.Errorf("create font: no free name for %s", f.FileName)
}

// SetObjectKey records where the font was mirrored in object storage.
func (s *FontStore) SetObjectKey(ctx context.Context, id, key, url string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE fonts SET s3_key = $1, public_url = $2 WHERE id = $3`, key, url, id)
	if err != nil {
		return fmt.Errorf("update font object key: %w", classifyPgError(err))
	}
	return nil
}

// FindByID retrieves a font by id. Returns nil if not found.
func (s *FontStore) FindByID(ctx context.Context, id string) (*models.FontFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+fontColumns+` FROM fonts WHERE id = $1`, id)
	f, err := scanFont(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find font by id: %w", classifyPgError(err))
	}
	return f, nil
}

// List returns every uploaded font in upload order.
func (s *FontStore) List(ctx context.Context) ([]models.FontFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+fontColumns+` FROM fonts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", classifyPgError(err))
	}
	defer rows.Close()

	var items []models.FontFile
	for rows.Next() {
		f, err := scanFont(rows)
		if err != nil {
			return nil, fmt.Errorf("scan font: %w", err)
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// Assets returns every uploaded font in the form snapshots embed.
func (s *FontStore) Assets(ctx context.Context) ([]models.LocalFontAsset, error) {
	fonts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	assets := make([]models.LocalFontAsset, len(fonts))
	for i := range fonts {
		assets[i] = fonts[i].Asset()
	}
	return assets, nil
}
