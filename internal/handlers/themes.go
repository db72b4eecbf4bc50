// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"themeforge/internal/bridge"
	"themeforge/internal/models"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

// ThemeStore reads and writes published snapshots.
type ThemeStore interface {
	Get(ctx context.Context, themeID string) (*models.Snapshot, error)
	Save(ctx context.Context, themeID string, s *models.Snapshot) error
}

// FontAssets lists uploaded fonts in the form snapshots embed.
type FontAssets interface {
	Assets(ctx context.Context) ([]models.LocalFontAsset, error)
}

// Themes serves the published theme API used by the CLI and by sites
// that fetch the snapshot directly.
type Themes struct {
	store      ThemeStore
	fonts      FontAssets
	invalidate InvalidateFunc
}

// NewThemes creates a Themes handler group. store is nil when no database
// is configured; fonts and invalidate may be nil.
func NewThemes(store ThemeStore, fonts FontAssets, invalidate InvalidateFunc) *Themes {
	return &Themes{store: store, fonts: fonts, invalidate: invalidate}
}

// themeID reads and validates the {id} URL parameter. It writes the error
// response and returns "" when the id is invalid.
func themeID(w http.ResponseWriter, r *http.Request) string {
	id := chi.URLParam(r, "id")
	if msg := validateThemeID(id); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return ""
	}
	return id
}

// remoteFailure writes a classified remote error.
func remoteFailure(w http.ResponseWriter, err error) {
	n := bridge.ClassifyRemoteError(err)
	writeJSON(w, http.StatusBadGateway, map[string]any{"error": n.Message, "notice": n})
}

// Get returns the published snapshot as JSON.
func (t *Themes) Get(w http.ResponseWriter, r *http.Request) {
	id := themeID(w, r)
	if id == "" {
		return
	}
	if t.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No theme store is configured.")
		return
	}
	snap, err := t.store.Get(r.Context(), id)
	if err != nil {
		slog.Error("get theme failed", "theme", id, "error", err)
		remoteFailure(w, err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "Theme not found.")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Put validates a snapshot document and publishes it.
func (t *Themes) Put(w http.ResponseWriter, r *http.Request) {
	id := themeID(w, r)
	if id == "" {
		return
	}
	if t.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No theme store is configured.")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Theme document is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to read request body.")
		return
	}
	snap := models.DecodeSnapshot(body)
	if snap == nil {
		writeError(w, http.StatusBadRequest, "Invalid theme document: families and gradients must be arrays.")
		return
	}
	if msg := tokens.ValidateSnapshot(snap); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	if err := t.store.Save(ctx, id, snap); err != nil {
		slog.Error("save theme failed", "theme", id, "error", err)
		remoteFailure(w, err)
		return
	}
	if t.invalidate != nil {
		t.invalidate(ctx, id)
	}
	slog.Info("theme saved", "theme", id)
	w.WriteHeader(http.StatusNoContent)
}

// TokensCSS downloads the published theme as tokens.css.
func (t *Themes) TokensCSS(w http.ResponseWriter, r *http.Request) {
	id := themeID(w, r)
	if id == "" {
		return
	}
	if t.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No theme store is configured.")
		return
	}
	ctx := r.Context()
	snap, err := t.store.Get(ctx, id)
	if err != nil {
		remoteFailure(w, err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "Theme not found.")
		return
	}
	gen := themecss.Generator{Library: fontLibrary(ctx, t.fonts)}
	writeCSS(w, gen.CSS(snap), "tokens.css")
}

// fontLibrary loads uploaded fonts for font resolution. Failures leave the
// library empty; snapshots normally embed the fonts they use.
func fontLibrary(ctx context.Context, fonts FontAssets) []models.LocalFontAsset {
	if fonts == nil {
		return nil
	}
	assets, err := fonts.Assets(ctx)
	if err != nil {
		slog.Warn("font library unavailable", "error", err)
		return nil
	}
	return assets
}
