// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"themeforge/internal/bridge"
	"themeforge/internal/metrics"
	"themeforge/internal/models"
	"themeforge/internal/slug"
	"themeforge/internal/storage"
	"themeforge/internal/tokens"
)

// FontLibrary stores uploaded fonts.
type FontLibrary interface {
	FontAssets
	Create(ctx context.Context, f *models.FontFile) (*models.FontFile, error)
	SetObjectKey(ctx context.Context, id, key, url string) error
}

// ObjectStore mirrors font files to public object storage.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Fonts serves the uploaded font library.
type Fonts struct {
	library  FontLibrary
	objects  ObjectStore
	sessions *bridge.Registry
	maxBytes int64
}

// NewFonts creates a Fonts handler group. library and objects may be nil;
// sessions may be nil when uploads should not be added to an editor.
func NewFonts(library FontLibrary, objects ObjectStore, sessions *bridge.Registry, maxBytes int64) *Fonts {
	return &Fonts{library: library, objects: objects, sessions: sessions, maxBytes: maxBytes}
}

// List returns every uploaded font. The list is empty, not an error, when
// the library is unavailable.
func (f *Fonts) List(w http.ResponseWriter, r *http.Request) {
	assets := fontLibrary(r.Context(), f.library)
	if assets == nil {
		assets = []models.LocalFontAsset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fonts": assets})
}

// Upload accepts a multipart "font" file. With a "theme" form field the
// new font is also added to that theme's editor session.
func (f *Fonts) Upload(w http.ResponseWriter, r *http.Request) {
	if f.library == nil {
		writeError(w, http.StatusServiceUnavailable, "No font library is configured.")
		return
	}

	// Allow room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, f.maxBytes+1<<20)
	if err := r.ParseMultipartForm(f.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.FontUploads.WithLabelValues("too_large").Inc()
			writeError(w, http.StatusRequestEntityTooLarge, "Font file is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("font")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing font file.")
		return
	}
	defer file.Close()

	if header.Size > f.maxBytes {
		metrics.FontUploads.WithLabelValues("too_large").Inc()
		writeError(w, http.StatusRequestEntityTooLarge, "Font file is too large.")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, f.maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read font file.")
		return
	}
	if int64(len(data)) > f.maxBytes {
		metrics.FontUploads.WithLabelValues("too_large").Inc()
		writeError(w, http.StatusRequestEntityTooLarge, "Font file is too large.")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Font file is empty.")
		return
	}

	font, ok := models.NewFontFile(slug.FileName(header.Filename), data)
	if !ok {
		metrics.FontUploads.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "Unsupported format. Use .woff2, .woff, .ttf or .otf.")
		return
	}

	var themeID string
	if v := r.FormValue("theme"); v != "" {
		if msg := validateThemeID(v); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		themeID = v
	}

	ctx := r.Context()
	created, err := f.library.Create(ctx, font)
	if err != nil {
		slog.Error("create font failed", "file", font.FileName, "error", err)
		metrics.FontUploads.WithLabelValues("error").Inc()
		remoteFailure(w, err)
		return
	}

	if f.objects != nil {
		f.mirror(ctx, created)
	}

	asset := created.Asset()
	if themeID != "" && f.sessions != nil {
		s := f.sessions.Session(ctx, themeID)
		if msg, err := s.Apply(ctx, tokens.Op{Kind: tokens.OpAddLocalFont, Font: &asset}); err != nil || msg != "" {
			slog.Warn("add uploaded font to session failed", "theme", themeID, "font", asset.ID, "message", msg, "error", err)
		}
	}

	metrics.FontUploads.WithLabelValues("ok").Inc()
	slog.Info("font uploaded", "id", created.ID, "size", created.HumanSize())
	writeJSON(w, http.StatusCreated, map[string]any{"font": asset})
}

// mirror copies the font to object storage and records its public URL.
// A failed copy is logged; the font stays usable through its data URL.
func (f *Fonts) mirror(ctx context.Context, font *models.FontFile) {
	key := storage.FontKey(font.FileName)
	if err := f.objects.Upload(ctx, key, font.MimeType, bytes.NewReader(font.Data), font.SizeBytes); err != nil {
		slog.Warn("font mirror upload failed", "id", font.ID, "error", err)
		return
	}
	url := f.objects.FileURL(key)
	if err := f.library.SetObjectKey(ctx, font.ID, key, url); err != nil {
		slog.Warn("font object key update failed", "id", font.ID, "error", err)
		return
	}
	font.S3Key = key
	font.PublicURL = url
}
