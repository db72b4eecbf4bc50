// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"themeforge/internal/bridge"
	"themeforge/internal/models"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

// Editor serves the server-side editing sessions. Each theme id maps to
// one bridge.Session shared by every request for that theme.
type Editor struct {
	sessions   *bridge.Registry
	fonts      FontAssets
	invalidate InvalidateFunc
}

// NewEditor creates an Editor handler group. fonts and invalidate may be nil.
func NewEditor(sessions *bridge.Registry, fonts FontAssets, invalidate InvalidateFunc) *Editor {
	return &Editor{sessions: sessions, fonts: fonts, invalidate: invalidate}
}

// editorState is the JSON view of a session.
type editorState struct {
	ThemeID             string           `json:"themeId"`
	State               bridge.State     `json:"state"`
	Transitions         []bridge.State   `json:"transitions"`
	Source              string           `json:"source"`
	Notice              *bridge.Notice   `json:"notice"`
	Active              string           `json:"active"`
	SharedSectionPreset string           `json:"sharedSectionPreset"`
	Snapshot            *models.Snapshot `json:"snapshot"`
}

func stateOf(s *bridge.Session) editorState {
	e := s.Editor()
	return editorState{
		ThemeID:             s.ThemeID(),
		State:               s.State(),
		Transitions:         s.Transitions(),
		Source:              s.Source(),
		Notice:              s.Notice(),
		Active:              e.Active,
		SharedSectionPreset: e.SharedSectionPreset(),
		Snapshot:            s.Snapshot(),
	}
}

// session resolves the {id} parameter to a mounted session.
func (ed *Editor) session(w http.ResponseWriter, r *http.Request) *bridge.Session {
	id := themeID(w, r)
	if id == "" {
		return nil
	}
	return ed.sessions.Session(r.Context(), id)
}

// Get returns the session state and current snapshot.
func (ed *Editor) Get(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

// Ops applies one editing operation. Rejected input answers 422 with the
// inline message; the snapshot is unchanged.
func (ed *Editor) Ops(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}

	var op tokens.Op
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err := dec.Decode(&op); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Operation is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON operation.")
		return
	}

	msg, err := s.Apply(r.Context(), op)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

// Publish pushes the session snapshot to the remote store.
func (ed *Editor) Publish(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()
	if err := s.Publish(ctx); err != nil {
		var invalid *bridge.ValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, invalid.Message)
			return
		}
		if errors.Is(err, bridge.ErrNotLoaded) {
			writeError(w, http.StatusConflict, "The published theme could not be loaded. Reload the editor or make a change before publishing.")
			return
		}
		slog.Error("publish failed", "theme", s.ThemeID(), "error", err)
		n := s.Notice()
		status := http.StatusBadGateway
		if n != nil && n.Kind == bridge.NoticeOther && n.Code == "" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"error": noticeMessage(n), "notice": n})
		return
	}
	if ed.invalidate != nil {
		ed.invalidate(ctx, s.ThemeID())
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

func noticeMessage(n *bridge.Notice) string {
	if n == nil {
		return "Publish failed."
	}
	return n.Message
}

// Reset discards the draft and restores the default snapshot.
func (ed *Editor) Reset(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	s.RestoreDefaults(r.Context())
	writeJSON(w, http.StatusOK, stateOf(s))
}

// DismissNotice clears the session notice.
func (ed *Editor) DismissNotice(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	s.DismissNotice()
	w.WriteHeader(http.StatusNoContent)
}

// TokensCSS downloads the working snapshot as tokens.css.
func (ed *Editor) TokensCSS(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	gen := themecss.Generator{Library: fontLibrary(r.Context(), ed.fonts)}
	writeCSS(w, gen.CSS(s.Snapshot()), "tokens.css")
}

// propertiesResponse is the live projection a client applies to its
// document root and head.
type propertiesResponse struct {
	Properties      []themecss.Property    `json:"properties"`
	Head            []themecss.HeadElement `json:"head"`
	UnresolvedFonts []string               `json:"unresolvedFonts,omitempty"`
}

// Properties returns the resolved custom properties of the working snapshot.
func (ed *Editor) Properties(w http.ResponseWriter, r *http.Request) {
	s := ed.session(w, r)
	if s == nil {
		return
	}
	proj := themecss.Resolve(s.Snapshot(), fontLibrary(r.Context(), ed.fonts))
	head := proj.HeadElements()
	if head == nil {
		head = []themecss.HeadElement{}
	}
	writeJSON(w, http.StatusOK, propertiesResponse{
		Properties:      proj.Properties,
		Head:            head,
		UnresolvedFonts: proj.UnresolvedFonts,
	})
}
