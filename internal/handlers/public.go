// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"themeforge/internal/metrics"
	"themeforge/internal/render"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

// StylesheetCacheControl lets browsers and CDNs hold theme.css briefly
// and serve it stale while they refetch in the background.
const StylesheetCacheControl = "public, max-age=60, stale-while-revalidate=300"

// StylesheetCache stores rendered CSS between requests.
type StylesheetCache interface {
	Get(ctx context.Context, themeID string) ([]byte, bool)
	Set(ctx context.Context, themeID string, css []byte)
	Invalidate(ctx context.Context, themeID string)
}

// Public groups handlers for the served theme: the stylesheet, the
// bootstrap script and the preview pages. It checks the Valkey stylesheet
// cache before rendering and stores rendered results on miss.
type Public struct {
	themeID   string
	renderer  *themecss.ServerRenderer
	cssCache  StylesheetCache
	pages     *render.Renderer
	bootstrap string
}

// NewPublic creates a new Public handler group. cssCache may be nil.
func NewPublic(themeID string, renderer *themecss.ServerRenderer, cssCache StylesheetCache, pages *render.Renderer, bootstrap string) *Public {
	return &Public{
		themeID:   themeID,
		renderer:  renderer,
		cssCache:  cssCache,
		pages:     pages,
		bootstrap: bootstrap,
	}
}

// stylesheet returns the served theme CSS and where it came from.
func (p *Public) stylesheet(ctx context.Context) (css, source string) {
	if p.cssCache != nil {
		if cached, ok := p.cssCache.Get(ctx, p.themeID); ok {
			return string(cached), "cache"
		}
	}
	css, ok := p.renderer.Render(ctx)
	if !ok {
		return css, "fallback"
	}
	if p.cssCache != nil {
		p.cssCache.Set(ctx, p.themeID, []byte(css))
	}
	return css, "render"
}

// Stylesheet serves /theme.css. It never fails: without a published
// snapshot the plain fallback comment is served.
func (p *Public) Stylesheet(w http.ResponseWriter, r *http.Request) {
	css, source := p.stylesheet(r.Context())
	metrics.StylesheetServed.WithLabelValues(source).Inc()

	w.Header().Set("Cache-Control", StylesheetCacheControl)
	w.Header().Set("X-Theme-Source", source)
	writeCSS(w, css, "")
}

// Bootstrap serves the pre-paint draft script.
func (p *Public) Bootstrap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(p.bootstrap))
}

// Preview renders the theme preview page with the server stylesheet and
// the bootstrap script inlined, so a stored draft is applied before the
// first paint.
func (p *Public) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	css, source := p.stylesheet(ctx)
	snap := p.renderer.Snapshot(ctx)

	title := "Theme preview"
	if snap != nil && snap.EventName != "" {
		title = snap.EventName
	}
	data := &render.PageData{
		Title:     title,
		Section:   "preview",
		CSS:       css,
		Bootstrap: p.bootstrap,
		Snapshot:  snap,
		Data:      map[string]any{"sections": tokens.SectionIDs},
	}
	if source == "fallback" {
		data.Notice = "No theme is published yet. Showing built-in defaults."
	}
	p.pages.Page(w, r, "preview", data)
}

// Tokens renders the list of resolved custom properties.
func (p *Public) Tokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	css, _ := p.stylesheet(ctx)
	snap := p.renderer.Snapshot(ctx)

	data := &render.PageData{
		Title:     "Theme tokens",
		Section:   "tokens",
		CSS:       css,
		Bootstrap: p.bootstrap,
		Snapshot:  snap,
	}
	if snap != nil {
		data.Props = themecss.Resolve(snap, p.renderer.Generator().Library).Properties
	} else {
		data.Notice = "No theme is published yet."
	}
	p.pages.Page(w, r, "tokens", data)
}

// Health reports liveness and whether a remote theme store is wired.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	remote := "unconfigured"
	if p.renderer.Configured() {
		remote = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"theme":  p.themeID,
		"remote": remote,
	})
}

// InvalidateTheme drops the cached stylesheet of themeID. The in-memory
// snapshot is only held for the served theme.
func (p *Public) InvalidateTheme(ctx context.Context, themeID string) {
	if p.cssCache != nil {
		p.cssCache.Invalidate(ctx, themeID)
	}
	if themeID == p.themeID {
		p.renderer.Invalidate()
	}
	slog.Debug("theme caches invalidated", "theme", themeID)
}
