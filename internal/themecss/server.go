// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package themecss

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"themeforge/internal/models"
)

// FallbackCSS is served when there is no published snapshot.
const FallbackCSS = "/* themeforge-theme: no data */"

// DefaultRevalidate is the snapshot freshness window.
const DefaultRevalidate = 60 * time.Second

// SnapshotSource reads the published snapshot for a theme. A nil snapshot
// with a nil error means nothing is published.
type SnapshotSource interface {
	Get(ctx context.Context, themeID string) (*models.Snapshot, error)
}

// ServerRenderer renders the published theme for server responses. The
// remote snapshot is held in memory and re-read at most once per window;
// a failed refresh keeps serving the previous value.
type ServerRenderer struct {
	source  SnapshotSource
	themeID string
	window  time.Duration
	gen     Generator

	mu        sync.Mutex
	snapshot  *models.Snapshot
	fetchedAt time.Time
	fetched   bool
}

// NewServerRenderer creates a renderer. A nil source is the unconfigured
// state and always yields FallbackCSS.
func NewServerRenderer(source SnapshotSource, themeID string, window time.Duration, gen Generator) *ServerRenderer {
	if window <= 0 {
		window = DefaultRevalidate
	}
	return &ServerRenderer{source: source, themeID: themeID, window: window, gen: gen}
}

func (r *ServerRenderer) now() time.Time {
	if r.gen.Now != nil {
		return r.gen.Now()
	}
	return time.Now()
}

// Snapshot returns the cached published snapshot, refreshing it when the
// window has elapsed. It returns nil when nothing is available.
func (r *ServerRenderer) Snapshot(ctx context.Context) *models.Snapshot {
	if r.source == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fetched && r.now().Sub(r.fetchedAt) < r.window {
		return r.snapshot
	}

	s, err := r.source.Get(ctx, r.themeID)
	if err != nil {
		slog.Warn("theme snapshot refresh failed", "theme", r.themeID, "error", err)
		if r.fetched {
			// Retry after a full window rather than on every request.
			r.fetchedAt = r.now()
		}
		return r.snapshot
	}
	r.snapshot = s
	r.fetchedAt = r.now()
	r.fetched = true
	return s
}

// CSS renders the published theme, or FallbackCSS when there is none.
func (r *ServerRenderer) CSS(ctx context.Context) string {
	css, _ := r.Render(ctx)
	return css
}

// Render is CSS that also reports whether a published snapshot was
// rendered. Callers use it to avoid caching the fallback.
func (r *ServerRenderer) Render(ctx context.Context) (string, bool) {
	s := r.Snapshot(ctx)
	if s == nil {
		return FallbackCSS, false
	}
	return r.gen.CSS(s), true
}

// Generator returns the generator used for rendering.
func (r *ServerRenderer) Generator() Generator {
	return r.gen
}

// Invalidate forces the next call to re-read the remote snapshot.
func (r *ServerRenderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetched = false
}

// Configured reports whether a remote source is wired.
func (r *ServerRenderer) Configured() bool {
	return r.source != nil
}
