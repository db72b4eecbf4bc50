// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package bridge

import (
	"context"
	"sync"

	"themeforge/internal/metrics"
	"themeforge/internal/tokens"
)

// Registry keeps one mounted Session per theme id so concurrent editor
// requests for the same theme share and serialize on it.
type Registry struct {
	drafts DraftStore
	remote RemoteStore
	policy tokens.GradientPolicy

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry(drafts DraftStore, remote RemoteStore, policy tokens.GradientPolicy) *Registry {
	return &Registry{
		drafts:   drafts,
		remote:   remote,
		policy:   policy,
		sessions: make(map[string]*Session),
	}
}

// Session returns the mounted session for themeID, creating it on first use.
func (r *Registry) Session(ctx context.Context, themeID string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[themeID]
	if !ok {
		s = NewSession(themeID, r.drafts, r.remote, r.policy)
		r.sessions[themeID] = s
		metrics.ActiveSessions.Inc()
	}
	r.mu.Unlock()

	s.Mount(ctx)
	return s
}

// Close closes and forgets every session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
		metrics.ActiveSessions.Dec()
	}
}
