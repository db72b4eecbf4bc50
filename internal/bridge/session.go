// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package bridge connects an editing session to its two persistence
// layers: a local draft written on every change, and a remote store that
// is only written on an explicit publish. A valid draft always wins over
// the remote copy on mount.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"themeforge/internal/metrics"
	"themeforge/internal/models"
	"themeforge/internal/tokens"
)

// State is a step of the mount sequence.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoadingLocal  State = "loading-local"
	StateLoadedLocal   State = "loaded-local"
	StateNoLocal       State = "no-local"
	StateLoadingRemote State = "loading-remote"
	StateLoadedRemote  State = "loaded-remote"
	StateNoRemote      State = "no-remote"
	StateError         State = "error"
	StateReady         State = "ready"
)

// RemoteLoadTimeout bounds the remote read during Mount. The read does not
// inherit the caller's cancellation, since its result is shared by every
// request for the theme.
const RemoteLoadTimeout = 15 * time.Second

// ErrNotLoaded is returned by Publish when the published theme could not
// be read and nothing has been edited since, so publishing would replace
// it with the defaults.
var ErrNotLoaded = errors.New("published theme was not loaded")

// ValidationError reports a snapshot refused before it reached the remote
// store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Snapshot origins.
const (
	SourceDefaults = "defaults"
	SourceLocal    = "local"
	SourceRemote   = "remote"
)

// DraftStore holds the unpublished snapshot. LoadDraft returns nil data
// and a nil error when there is no draft.
type DraftStore interface {
	LoadDraft(ctx context.Context, themeID string) ([]byte, error)
	SaveDraft(ctx context.Context, themeID string, data []byte) error
	ClearDraft(ctx context.Context, themeID string) error
}

// RemoteStore holds the published snapshot. Get returns nil, nil when
// nothing is published.
type RemoteStore interface {
	Get(ctx context.Context, themeID string) (*models.Snapshot, error)
	Save(ctx context.Context, themeID string, s *models.Snapshot) error
}

// Session is one theme's editing state and its persistence.
type Session struct {
	themeID string
	drafts  DraftStore
	remote  RemoteStore
	policy  tokens.GradientPolicy

	mu          sync.Mutex
	editor      tokens.Editor
	state       State
	transitions []State
	notice      *Notice
	source      string
	active      bool

	// mounting is closed when the remote read in flight finishes.
	mounting chan struct{}
	// loadFailed is set while the last remote read failed; edited is set
	// by the first change made through the session.
	loadFailed bool
	edited     bool
}

// NewSession creates an unmounted session holding the default snapshot.
// drafts and remote may be nil.
func NewSession(themeID string, drafts DraftStore, remote RemoteStore, policy tokens.GradientPolicy) *Session {
	s := &Session{
		themeID: themeID,
		drafts:  drafts,
		remote:  remote,
		policy:  policy,
		editor:  tokens.NewEditor(tokens.DefaultSnapshot(), policy),
		state:   StateUninitialized,
		source:  SourceDefaults,
		active:  true,
	}
	s.transitions = []State{StateUninitialized}
	return s
}

func (s *Session) setState(st State) {
	s.state = st
	s.transitions = append(s.transitions, st)
}

// Mount loads the starting snapshot. A well-formed local draft is adopted
// and the remote store is not consulted. Otherwise the remote snapshot is
// adopted and mirrored to the draft. Remote failures leave the defaults in
// place and set a Notice; Mount itself never fails.
//
// Callers that arrive while the remote read is in flight wait for it, so
// no edit can be made against the defaults and then overwritten. A failed
// remote read is retried on the next Mount until the session is edited.
func (s *Session) Mount(ctx context.Context) {
	s.mu.Lock()
	if wait := s.mounting; wait != nil {
		s.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
		}
		return
	}
	switch {
	case s.state == StateUninitialized:
		s.setState(StateLoadingLocal)
		if draft := s.loadDraft(ctx); draft != nil {
			s.editor = tokens.NewEditor(draft, s.policy)
			s.source = SourceLocal
			s.setState(StateLoadedLocal)
			s.setState(StateReady)
			s.mu.Unlock()
			return
		}
		s.setState(StateNoLocal)
		if s.remote == nil {
			s.setState(StateNoRemote)
			s.setState(StateReady)
			s.mu.Unlock()
			return
		}
	case s.loadFailed && !s.edited && s.active:
		// Retry the remote read.
	default:
		s.mu.Unlock()
		return
	}
	s.setState(StateLoadingRemote)
	done := make(chan struct{})
	s.mounting = done
	s.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	loadCtx, cancel := context.WithTimeout(bg, RemoteLoadTimeout)
	snap, err := s.remote.Get(loadCtx, s.themeID)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.mounting = nil
		close(done)
	}()
	if !s.active {
		return
	}
	if err != nil {
		n := ClassifyRemoteError(err)
		s.notice = &n
		s.loadFailed = true
		metrics.RemoteErrors.WithLabelValues(n.Kind).Inc()
		slog.Warn("remote theme load failed", "theme", s.themeID, "kind", n.Kind, "error", err)
		s.setState(StateError)
		s.setState(StateReady)
		return
	}
	if s.loadFailed {
		s.loadFailed = false
		s.notice = nil
	}
	if snap == nil {
		s.setState(StateNoRemote)
	} else {
		s.editor = tokens.NewEditor(snap, s.policy)
		s.source = SourceRemote
		s.setState(StateLoadedRemote)
		s.saveDraft(bg)
	}
	s.setState(StateReady)
}

// loadDraft returns the stored draft, or nil when it is missing,
// unreadable or malformed.
func (s *Session) loadDraft(ctx context.Context) *models.Snapshot {
	if s.drafts == nil {
		return nil
	}
	data, err := s.drafts.LoadDraft(ctx, s.themeID)
	if err != nil {
		slog.Warn("draft load failed", "theme", s.themeID, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	return models.DecodeSnapshot(data)
}

// saveDraft mirrors the current snapshot. Failures are logged and dropped.
func (s *Session) saveDraft(ctx context.Context) {
	if s.drafts == nil {
		return
	}
	data, err := json.Marshal(s.editor.Snapshot)
	if err == nil {
		err = s.drafts.SaveDraft(ctx, s.themeID, data)
	}
	if err != nil {
		metrics.DraftWriteErrors.Inc()
		slog.Warn("draft write failed", "theme", s.themeID, "error", err)
	}
}

// Update applies a transition and mirrors the result to the draft.
func (s *Session) Update(ctx context.Context, fn func(tokens.Editor) tokens.Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = fn(s.editor)
	s.edited = true
	s.saveDraft(ctx)
}

// Apply runs one editing operation. A non-empty message means the input
// was rejected and nothing changed.
func (s *Session) Apply(ctx context.Context, op tokens.Op) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, msg, err := tokens.Apply(s.editor, op)
	if err != nil {
		return "", err
	}
	if msg != "" {
		return msg, nil
	}
	s.editor = next
	s.edited = true
	s.saveDraft(ctx)
	return "", nil
}

// Publish saves the current snapshot to the remote store. On failure the
// classified notice is stored and returned as the error. A snapshot that
// fails validation is refused with a *ValidationError, and an unedited
// session whose remote read failed is refused with ErrNotLoaded.
func (s *Session) Publish(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remote == nil {
		n := Notice{Kind: NoticeOther, Message: "No theme store is configured."}
		s.notice = &n
		metrics.Publishes.WithLabelValues("unconfigured").Inc()
		return fmt.Errorf("publish theme %s: no remote store", s.themeID)
	}
	if s.loadFailed && !s.edited {
		metrics.Publishes.WithLabelValues("rejected").Inc()
		return fmt.Errorf("publish theme %s: %w", s.themeID, ErrNotLoaded)
	}
	if msg := tokens.ValidateSnapshot(s.editor.Snapshot); msg != "" {
		metrics.Publishes.WithLabelValues("rejected").Inc()
		return fmt.Errorf("publish theme %s: %w", s.themeID, &ValidationError{Message: msg})
	}
	if err := s.remote.Save(ctx, s.themeID, s.editor.Snapshot); err != nil {
		n := ClassifyRemoteError(err)
		s.notice = &n
		metrics.Publishes.WithLabelValues("error").Inc()
		metrics.RemoteErrors.WithLabelValues(n.Kind).Inc()
		return fmt.Errorf("publish theme %s: %w", s.themeID, err)
	}
	s.notice = nil
	metrics.Publishes.WithLabelValues("ok").Inc()
	slog.Info("theme published", "theme", s.themeID)
	return nil
}

// RestoreDefaults discards the draft and rebuilds the default snapshot.
func (s *Session) RestoreDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drafts != nil {
		if err := s.drafts.ClearDraft(ctx, s.themeID); err != nil {
			slog.Warn("draft clear failed", "theme", s.themeID, "error", err)
		}
	}
	s.editor = tokens.NewEditor(tokens.DefaultSnapshot(), s.policy)
	s.source = SourceDefaults
	s.edited = true
}

// Close marks the session inactive. A remote read still in flight is
// discarded when it returns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// DismissNotice clears the current notice.
func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// Editor returns the current editor. Its snapshot must not be mutated.
func (s *Session) Editor() tokens.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// Snapshot returns a copy of the current snapshot.
func (s *Session) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot.Clone()
}

// State returns the current mount state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transitions returns every state the session has passed through.
func (s *Session) Transitions() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]State(nil), s.transitions...)
}

// Notice returns the current notice, or nil.
func (s *Session) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return nil
	}
	n := *s.notice
	return &n
}

// Source reports where the current snapshot came from.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// ThemeID returns the theme this session edits.
func (s *Session) ThemeID() string {
	return s.themeID
}
