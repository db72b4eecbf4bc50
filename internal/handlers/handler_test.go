// handler_test.go provides in-memory fakes and a chi router wired the way
// the server wires it, so handler tests run without PostgreSQL or Valkey.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"themeforge/internal/bridge"
	"themeforge/internal/models"
	"themeforge/internal/render"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

// memThemes is an in-memory ThemeStore.
type memThemes struct {
	mu    sync.Mutex
	docs  map[string]*models.Snapshot
	err   error
	saves int
}

func newMemThemes() *memThemes {
	return &memThemes{docs: make(map[string]*models.Snapshot)}
}

func (m *memThemes) Get(_ context.Context, id string) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.docs[id]; ok {
		return s.Clone(), nil
	}
	return nil, nil
}

func (m *memThemes) Save(_ context.Context, id string, s *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.docs[id] = s.Clone()
	m.saves++
	return nil
}

// memDrafts is an in-memory bridge.DraftStore.
type memDrafts struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memDrafts) LoadDraft(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[id], nil
}

func (m *memDrafts) SaveDraft(_ context.Context, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = data
	return nil
}

func (m *memDrafts) ClearDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// memFonts is an in-memory FontLibrary.
type memFonts struct {
	mu    sync.Mutex
	fonts []models.FontFile
}

func (m *memFonts) Create(_ context.Context, f *models.FontFile) (*models.FontFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *f
	m.fonts = append(m.fonts, c)
	return &c, nil
}

func (m *memFonts) SetObjectKey(_ context.Context, id, key, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.fonts {
		if m.fonts[i].ID == id {
			m.fonts[i].S3Key = key
			m.fonts[i].PublicURL = url
		}
	}
	return nil
}

func (m *memFonts) Assets(_ context.Context) ([]models.LocalFontAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LocalFontAsset, len(m.fonts))
	for i := range m.fonts {
		out[i] = m.fonts[i].Asset()
	}
	return out, nil
}

// memObjects is an in-memory ObjectStore.
type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memObjects) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memObjects) FileURL(key string) string {
	return "https://cdn.example/" + key
}

// memCSS is an in-memory StylesheetCache.
type memCSS struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCSS) Get(_ context.Context, id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	css, ok := m.data[id]
	return css, ok
}

func (m *memCSS) Set(_ context.Context, id string, css []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = css
}

func (m *memCSS) Invalidate(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
}

const testTheme = "test-theme"

// testEnv holds the fakes and the router under test.
type testEnv struct {
	Themes   *memThemes
	Drafts   *memDrafts
	Fonts    *memFonts
	Objects  *memObjects
	CSS      *memCSS
	Sessions *bridge.Registry
	Public   *Public
	Router   chi.Router
}

// newTestEnv wires every handler group against in-memory fakes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Themes:  newMemThemes(),
		Drafts:  &memDrafts{data: make(map[string][]byte)},
		Fonts:   &memFonts{},
		Objects: &memObjects{objects: make(map[string][]byte)},
		CSS:     &memCSS{data: make(map[string][]byte)},
	}
	env.Sessions = bridge.NewRegistry(env.Drafts, env.Themes, tokens.GradientPolicy{})
	t.Cleanup(env.Sessions.Close)

	pages, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	bootstrap, err := themecss.BootstrapScript("")
	if err != nil {
		t.Fatalf("BootstrapScript: %v", err)
	}
	renderer := themecss.NewServerRenderer(env.Themes, testTheme, 0, themecss.Generator{})
	env.Public = NewPublic(testTheme, renderer, env.CSS, pages, bootstrap)

	themes := NewThemes(env.Themes, env.Fonts, env.Public.InvalidateTheme)
	editor := NewEditor(env.Sessions, env.Fonts, env.Public.InvalidateTheme)
	fonts := NewFonts(env.Fonts, env.Objects, env.Sessions, 1<<20)

	r := chi.NewRouter()
	r.Get("/health", env.Public.Health)
	r.Get("/theme.css", env.Public.Stylesheet)
	r.Get("/theme/bootstrap.js", env.Public.Bootstrap)
	r.Get("/", env.Public.Preview)
	r.Get("/tokens", env.Public.Tokens)
	r.Get("/api/themes/{id}", themes.Get)
	r.Put("/api/themes/{id}", themes.Put)
	r.Get("/api/themes/{id}/tokens.css", themes.TokensCSS)
	r.Get("/api/editor/{id}", editor.Get)
	r.Post("/api/editor/{id}/ops", editor.Ops)
	r.Post("/api/editor/{id}/publish", editor.Publish)
	r.Post("/api/editor/{id}/reset", editor.Reset)
	r.Delete("/api/editor/{id}/notice", editor.DismissNotice)
	r.Get("/api/editor/{id}/tokens.css", editor.TokensCSS)
	r.Get("/api/editor/{id}/properties", editor.Properties)
	r.Get("/api/fonts", fonts.List)
	r.Post("/api/fonts", fonts.Upload)
	env.Router = r
	return env
}

// do sends a request through the router and returns the recorder.
func (e *testEnv) do(method, path string, body []byte) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

// Compile-time checks that the fakes satisfy the handler interfaces.
var (
	_ ThemeStore         = (*memThemes)(nil)
	_ FontLibrary        = (*memFonts)(nil)
	_ ObjectStore        = (*memObjects)(nil)
	_ StylesheetCache    = (*memCSS)(nil)
	_ bridge.DraftStore  = (*memDrafts)(nil)
	_ bridge.RemoteStore = (*memThemes)(nil)
)
