package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"themeforge/internal/bridge"
	"themeforge/internal/models"
	"themeforge/internal/store"
	"themeforge/internal/tokens"
)

func TestEditorMountsFromRemote(t *testing.T) {
	env := newTestEnv(t)
	snap := tokens.DefaultSnapshot()
	snap.EventName = "Remote"
	env.Themes.docs[testTheme] = snap

	rec := env.do(http.MethodGet, "/api/editor/"+testTheme, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got editorState
	decode(t, rec, &got)
	if got.Source != bridge.SourceRemote || got.State != bridge.StateReady {
		t.Errorf("source = %s, state = %s", got.Source, got.State)
	}
	if got.Snapshot == nil || got.Snapshot.EventName != "Remote" {
		t.Errorf("snapshot = %+v", got.Snapshot)
	}
	if env.Drafts.data[testTheme] == nil {
		t.Error("remote snapshot not mirrored to the draft")
	}
}

func TestEditorOps(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		op     tokens.Op
		status int
	}{
		{"event name", tokens.Op{Kind: tokens.OpSetEventName, Value: "Summit"}, http.StatusOK},
		{"section base", tokens.Op{Kind: tokens.OpSetSectionBase, Value: "#112233"}, http.StatusOK},
		{"bad hex", tokens.Op{Kind: tokens.OpSetSectionBase, Value: "nope"}, http.StatusUnprocessableEntity},
		{"unknown preset", tokens.Op{Kind: tokens.OpSetAllSections, Value: "sparkles"}, http.StatusUnprocessableEntity},
		{"missing font", tokens.Op{Kind: tokens.OpAddLocalFont}, http.StatusUnprocessableEntity},
		{"unknown op", tokens.Op{Kind: "explode"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", mustJSON(t, tt.op))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	var got editorState
	decode(t, env.do(http.MethodGet, "/api/editor/"+testTheme, nil), &got)
	if got.Snapshot.EventName != "Summit" || got.Snapshot.SectionBaseColor != "#112233" {
		t.Errorf("accepted ops not applied: %+v", got.Snapshot)
	}
}

func TestEditorOpsRejectsBadJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", []byte("{"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEditorRejectedOpReportsMessage(t *testing.T) {
	env := newTestEnv(t)

	op := tokens.Op{Kind: tokens.OpSetSectionBase, Value: "#zzz"}
	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", mustJSON(t, op))
	var got map[string]string
	decode(t, rec, &got)
	if got["error"] != "Invalid hex color." {
		t.Errorf("error = %q", got["error"])
	}
}

func TestEditorPublish(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", mustJSON(t, tokens.Op{Kind: tokens.OpSetEventName, Value: "Published"}))

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if env.Themes.docs[testTheme] == nil || env.Themes.docs[testTheme].EventName != "Published" {
		t.Error("publish did not reach the store")
	}

	css := env.do(http.MethodGet, "/theme.css", nil)
	if got := css.Header().Get("X-Theme-Source"); got != "render" {
		t.Errorf("X-Theme-Source after publish = %q, want render", got)
	}
}

func TestEditorPublishFailureSetsNotice(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/api/editor/"+testTheme, nil)
	env.Themes.err = &store.RemoteError{Code: store.CodeFailedPrecondition}

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var state editorState
	decode(t, env.do(http.MethodGet, "/api/editor/"+testTheme, nil), &state)
	if state.Notice == nil || state.Notice.Kind != bridge.NoticeFailedPrecondition {
		t.Fatalf("notice = %+v", state.Notice)
	}

	rec = env.do(http.MethodDelete, "/api/editor/"+testTheme+"/notice", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("dismiss status = %d", rec.Code)
	}
	decode(t, env.do(http.MethodGet, "/api/editor/"+testTheme, nil), &state)
	if state.Notice != nil {
		t.Errorf("notice after dismiss = %+v", state.Notice)
	}
}

func TestEditorReset(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", mustJSON(t, tokens.Op{Kind: tokens.OpSetEventName, Value: "Draft"}))

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/reset", nil)
	var got editorState
	decode(t, rec, &got)
	if got.Source != bridge.SourceDefaults || got.Snapshot.EventName != "" {
		t.Errorf("after reset: source = %s, event = %q", got.Source, got.Snapshot.EventName)
	}
	if _, ok := env.Drafts.data[testTheme]; ok {
		t.Error("draft not cleared by reset")
	}
}

func TestEditorTokensCSSAndProperties(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/editor/"+testTheme+"/tokens.css", nil)
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "tokens.css") {
		t.Errorf("Content-Disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(rec.Body.String(), "--color-cyan-400") {
		t.Error("editor tokens.css missing palette")
	}

	rec = env.do(http.MethodGet, "/api/editor/"+testTheme+"/properties", nil)
	var props propertiesResponse
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&props); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, p := range props.Properties {
		if p.Name == tokens.VarCyanBase && p.Value == tokens.DefaultCyan {
			found = true
		}
	}
	if !found {
		t.Errorf("properties missing %s", tokens.VarCyanBase)
	}
	if props.Head == nil {
		t.Error("head should be an empty list, not null")
	}
}

func TestEditorRefusesStylesheetInjection(t *testing.T) {
	env := newTestEnv(t)
	var state editorState
	decode(t, env.do(http.MethodGet, "/api/editor/"+testTheme, nil), &state)
	fam := state.Snapshot.Families[0]
	variable := "--x: red; } </style><script>alert(1)</script>"

	tests := []struct {
		name string
		op   tokens.Op
	}{
		{"particles palette", tokens.Op{Kind: tokens.OpSetParticles, Value: "</style><script>alert(1)</script>"}},
		{"token variable", tokens.Op{Kind: tokens.OpPatchToken, FamilyID: fam.ID, TokenID: fam.Tokens[0].ID, Variable: &variable}},
		{"font family", tokens.Op{Kind: tokens.OpAddLocalFont, Font: &models.LocalFontAsset{
			ID: "local-folder-x", Family: "x'; } </style><script>alert(1)</script>", Format: "woff2", URL: "https://cdn.example/x.woff2",
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/ops", mustJSON(t, tt.op))
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body.String())
			}
		})
	}

	if rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil); rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d: %s", rec.Code, rec.Body.String())
	}
	for _, path := range []string{"/", "/theme.css"} {
		if body := env.do(http.MethodGet, path, nil).Body.String(); strings.Contains(body, "alert(1)") {
			t.Errorf("%s contains injected markup", path)
		}
	}
}

func TestEditorPublishValidatesDraft(t *testing.T) {
	env := newTestEnv(t)
	snap := tokens.DefaultSnapshot()
	snap.ParticlesPalette = "</style><script>alert(1)</script>"
	env.Drafts.data[testTheme] = mustJSON(t, snap)

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	if env.Themes.saves != 0 {
		t.Errorf("saves = %d, want 0", env.Themes.saves)
	}
	if body := env.do(http.MethodGet, "/", nil).Body.String(); strings.Contains(body, "alert(1)") {
		t.Error("preview contains injected markup")
	}
}

func TestEditorPublishAfterFailedLoad(t *testing.T) {
	env := newTestEnv(t)
	published := tokens.DefaultSnapshot()
	published.EventName = "Live"
	env.Themes.docs[testTheme] = published
	env.Themes.err = &store.RemoteError{Code: store.CodeUnavailable}

	var state editorState
	decode(t, env.do(http.MethodGet, "/api/editor/"+testTheme, nil), &state)
	if state.Notice == nil {
		t.Fatal("failed load set no notice")
	}

	env.Themes.err = nil
	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish after recovery: status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := env.Themes.docs[testTheme].EventName; got != "Live" {
		t.Errorf("published EventName = %q, want the reloaded Live", got)
	}
}

func TestEditorPublishRefusesUnloadedDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.Themes.err = &store.RemoteError{Code: store.CodeUnavailable}
	env.do(http.MethodGet, "/api/editor/"+testTheme, nil)

	rec := env.do(http.MethodPost, "/api/editor/"+testTheme+"/publish", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if env.Themes.saves != 0 {
		t.Errorf("saves = %d, want 0", env.Themes.saves)
	}
}
