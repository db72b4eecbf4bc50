// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"testing"

	"themeforge/internal/models"
)

func newTestEditor() Editor {
	return NewEditor(DefaultSnapshot(), GradientPolicy{})
}

func findGradient(t *testing.T, s *models.Snapshot, variable string) models.GradientToken {
	t.Helper()
	for _, g := range s.Gradients {
		if g.Variable == variable {
			return g
		}
	}
	t.Fatalf("gradient %s not found", variable)
	return models.GradientToken{}
}

func TestNewEditorSelectsFirstFamily(t *testing.T) {
	e := newTestEditor()
	if e.Active != e.Snapshot.Families[0].ID {
		t.Errorf("Active = %q, want first family", e.Active)
	}
	empty := NewEditor(&models.Snapshot{}, GradientPolicy{})
	if empty.Active != ActiveGradients {
		t.Errorf("Active = %q, want %q", empty.Active, ActiveGradients)
	}
}

func TestAddFamilyDoesNotMutateInput(t *testing.T) {
	e := newTestEditor()
	before := len(e.Snapshot.Families)

	next := e.AddFamily()
	if len(next.Snapshot.Families) != before+1 {
		t.Fatalf("families = %d, want %d", len(next.Snapshot.Families), before+1)
	}
	if len(e.Snapshot.Families) != before {
		t.Error("AddFamily mutated the previous snapshot")
	}
	added := next.Snapshot.Families[before]
	if next.Active != added.ID {
		t.Error("new family was not selected")
	}
	if len(added.Tokens) != 0 {
		t.Errorf("new family has %d tokens", len(added.Tokens))
	}
}

func TestDeleteFamilyReselects(t *testing.T) {
	e := newTestEditor()
	first := e.Snapshot.Families[0].ID
	second := e.Snapshot.Families[1].ID

	next := e.DeleteFamily(first)
	if next.Active != second {
		t.Errorf("Active = %q, want %q", next.Active, second)
	}

	// Deleting an inactive family leaves the selection alone.
	kept := e.DeleteFamily(second)
	if kept.Active != first {
		t.Errorf("Active = %q, want %q", kept.Active, first)
	}

	for len(next.Snapshot.Families) > 0 {
		next = next.DeleteFamily(next.Snapshot.Families[0].ID)
	}
	if next.Active != ActiveGradients {
		t.Errorf("Active = %q, want %q", next.Active, ActiveGradients)
	}
}

func TestAddTokenDerivesVariable(t *testing.T) {
	e := newTestEditor()
	fam := e.Snapshot.Families[0]

	next := e.AddToken(fam.ID)
	tokens := next.Snapshot.Families[0].Tokens
	if len(tokens) != 2 {
		t.Fatalf("tokens = %d, want 2", len(tokens))
	}
	if tokens[1].Variable != "--color-primary-cyan-2" {
		t.Errorf("Variable = %q", tokens[1].Variable)
	}
	if tokens[1].Value != DefaultNewColor {
		t.Errorf("Value = %q", tokens[1].Value)
	}
}

func TestDeleteToken(t *testing.T) {
	e := newTestEditor()
	text := e.Snapshot.Families[4]
	next := e.DeleteToken(text.ID, text.Tokens[1].ID)
	if got := len(next.Snapshot.Families[4].Tokens); got != 2 {
		t.Errorf("tokens = %d, want 2", got)
	}
	if next.Snapshot.Families[4].Tokens[1].Variable != VarTextMuted {
		t.Error("wrong token removed")
	}
}

func TestToggleKeyAllowsSeveralKeys(t *testing.T) {
	e := newTestEditor()
	text := e.Snapshot.Families[4]

	next := e.ToggleKey(text.ID, text.Tokens[1].ID)
	tokens := next.Snapshot.Families[4].Tokens
	if !tokens[0].IsKey || !tokens[1].IsKey {
		t.Errorf("keys = %v, %v; want both set", tokens[0].IsKey, tokens[1].IsKey)
	}
	if tokens[2].IsKey {
		t.Error("unrelated token changed")
	}

	back := next.ToggleKey(text.ID, text.Tokens[1].ID)
	if back.Snapshot.Families[4].Tokens[1].IsKey {
		t.Error("second toggle did not clear the flag")
	}
}

func TestSetTokenValue(t *testing.T) {
	e := newTestEditor()
	fam := e.Snapshot.Families[0]
	tok := fam.Tokens[0]

	next, msg := e.SetTokenValue(fam.ID, tok.ID, "#FFF")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := next.Snapshot.Families[0].Tokens[0].Value; got != "#ffffff" {
		t.Errorf("Value = %q", got)
	}

	ref, msg := e.SetTokenValue(fam.ID, tok.ID, "var(--color-pink-400)")
	if msg != "" || ref.Snapshot.Families[0].Tokens[0].Value != "var(--color-pink-400)" {
		t.Errorf("reference rejected: %q", msg)
	}

	same, msg := e.SetTokenValue(fam.ID, tok.ID, "not-a-color")
	if msg == "" {
		t.Fatal("invalid color accepted")
	}
	if same.Snapshot.Families[0].Tokens[0].Value != DefaultCyan {
		t.Error("invalid input changed the value")
	}
}

func TestPatchToken(t *testing.T) {
	e := newTestEditor()
	fam := e.Snapshot.Families[0]
	tok := fam.Tokens[0]

	bad := "color-x"
	if _, msg := e.PatchToken(fam.ID, tok.ID, TokenPatch{Variable: &bad}); msg == "" {
		t.Error("variable without -- accepted")
	}

	label := "Brand"
	next, msg := e.PatchToken(fam.ID, tok.ID, TokenPatch{Label: &label})
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	got := next.Snapshot.Families[0].Tokens[0]
	if got.Label != "Brand" || got.Variable != VarCyanBase {
		t.Errorf("token = %+v", got)
	}
}

func TestRemoveStopKeepsMinimum(t *testing.T) {
	e := newTestEditor()
	primary := findGradient(t, e.Snapshot, "--gradient-primary")

	next := e.RemoveStop(primary.ID, 0)
	if got := findGradient(t, next.Snapshot, "--gradient-primary"); len(got.Stops) != 2 {
		t.Errorf("stops = %d, want 2", len(got.Stops))
	}

	hero := findGradient(t, e.Snapshot, "--gradient-hero")
	next = e.RemoveStop(hero.ID, 1)
	got := findGradient(t, next.Snapshot, "--gradient-hero")
	if len(got.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(got.Stops))
	}
	if got.Stops[1].Position != 100 {
		t.Errorf("wrong stop removed: %+v", got.Stops)
	}
}

func TestAddStopAndClamps(t *testing.T) {
	e := newTestEditor()
	g := findGradient(t, e.Snapshot, "--gradient-primary")

	next := e.AddStop(g.ID).SetAngle(g.ID, 400).SetStopPosition(g.ID, 0, -5)
	got := findGradient(t, next.Snapshot, "--gradient-primary")
	if len(got.Stops) != 3 {
		t.Errorf("stops = %d, want 3", len(got.Stops))
	}
	if got.Stops[2].Position != 50 {
		t.Errorf("new stop position = %v", got.Stops[2].Position)
	}
	if got.Angle != 360 {
		t.Errorf("Angle = %v", got.Angle)
	}
	if got.Stops[0].Position != 0 {
		t.Errorf("Position = %v", got.Stops[0].Position)
	}
}

func TestSetStopColorPolicy(t *testing.T) {
	e := newTestEditor()
	g := findGradient(t, e.Snapshot, "--gradient-primary")

	if _, msg := e.SetStopColor(g.ID, 0, "#123456"); msg == "" {
		t.Error("restricted editor accepted a literal")
	}
	next, msg := e.SetStopColor(g.ID, 0, "var(--color-pink-400)")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := findGradient(t, next.Snapshot, "--gradient-primary").Stops[0].Color; got != "var(--color-pink-400)" {
		t.Errorf("Color = %q", got)
	}

	e.Policy.AllowArbitraryColors = true
	next, msg = e.SetStopColor(g.ID, 1, "#123456")
	if msg != "" || findGradient(t, next.Snapshot, "--gradient-primary").Stops[1].Color != "#123456" {
		t.Errorf("open editor rejected literal: %q", msg)
	}
}

func TestUpdateGradient(t *testing.T) {
	e := NewEditor(DefaultSnapshot(), GradientPolicy{AllowArbitraryColors: true})
	g := findGradient(t, e.Snapshot, "--gradient-primary")

	g.Stops = g.Stops[:1]
	if _, msg := e.UpdateGradient(g); msg == "" {
		t.Error("single-stop gradient accepted")
	}

	g = findGradient(t, e.Snapshot, "--gradient-primary")
	g.Angle = -20
	g.Stops = []models.GradientStop{{Color: "#000000", Position: -1}, {Color: "#ffffff", Position: 101}}
	next, msg := e.UpdateGradient(g)
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	got := findGradient(t, next.Snapshot, "--gradient-primary")
	if got.Angle != 0 || got.Stops[0].Position != 0 || got.Stops[1].Position != 100 {
		t.Errorf("gradient not clamped: %+v", got)
	}
}

func TestSectionFilters(t *testing.T) {
	e := newTestEditor()
	if e.SharedSectionPreset() != CustomPreset {
		t.Errorf("default shared = %q", e.SharedSectionPreset())
	}

	all, msg := e.SetAllSectionFilters("vignette")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := all.SharedSectionPreset(); got != "vignette" {
		t.Errorf("shared = %q", got)
	}

	one, msg := all.SetSectionFilter("hero", "aurora")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := one.SharedSectionPreset(); got != CustomPreset {
		t.Errorf("shared = %q, want custom", got)
	}

	if _, msg := e.SetSectionFilter("sidebar", "aurora"); msg == "" {
		t.Error("unknown section accepted")
	}
	if _, msg := e.SetAllSectionFilters("sparkles"); msg == "" {
		t.Error("unknown preset accepted")
	}
}

func TestSetTypography(t *testing.T) {
	e := newTestEditor()
	next, msg := e.SetTypography(models.RoleHeading, "orbitron")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if next.Snapshot.Typography.Heading != "orbitron" || next.Snapshot.Typography.Primary != "inter" {
		t.Errorf("typography = %+v", next.Snapshot.Typography)
	}
	if e.Snapshot.Typography.Heading != "inter" {
		t.Error("SetTypography mutated the previous snapshot")
	}
	if _, msg := e.SetTypography("caption", "inter"); msg == "" {
		t.Error("unknown role accepted")
	}
}

func TestAddLocalFontIsIdempotent(t *testing.T) {
	e := newTestEditor()
	f := models.LocalFontAsset{ID: "local-folder-brand", Family: "Brand", Format: "woff2", URL: "https://cdn.example/fonts/brand.woff2"}
	once, msg := e.AddLocalFont(f)
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	next, _ := once.AddLocalFont(f)
	if len(next.Snapshot.LocalFonts) != 1 {
		t.Errorf("local fonts = %d, want 1", len(next.Snapshot.LocalFonts))
	}
}

func TestDevElementStyle(t *testing.T) {
	e := newTestEditor()
	next := e.SetDevElementStyle(".hero h1", models.DevElementStyle{"color": "red"})
	if next.Snapshot.DevElements[".hero h1"]["color"] != "red" {
		t.Fatal("style not stored")
	}
	cleared := next.SetDevElementStyle(".hero h1", nil)
	if _, ok := cleared.Snapshot.DevElements[".hero h1"]; ok {
		t.Error("empty style did not remove the selector")
	}
}

func TestApplyDispatch(t *testing.T) {
	e := newTestEditor()
	fam := e.Snapshot.Families[0]

	next, msg, err := Apply(e, Op{Kind: OpSetTokenValue, FamilyID: fam.ID, TokenID: fam.Tokens[0].ID, Value: "#ff00aa"})
	if err != nil || msg != "" {
		t.Fatalf("Apply: %v %q", err, msg)
	}
	if next.Snapshot.Families[0].Tokens[0].Value != "#ff00aa" {
		t.Error("op not applied")
	}

	_, msg, err = Apply(e, Op{Kind: OpSetTokenValue, FamilyID: fam.ID, TokenID: fam.Tokens[0].ID, Value: "zz"})
	if err != nil || msg == "" {
		t.Errorf("invalid value: err=%v msg=%q", err, msg)
	}

	if _, _, err := Apply(e, Op{Kind: "explode"}); err == nil {
		t.Error("unknown op accepted")
	}
}

func TestApplyAddLocalFont(t *testing.T) {
	e := newTestEditor()
	font := &models.LocalFontAsset{ID: "local-folder-brand", Label: "brand.woff2", Family: "brand", Category: models.FontDisplay, Format: "woff2", DataURL: "data:font/woff2;base64,AAAA"}

	next, msg, err := Apply(e, Op{Kind: OpAddLocalFont, Font: font})
	if err != nil || msg != "" {
		t.Fatalf("Apply: %v %q", err, msg)
	}
	if len(next.Snapshot.LocalFonts) != 1 || next.Snapshot.LocalFonts[0].ID != font.ID {
		t.Fatalf("LocalFonts = %+v", next.Snapshot.LocalFonts)
	}

	again, _, _ := Apply(next, Op{Kind: OpAddLocalFont, Font: font})
	if len(again.Snapshot.LocalFonts) != 1 {
		t.Error("same font id added twice")
	}

	_, msg, _ = Apply(e, Op{Kind: OpAddLocalFont, Font: &models.LocalFontAsset{ID: "x"}})
	if msg == "" {
		t.Error("font without data accepted")
	}
}
