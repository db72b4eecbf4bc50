// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "both arrays", input: `{"families":[],"gradients":[]}`, wantValid: true},
		{name: "populated", input: `{"families":[{"id":"f1","name":"Primary","tokens":[{"id":"t1","variable":"--color-cyan-400","value":"#009e9a","isKey":true}]}],"gradients":[{"id":"g1","variable":"--gradient-primary","angle":135,"stops":[{"color":"#009e9a","position":0},{"color":"#5b2eff","position":100}]}],"eventName":"GDL Innova"}`, wantValid: true},
		{name: "gradients missing", input: `{"families":[]}`, wantValid: false},
		{name: "families missing", input: `{"gradients":[]}`, wantValid: false},
		{name: "families is object", input: `{"families":{},"gradients":[]}`, wantValid: false},
		{name: "gradients is null", input: `{"families":[],"gradients":null}`, wantValid: false},
		{name: "gradients is string", input: `{"families":[],"gradients":"[]"}`, wantValid: false},
		{name: "not json", input: `{families`, wantValid: false},
		{name: "json null", input: `null`, wantValid: false},
		{name: "json array", input: `[]`, wantValid: false},
		{name: "wrong element type", input: `{"families":[1],"gradients":[]}`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSnapshot([]byte(tt.input))
			if (got != nil) != tt.wantValid {
				t.Fatalf("DecodeSnapshot(%s) valid = %v, want %v", tt.input, got != nil, tt.wantValid)
			}
		})
	}
}

func TestDecodeSnapshotFields(t *testing.T) {
	s := DecodeSnapshot([]byte(`{"families":[{"id":"f","name":"Text","tokens":[{"id":"a","variable":"--text-primary","value":"#ffffff"}]}],"gradients":[],"sectionBaseColor":"#201c1f","sectionFilters":{"hero":"aurora"},"typography":{"primary":"inter","subheading":"inter","heading":"orbitron"},"particlesPalette":"#fff,#000"}`))
	if s == nil {
		t.Fatal("expected valid snapshot")
	}
	if v, ok := s.TokenValue("--text-primary"); !ok || v != "#ffffff" {
		t.Errorf("TokenValue = %q, %v", v, ok)
	}
	if s.SectionFilters["hero"] != "aurora" {
		t.Errorf("section filter hero = %q", s.SectionFilters["hero"])
	}
	if s.Typography == nil || s.Typography.Get(RoleHeading) != "orbitron" {
		t.Errorf("typography = %+v", s.Typography)
	}
	if s.ParticlesPalette != "#fff,#000" {
		t.Errorf("particles palette = %q", s.ParticlesPalette)
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	orig := &Snapshot{
		Families: []ColorFamily{{ID: "f", Tokens: []ColorToken{{ID: "t", Variable: "--x", Value: "#000000"}}}},
		Gradients: []GradientToken{{ID: "g", Stops: []GradientStop{{Color: "#fff", Position: 0}, {Color: "#000", Position: 100}}}},
		SectionFilters: SectionFilters{"hero": "none"},
		Typography:     &TypographySelection{Primary: "inter"},
		DevElements:    map[string]DevElementStyle{".btn": {"color": "red"}},
	}

	c := orig.Clone()
	c.Families[0].Tokens[0].Value = "#ffffff"
	c.Gradients[0].Stops[0].Color = "#123456"
	c.SectionFilters["hero"] = "aurora"
	c.Typography.Primary = "orbitron"
	c.DevElements[".btn"]["color"] = "blue"

	if orig.Families[0].Tokens[0].Value != "#000000" {
		t.Error("token mutation leaked into original")
	}
	if orig.Gradients[0].Stops[0].Color != "#fff" {
		t.Error("stop mutation leaked into original")
	}
	if orig.SectionFilters["hero"] != "none" {
		t.Error("filter mutation leaked into original")
	}
	if orig.Typography.Primary != "inter" {
		t.Error("typography mutation leaked into original")
	}
	if orig.DevElements[".btn"]["color"] != "red" {
		t.Error("dev element mutation leaked into original")
	}

	var nilSnap *Snapshot
	if nilSnap.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestAllTokensOrder(t *testing.T) {
	s := &Snapshot{Families: []ColorFamily{
		{Tokens: []ColorToken{{Variable: "--a"}, {Variable: "--b"}}},
		{Tokens: []ColorToken{{Variable: "--c"}}},
	}}
	got := s.AllTokens()
	if len(got) != 3 || got[0].Variable != "--a" || got[2].Variable != "--c" {
		t.Errorf("AllTokens = %+v", got)
	}
}
