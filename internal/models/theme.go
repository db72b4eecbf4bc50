// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// ColorToken is one user-editable color exposed as a CSS custom property.
// Value is either a hex literal or a reference such as "var(--color-cyan-400)".
type ColorToken struct {
	ID       string `json:"id"`
	Variable string `json:"variable"`
	Label    string `json:"label"`
	Hint     string `json:"hint"`
	Value    string `json:"value"`
	IsKey    bool   `json:"isKey,omitempty"`
}

// ColorFamily groups related color tokens under an editable name.
type ColorFamily struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Emoji       string       `json:"emoji"`
	Description string       `json:"description"`
	Tokens      []ColorToken `json:"tokens"`
}

// GradientStop is one color stop of a linear gradient. Position is a
// percentage in [0,100].
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// GradientToken is a named linear gradient exposed as a CSS custom property.
type GradientToken struct {
	ID       string         `json:"id"`
	Variable string         `json:"variable"`
	Label    string         `json:"label"`
	Hint     string         `json:"hint"`
	Angle    float64        `json:"angle"`
	Stops    []GradientStop `json:"stops"`
}

// Typography roles.
const (
	RolePrimary    = "primary"
	RoleSubheading = "subheading"
	RoleHeading    = "heading"
)

// TypographySelection maps each text role to a font id. Ids resolve to an
// uploaded LocalFontAsset first, then to the bundled font catalog.
type TypographySelection struct {
	Primary    string `json:"primary"`
	Subheading string `json:"subheading"`
	Heading    string `json:"heading"`
}

// Get returns the font id selected for role.
func (t TypographySelection) Get(role string) string {
	switch role {
	case RolePrimary:
		return t.Primary
	case RoleSubheading:
		return t.Subheading
	case RoleHeading:
		return t.Heading
	}
	return ""
}

// Font categories.
const (
	FontSansSerif = "sans-serif"
	FontSerif     = "serif"
	FontDisplay   = "display"
	FontMonospace = "monospace"
)

// LocalFontAsset is an uploaded font embedded as a data URL. Assets are
// immutable once created.
type LocalFontAsset struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Family   string `json:"family"`
	Category string `json:"category"`
	Format   string `json:"format"` // woff2, woff, truetype, opentype
	DataURL  string `json:"dataUrl"`
	URL      string `json:"url,omitempty"` // public object-storage copy, if mirrored
}

// SectionFilters assigns a visual overlay preset id to each page section.
type SectionFilters map[string]string

// DevElementStyle holds per-selector inline style overrides from the dev
// tools layer. It is stored and returned untouched.
type DevElementStyle map[string]string

// Snapshot is the complete, persisted state of a theme. It is the unit read
// from and written to the remote store and the draft cache.
type Snapshot struct {
	Families         []ColorFamily              `json:"families"`
	Gradients        []GradientToken            `json:"gradients"`
	SectionBaseColor string                     `json:"sectionBaseColor,omitempty"`
	SectionFilters   SectionFilters             `json:"sectionFilters,omitempty"`
	Typography       *TypographySelection       `json:"typography,omitempty"`
	EventName        string                     `json:"eventName,omitempty"`
	ParticlesPalette string                     `json:"particlesPalette,omitempty"`
	LocalFonts       []LocalFontAsset           `json:"localFonts,omitempty"`
	DevElements      map[string]DevElementStyle `json:"devElements,omitempty"`
	UpdatedAt        *time.Time                 `json:"updatedAt,omitempty"`
}

// AllTokens flattens every family's tokens in family order.
func (s *Snapshot) AllTokens() []ColorToken {
	var out []ColorToken
	for _, f := range s.Families {
		out = append(out, f.Tokens...)
	}
	return out
}

// TokenValue returns the value of the first token with the given variable.
func (s *Snapshot) TokenValue(variable string) (string, bool) {
	for _, f := range s.Families {
		for _, t := range f.Tokens {
			if t.Variable == variable {
				return t.Value, true
			}
		}
	}
	return "", false
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s

	c.Families = make([]ColorFamily, len(s.Families))
	for i, f := range s.Families {
		f.Tokens = append([]ColorToken(nil), f.Tokens...)
		c.Families[i] = f
	}

	c.Gradients = make([]GradientToken, len(s.Gradients))
	for i, g := range s.Gradients {
		g.Stops = append([]GradientStop(nil), g.Stops...)
		c.Gradients[i] = g
	}

	if s.SectionFilters != nil {
		c.SectionFilters = make(SectionFilters, len(s.SectionFilters))
		for k, v := range s.SectionFilters {
			c.SectionFilters[k] = v
		}
	}
	if s.Typography != nil {
		t := *s.Typography
		c.Typography = &t
	}
	if s.LocalFonts != nil {
		c.LocalFonts = append([]LocalFontAsset(nil), s.LocalFonts...)
	}
	if s.DevElements != nil {
		c.DevElements = make(map[string]DevElementStyle, len(s.DevElements))
		for sel, style := range s.DevElements {
			cp := make(DevElementStyle, len(style))
			for k, v := range style {
				cp[k] = v
			}
			c.DevElements[sel] = cp
		}
	}
	if s.UpdatedAt != nil {
		ts := *s.UpdatedAt
		c.UpdatedAt = &ts
	}
	return &c
}

// snapshotShape is used to check the raw JSON type of the required fields
// before decoding into a Snapshot.
type snapshotShape struct {
	Families  json.RawMessage `json:"families"`
	Gradients json.RawMessage `json:"gradients"`
}

// DecodeSnapshot parses a persisted snapshot. It returns nil when the data
// is malformed or when families or gradients are missing or not arrays, so
// a corrupt document is treated as absent rather than partially applied.
func DecodeSnapshot(data []byte) *Snapshot {
	var shape snapshotShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil
	}
	if !isJSONArray(shape.Families) || !isJSONArray(shape.Gradients) {
		return nil
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
