// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"themeforge/internal/hexcolor"
	"themeforge/internal/models"
)

// Document limits.
const (
	MaxFamilies      = 64
	MaxTokens        = 64
	MaxGradients     = 64
	MaxStops         = 16
	MaxLabelLen      = 120
	MaxEventNameLen  = 200
	MaxFontFamilyLen = 100
)

// variableName is the custom property grammar accepted anywhere a
// variable is written into the stylesheet.
var variableName = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)

// fontFormats are the format() values an @font-face rule may carry.
var fontFormats = map[string]bool{
	"woff2":    true,
	"woff":     true,
	"truetype": true,
	"opentype": true,
}

// ValidVariable reports whether v is a custom property name.
func ValidVariable(v string) bool {
	return variableName.MatchString(v)
}

// ValidateVariable returns a user message when v is not a custom property
// name.
func ValidateVariable(v string) string {
	if !ValidVariable(v) {
		return fmt.Sprintf("Invalid variable name %q. Use --name with letters, digits, '-' or '_'.", v)
	}
	return ""
}

// ValidColorValue reports whether v is a hex color or a var() reference.
func ValidColorValue(v string) bool {
	if hexcolor.IsHex(v) {
		return true
	}
	_, ok := ParseTokenRef(v)
	return ok
}

// ValidateParticlesPalette accepts an empty value or a comma separated
// list of hex colors.
func ValidateParticlesPalette(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	for _, c := range strings.Split(p, ",") {
		if !hexcolor.IsHex(strings.TrimSpace(c)) {
			return "The particles palette must be a comma separated list of hex colors."
		}
	}
	return ""
}

// ValidateLocalFont checks the fields of an embedded font that end up in
// an @font-face rule.
func ValidateLocalFont(f models.LocalFontAsset) string {
	if f.ID == "" || (f.DataURL == "" && f.URL == "") {
		return "Every local font needs an id and a source."
	}
	if msg := validateFontFamily(f.Family); msg != "" {
		return msg
	}
	if !fontFormats[f.Format] {
		return fmt.Sprintf("Unsupported font format %q.", f.Format)
	}
	if f.DataURL != "" && !safeURL(f.DataURL, "data:") {
		return "Font data must be a data: URL."
	}
	if f.URL != "" && !safeURL(f.URL, "https://", "http://") {
		return "Font URL must be an http(s) URL."
	}
	return ""
}

func validateFontFamily(family string) string {
	if strings.TrimSpace(family) == "" {
		return "Every local font needs a family name."
	}
	if utf8.RuneCountInString(family) > MaxFontFamilyLen {
		return "Font family name is too long (max 100 characters)."
	}
	for _, c := range family {
		if strings.ContainsRune(`'"\;{}<>`, c) || unicode.IsControl(c) {
			return fmt.Sprintf("Font family %q contains characters that are not allowed.", family)
		}
	}
	return ""
}

// safeURL reports whether u has one of the prefixes and cannot leave a
// quoted url() argument.
func safeURL(u string, prefixes ...string) bool {
	ok := false
	for _, p := range prefixes {
		if strings.HasPrefix(u, p) {
			ok = true
		}
	}
	if !ok {
		return false
	}
	for _, c := range u {
		if strings.ContainsRune(`'"\()<>`, c) || unicode.IsSpace(c) || unicode.IsControl(c) {
			return false
		}
	}
	return true
}

// ValidateSnapshot checks a whole document and returns the first problem
// found. Snapshots built through Apply always pass; it guards uploaded
// documents and anything about to be published.
func ValidateSnapshot(s *models.Snapshot) string {
	if len(s.Families) > MaxFamilies {
		return "Too many color families (max 64)."
	}
	if len(s.Gradients) > MaxGradients {
		return "Too many gradients (max 64)."
	}

	for _, f := range s.Families {
		if strings.TrimSpace(f.Name) == "" {
			return "Every color family needs a name."
		}
		if len(f.Tokens) > MaxTokens {
			return fmt.Sprintf("Family %q has too many tokens (max 64).", f.Name)
		}
		for _, t := range f.Tokens {
			if msg := ValidateVariable(t.Variable); msg != "" {
				return msg
			}
			if utf8.RuneCountInString(t.Label) > MaxLabelLen {
				return fmt.Sprintf("Label of %s is too long (max 120 characters).", t.Variable)
			}
			if !ValidColorValue(t.Value) {
				return fmt.Sprintf("Invalid color value for %s.", t.Variable)
			}
		}
	}

	for _, g := range s.Gradients {
		if msg := ValidateVariable(g.Variable); msg != "" {
			return msg
		}
		if len(g.Stops) < MinStops {
			return fmt.Sprintf("Gradient %s needs at least %d stops.", g.Variable, MinStops)
		}
		if len(g.Stops) > MaxStops {
			return fmt.Sprintf("Gradient %s has too many stops (max 16).", g.Variable)
		}
		if g.Angle < 0 || g.Angle > 360 {
			return fmt.Sprintf("Gradient %s angle must be between 0 and 360.", g.Variable)
		}
		for _, stop := range g.Stops {
			if !ValidColorValue(stop.Color) {
				return fmt.Sprintf("Invalid stop color in %s.", g.Variable)
			}
			if stop.Position < 0 || stop.Position > 100 {
				return fmt.Sprintf("Stop positions in %s must be between 0 and 100.", g.Variable)
			}
		}
	}

	if s.SectionBaseColor != "" && !hexcolor.IsHex(s.SectionBaseColor) {
		return "Section base color must be a hex color."
	}
	for section, preset := range s.SectionFilters {
		if !IsSection(section) {
			return fmt.Sprintf("Unknown section %q.", section)
		}
		if !IsPreset(preset) {
			return fmt.Sprintf("Unknown overlay preset %q for section %s.", preset, section)
		}
	}
	if utf8.RuneCountInString(s.EventName) > MaxEventNameLen {
		return "Event name is too long (max 200 characters)."
	}
	if msg := ValidateParticlesPalette(s.ParticlesPalette); msg != "" {
		return msg
	}
	for _, f := range s.LocalFonts {
		if msg := ValidateLocalFont(f); msg != "" {
			return msg
		}
	}
	return ""
}
