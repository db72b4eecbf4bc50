// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"strings"

	"themeforge/internal/hexcolor"
	"themeforge/internal/models"
)

// ActiveGradients is the selection sentinel for the gradients view.
const ActiveGradients = "gradients"

// Editor is the in-memory editing state: the current snapshot plus the
// active family (or ActiveGradients). Methods never mutate the receiver's
// snapshot; each returns a new Editor.
type Editor struct {
	Snapshot *models.Snapshot
	Active   string
	Policy   GradientPolicy
}

// NewEditor wraps s, selecting its first family.
func NewEditor(s *models.Snapshot, policy GradientPolicy) Editor {
	if s == nil {
		s = DefaultSnapshot()
	}
	e := Editor{Snapshot: s, Policy: policy}
	e.Active = firstSelection(s)
	return e
}

func firstSelection(s *models.Snapshot) string {
	if len(s.Families) > 0 {
		return s.Families[0].ID
	}
	return ActiveGradients
}

// with clones the snapshot, applies fn, and returns the resulting editor.
func (e Editor) with(fn func(s *models.Snapshot)) Editor {
	next := e
	next.Snapshot = e.Snapshot.Clone()
	fn(next.Snapshot)
	return next
}

func familyIndex(s *models.Snapshot, id string) int {
	for i, f := range s.Families {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func tokenIndex(f *models.ColorFamily, id string) int {
	for i, t := range f.Tokens {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func gradientIndex(s *models.Snapshot, id string) int {
	for i, g := range s.Gradients {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Select changes the active family or view. Unknown ids are ignored.
func (e Editor) Select(id string) Editor {
	if id != ActiveGradients && familyIndex(e.Snapshot, id) < 0 {
		return e
	}
	e.Active = id
	return e
}

// AddFamily appends an empty family and selects it.
func (e Editor) AddFamily() Editor {
	f := NewFamily()
	next := e.with(func(s *models.Snapshot) {
		s.Families = append(s.Families, f)
	})
	next.Active = f.ID
	return next
}

// DeleteFamily removes a family. If it was active, the first remaining
// family (or the gradients view) becomes active.
func (e Editor) DeleteFamily(id string) Editor {
	if familyIndex(e.Snapshot, id) < 0 {
		return e
	}
	next := e.with(func(s *models.Snapshot) {
		i := familyIndex(s, id)
		s.Families = append(s.Families[:i], s.Families[i+1:]...)
	})
	if e.Active == id {
		next.Active = firstSelection(next.Snapshot)
	}
	return next
}

// FamilyPatch carries optional family field updates.
type FamilyPatch struct {
	Name        *string
	Emoji       *string
	Description *string
}

// PatchFamily updates the given family fields.
func (e Editor) PatchFamily(id string, p FamilyPatch) Editor {
	if familyIndex(e.Snapshot, id) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		f := &s.Families[familyIndex(s, id)]
		if p.Name != nil {
			f.Name = *p.Name
		}
		if p.Emoji != nil {
			f.Emoji = *p.Emoji
		}
		if p.Description != nil {
			f.Description = *p.Description
		}
	})
}

// AddToken appends a new token to a family. Its variable is derived from
// the family name and the token's 1-based position.
func (e Editor) AddToken(familyID string) Editor {
	if familyIndex(e.Snapshot, familyID) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		f := &s.Families[familyIndex(s, familyID)]
		f.Tokens = append(f.Tokens, NewToken(f.Name, len(f.Tokens)))
	})
}

// DeleteToken removes a token from a family.
func (e Editor) DeleteToken(familyID, tokenID string) Editor {
	fi := familyIndex(e.Snapshot, familyID)
	if fi < 0 || tokenIndex(&e.Snapshot.Families[fi], tokenID) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		f := &s.Families[fi]
		ti := tokenIndex(f, tokenID)
		f.Tokens = append(f.Tokens[:ti], f.Tokens[ti+1:]...)
	})
}

// ToggleKey flips IsKey on exactly one token. Sibling tokens keep their
// flags, so a family may have several key tokens.
func (e Editor) ToggleKey(familyID, tokenID string) Editor {
	return e.patchToken(familyID, tokenID, func(t *models.ColorToken) {
		t.IsKey = !t.IsKey
	})
}

// SetTokenValue sets a token's color from user input. Hex input is
// normalized; "var(--x)" references are kept as given. On invalid input
// the editor is returned unchanged with a message for the user.
func (e Editor) SetTokenValue(familyID, tokenID, input string) (Editor, string) {
	value, ok := hexcolor.NormalizeHex(input)
	if !ok {
		variable, isRef := ParseTokenRef(input)
		if !isRef {
			return e, "Invalid hex color. Use #rgb, #rrggbb or #rrggbbaa."
		}
		value = TokenRef(variable)
	}
	return e.patchToken(familyID, tokenID, func(t *models.ColorToken) {
		t.Value = value
	}), ""
}

// TokenPatch carries optional token text updates.
type TokenPatch struct {
	Label    *string
	Hint     *string
	Variable *string
}

// PatchToken updates a token's descriptive fields. A variable must be a
// custom property name; otherwise a message is returned and nothing changes.
func (e Editor) PatchToken(familyID, tokenID string, p TokenPatch) (Editor, string) {
	if p.Variable != nil {
		if msg := ValidateVariable(strings.TrimSpace(*p.Variable)); msg != "" {
			return e, msg
		}
	}
	return e.patchToken(familyID, tokenID, func(t *models.ColorToken) {
		if p.Label != nil {
			t.Label = *p.Label
		}
		if p.Hint != nil {
			t.Hint = *p.Hint
		}
		if p.Variable != nil {
			t.Variable = strings.TrimSpace(*p.Variable)
		}
	}), ""
}

func (e Editor) patchToken(familyID, tokenID string, fn func(t *models.ColorToken)) Editor {
	fi := familyIndex(e.Snapshot, familyID)
	if fi < 0 || tokenIndex(&e.Snapshot.Families[fi], tokenID) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		f := &s.Families[fi]
		fn(&f.Tokens[tokenIndex(f, tokenID)])
	})
}

// AddGradient appends a new two-stop gradient.
func (e Editor) AddGradient() Editor {
	return e.with(func(s *models.Snapshot) {
		s.Gradients = append(s.Gradients, NewGradient())
	})
}

// DeleteGradient removes a gradient by id.
func (e Editor) DeleteGradient(id string) Editor {
	if gradientIndex(e.Snapshot, id) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		i := gradientIndex(s, id)
		s.Gradients = append(s.Gradients[:i], s.Gradients[i+1:]...)
	})
}

// UpdateGradient replaces a gradient with the same id. Angle and stop
// positions are clamped. Every stop color goes through the editor's
// policy, except colors the gradient already has. The first rejected field
// is reported and nothing changes.
func (e Editor) UpdateGradient(g models.GradientToken) (Editor, string) {
	gi := gradientIndex(e.Snapshot, g.ID)
	if gi < 0 {
		return e, ""
	}
	if len(g.Stops) < MinStops {
		return e, "A gradient needs at least two stops."
	}
	if len(g.Stops) > MaxStops {
		return e, "A gradient can have at most 16 stops."
	}
	g.Variable = strings.TrimSpace(g.Variable)
	if msg := ValidateVariable(g.Variable); msg != "" {
		return e, msg
	}
	current := e.Snapshot.Gradients[gi]
	g.Angle = ClampAngle(g.Angle)
	g.Stops = append([]models.GradientStop(nil), g.Stops...)
	for i := range g.Stops {
		color, msg := e.updatedStopColor(current, g.Stops[i].Color)
		if msg != "" {
			return e, msg
		}
		g.Stops[i].Color = color
		g.Stops[i].Position = ClampPosition(g.Stops[i].Position)
	}
	return e.with(func(s *models.Snapshot) {
		s.Gradients[gradientIndex(s, g.ID)] = g
	}), ""
}

func (e Editor) updatedStopColor(current models.GradientToken, input string) (string, string) {
	input = strings.TrimSpace(input)
	for _, st := range current.Stops {
		if st.Color == input && ValidColorValue(input) {
			return input, ""
		}
	}
	return e.Policy.ValidateStopColor(e.Snapshot, input)
}

func (e Editor) patchGradient(id string, fn func(g *models.GradientToken)) Editor {
	if gradientIndex(e.Snapshot, id) < 0 {
		return e
	}
	return e.with(func(s *models.Snapshot) {
		fn(&s.Gradients[gradientIndex(s, id)])
	})
}

// AddStop appends a mid-position stop.
func (e Editor) AddStop(gradientID string) Editor {
	return e.patchGradient(gradientID, func(g *models.GradientToken) {
		g.Stops = append(g.Stops, NewGradientStop(DefaultNewColor))
	})
}

// RemoveStop deletes a stop. Removing below MinStops is a no-op.
func (e Editor) RemoveStop(gradientID string, index int) Editor {
	gi := gradientIndex(e.Snapshot, gradientID)
	if gi < 0 {
		return e
	}
	stops := e.Snapshot.Gradients[gi].Stops
	if len(stops) <= MinStops || index < 0 || index >= len(stops) {
		return e
	}
	return e.patchGradient(gradientID, func(g *models.GradientToken) {
		g.Stops = append(g.Stops[:index], g.Stops[index+1:]...)
	})
}

// SetStopColor changes one stop color subject to the editor's policy.
func (e Editor) SetStopColor(gradientID string, index int, input string) (Editor, string) {
	gi := gradientIndex(e.Snapshot, gradientID)
	if gi < 0 || index < 0 || index >= len(e.Snapshot.Gradients[gi].Stops) {
		return e, ""
	}
	color, msg := e.Policy.ValidateStopColor(e.Snapshot, input)
	if msg != "" {
		return e, msg
	}
	return e.patchGradient(gradientID, func(g *models.GradientToken) {
		g.Stops[index].Color = color
	}), ""
}

// SetStopPosition moves one stop, clamped to [0,100]. Stops are not
// re-sorted.
func (e Editor) SetStopPosition(gradientID string, index int, position float64) Editor {
	gi := gradientIndex(e.Snapshot, gradientID)
	if gi < 0 || index < 0 || index >= len(e.Snapshot.Gradients[gi].Stops) {
		return e
	}
	return e.patchGradient(gradientID, func(g *models.GradientToken) {
		g.Stops[index].Position = ClampPosition(position)
	})
}

// SetAngle changes a gradient's direction, clamped to [0,360].
func (e Editor) SetAngle(gradientID string, angle float64) Editor {
	return e.patchGradient(gradientID, func(g *models.GradientToken) {
		g.Angle = ClampAngle(angle)
	})
}

// SetSectionFilter assigns an overlay preset to one section.
func (e Editor) SetSectionFilter(section, preset string) (Editor, string) {
	if !IsSection(section) {
		return e, "Unknown section " + section + "."
	}
	if !IsPreset(preset) {
		return e, "Unknown overlay preset " + preset + "."
	}
	return e.with(func(s *models.Snapshot) {
		if s.SectionFilters == nil {
			s.SectionFilters = DefaultSectionFilters()
		}
		s.SectionFilters[section] = preset
	}), ""
}

// SetAllSectionFilters assigns one preset to every section.
func (e Editor) SetAllSectionFilters(preset string) (Editor, string) {
	if !IsPreset(preset) {
		return e, "Unknown overlay preset " + preset + "."
	}
	return e.with(func(s *models.Snapshot) {
		s.SectionFilters = make(models.SectionFilters, len(SectionIDs))
		for _, id := range SectionIDs {
			s.SectionFilters[id] = preset
		}
	}), ""
}

// SharedSectionPreset reads back the common preset or CustomPreset.
func (e Editor) SharedSectionPreset() string {
	return SharedSectionPreset(e.Snapshot.SectionFilters)
}

// SetSectionBaseColor sets the base background from user hex input.
func (e Editor) SetSectionBaseColor(input string) (Editor, string) {
	hex, ok := hexcolor.NormalizeHex(input)
	if !ok {
		return e, "Invalid hex color."
	}
	return e.with(func(s *models.Snapshot) {
		s.SectionBaseColor = hex
	}), ""
}

// SetTypography selects the font id for a role.
func (e Editor) SetTypography(role, fontID string) (Editor, string) {
	switch role {
	case models.RolePrimary, models.RoleSubheading, models.RoleHeading:
	default:
		return e, "Unknown typography role " + role + "."
	}
	return e.with(func(s *models.Snapshot) {
		t := DefaultTypography()
		if s.Typography != nil {
			t = *s.Typography
		}
		switch role {
		case models.RolePrimary:
			t.Primary = fontID
		case models.RoleSubheading:
			t.Subheading = fontID
		case models.RoleHeading:
			t.Heading = fontID
		}
		s.Typography = &t
	}), ""
}

// AddLocalFont embeds an uploaded font in the snapshot. Assets are
// immutable, so an id that is already present is left as is.
func (e Editor) AddLocalFont(f models.LocalFontAsset) (Editor, string) {
	if msg := ValidateLocalFont(f); msg != "" {
		return e, msg
	}
	for _, existing := range e.Snapshot.LocalFonts {
		if existing.ID == f.ID {
			return e, ""
		}
	}
	return e.with(func(s *models.Snapshot) {
		s.LocalFonts = append(s.LocalFonts, f)
	}), ""
}

// SetEventName sets the event display name.
func (e Editor) SetEventName(name string) Editor {
	return e.with(func(s *models.Snapshot) {
		s.EventName = strings.TrimSpace(name)
	})
}

// SetParticlesPalette overrides the particle palette with a comma
// separated list of hex colors. Empty clears the override so the palette
// is derived from the base colors again.
func (e Editor) SetParticlesPalette(palette string) (Editor, string) {
	if msg := ValidateParticlesPalette(palette); msg != "" {
		return e, msg
	}
	return e.with(func(s *models.Snapshot) {
		s.ParticlesPalette = strings.TrimSpace(palette)
	}), ""
}

// SetDevElementStyle stores an inline style override for a selector.
// An empty style removes the selector.
func (e Editor) SetDevElementStyle(selector string, style models.DevElementStyle) Editor {
	return e.with(func(s *models.Snapshot) {
		if len(style) == 0 {
			delete(s.DevElements, selector)
			return
		}
		if s.DevElements == nil {
			s.DevElements = make(map[string]models.DevElementStyle)
		}
		cp := make(models.DevElementStyle, len(style))
		for k, v := range style {
			cp[k] = v
		}
		s.DevElements[selector] = cp
	})
}
