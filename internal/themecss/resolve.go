// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package themecss projects a theme snapshot onto CSS custom properties.
// Resolve is the single derivation used by the live applier, the
// downloadable stylesheet and the server renderer, so all three emit the
// same values for the same snapshot.
package themecss

import (
	"fmt"
	"strings"

	"themeforge/internal/hexcolor"
	"themeforge/internal/models"
	"themeforge/internal/tokens"
)

// Property groups, in emission order.
const (
	GroupTokens     = "tokens"
	GroupScales     = "scales"
	GroupBackground = "background"
	GroupGradients  = "gradients"
	GroupSections   = "sections"
	GroupParticles  = "particles"
	GroupTypography = "typography"
)

// Managed head element ids.
const (
	GoogleFontsLinkID = "theme-google-fonts"
	LocalFontsStyleID = "theme-local-fonts"
)

// Property is one custom property write on the document root. Group is
// the heading it is listed under in generated CSS.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Group string `json:"group"`
}

// HeadElement is a <link> or <style> element managed in the document head.
type HeadElement struct {
	ID      string `json:"id"`
	Tag     string `json:"tag"` // "link" or "style"
	Href    string `json:"href,omitempty"`
	Content string `json:"content,omitempty"`
}

// Projection is everything the snapshot contributes to a document.
type Projection struct {
	Properties []Property `json:"properties"`

	// GoogleFontsURL is the stylesheet for catalog fonts in use, or "".
	GoogleFontsURL string `json:"googleFontsUrl,omitempty"`

	// FontFaces holds one @font-face rule per local font in use.
	FontFaces []string `json:"fontFaces,omitempty"`

	// UnresolvedFonts lists typography ids that matched neither a local
	// asset nor the catalog and were replaced by the first catalog font.
	UnresolvedFonts []string `json:"unresolvedFonts,omitempty"`
}

// Value returns the projected value of a property.
func (p Projection) Value(name string) (string, bool) {
	for _, prop := range p.Properties {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// HeadElements returns the managed head elements the projection needs.
func (p Projection) HeadElements() []HeadElement {
	var els []HeadElement
	if p.GoogleFontsURL != "" {
		els = append(els, HeadElement{ID: GoogleFontsLinkID, Tag: "link", Href: p.GoogleFontsURL})
	}
	if len(p.FontFaces) > 0 {
		els = append(els, HeadElement{ID: LocalFontsStyleID, Tag: "style", Content: strings.Join(p.FontFaces, "\n")})
	}
	return els
}

// propertyList keeps first-write order; a later write to the same name
// replaces the value in place, the same way setProperty overwrites.
type propertyList struct {
	props []Property
	index map[string]int
}

func (l *propertyList) set(group, name, value string) {
	if name == "" || strings.TrimSpace(value) == "" {
		return
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[name]; ok {
		l.props[i].Value = value
		return
	}
	l.index[name] = len(l.props)
	l.props = append(l.props, Property{Name: name, Value: value, Group: group})
}

// scaleBases are the core variables whose full ramp is derived.
var scaleBases = []struct {
	variable string
	prefix   string
	fallback string
}{
	{tokens.VarCyanBase, "--color-cyan-", tokens.DefaultCyan},
	{tokens.VarPurpleBase, "--color-purple-", tokens.DefaultPurple},
	{tokens.VarPinkBase, "--color-pink-", tokens.DefaultPink},
}

// Resolve derives the projection of s. library holds uploaded fonts that
// are not embedded in the snapshot; it may be nil.
func Resolve(s *models.Snapshot, library []models.LocalFontAsset) Projection {
	var l propertyList
	token := func(variable, fallback string) string {
		if v, ok := s.TokenValue(variable); ok {
			return tokens.ResolveValue(s, v)
		}
		return fallback
	}

	// Raw tokens, passed through untouched.
	for _, t := range s.AllTokens() {
		l.set(GroupTokens, t.Variable, t.Value)
	}

	// Derived ramps. Step 400 overwrites the raw base with its opaque form.
	palette := make([]string, 0, len(scaleBases))
	for _, b := range scaleBases {
		sc := hexcolor.DeriveScale(token(b.variable, b.fallback))
		for _, step := range hexcolor.Steps {
			l.set(GroupScales, fmt.Sprintf("%s%d", b.prefix, step), sc.Step(step))
		}
		palette = append(palette, sc.S400)
	}
	textSecondary := hexcolor.ToOpaqueHexOr(token(tokens.VarTextSecond, tokens.DefaultTextSecondary), tokens.DefaultTextSecondary)
	l.set(GroupScales, tokens.VarTextTertiary, hexcolor.Mix(textSecondary, hexcolor.White, 0.72))

	// Background layers.
	bg := hexcolor.DeriveBackgroundScale(sectionBase(s, token))
	for _, level := range bg.Levels() {
		l.set(GroupBackground, "--bg-dark-"+level[0], level[1])
	}
	l.set(GroupBackground, "--section-base-bg", bg.Secondary)

	for _, g := range s.Gradients {
		if len(g.Stops) == 0 {
			continue
		}
		l.set(GroupGradients, g.Variable, tokens.StopsToCSS(g.Angle, g.Stops))
	}

	for _, id := range tokens.SectionIDs {
		l.set(GroupSections, "--section-filter-"+id, tokens.OverlayCSS(tokens.SectionPreset(s.SectionFilters, id)))
	}

	particles := strings.TrimSpace(s.ParticlesPalette)
	if particles == "" {
		particles = strings.Join(palette, ",")
	}
	l.set(GroupParticles, "--particles-palette", particles)

	fonts := resolveFonts(s, library)
	for _, f := range fonts.roles {
		l.set(GroupTypography, "--font-"+f.role, tokens.FontStack(f.family, f.category))
	}

	return Projection{
		Properties:      l.props,
		GoogleFontsURL:  tokens.GoogleFontsURL(fonts.google),
		FontFaces:       fonts.faces,
		UnresolvedFonts: fonts.unresolved,
	}
}

// sectionBase picks the background base: the explicit section color, then
// the background token, then the stock color.
func sectionBase(s *models.Snapshot, token func(string, string) string) string {
	if hex, ok := hexcolor.NormalizeHex(s.SectionBaseColor); ok {
		return hex
	}
	return token(tokens.VarBgSecondary, tokens.DefaultSectionBase)
}

type roleFont struct {
	role     string
	family   string
	category string
}

type resolvedFonts struct {
	roles      []roleFont
	google     []string
	faces      []string
	unresolved []string
}

var roles = []string{models.RolePrimary, models.RoleSubheading, models.RoleHeading}

func resolveFonts(s *models.Snapshot, library []models.LocalFontAsset) resolvedFonts {
	sel := tokens.DefaultTypography()
	if s.Typography != nil {
		sel = *s.Typography
	}

	var out resolvedFonts
	usedLocal := map[string]bool{}
	for _, role := range roles {
		id := sel.Get(role)
		if asset, ok := findLocalFont(id, s.LocalFonts, library); ok {
			out.roles = append(out.roles, roleFont{role, asset.Family, asset.Category})
			if !usedLocal[asset.ID] {
				usedLocal[asset.ID] = true
				out.faces = append(out.faces, FontFace(asset))
			}
			continue
		}
		font, ok := tokens.CatalogFont(id)
		if !ok {
			font = tokens.FontCatalog[0]
			out.unresolved = append(out.unresolved, id)
		}
		out.roles = append(out.roles, roleFont{role, font.Family, font.Category})
		out.google = append(out.google, font.Family)
	}
	return out
}

func findLocalFont(id string, sets ...[]models.LocalFontAsset) (models.LocalFontAsset, bool) {
	if id == "" {
		return models.LocalFontAsset{}, false
	}
	for _, set := range sets {
		for _, f := range set {
			if f.ID == id {
				return f, true
			}
		}
	}
	return models.LocalFontAsset{}, false
}

// FontFace renders the @font-face rule for a local asset. The embedded
// data URL is preferred over the mirrored object URL.
func FontFace(f models.LocalFontAsset) string {
	src := f.DataURL
	if src == "" {
		src = f.URL
	}
	return fmt.Sprintf("@font-face { font-family: '%s'; src: url('%s') format('%s'); font-display: swap; }", f.Family, src, f.Format)
}
