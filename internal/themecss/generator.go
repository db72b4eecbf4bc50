// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package themecss

import (
	"strings"
	"time"

	"themeforge/internal/models"
)

// staticGroup is a block of fixed design constants that no snapshot can
// change.
type staticGroup struct {
	title string
	props [][2]string
}

var staticGroups = []staticGroup{
	{"SPACING", [][2]string{
		{"--spacing-xs", "0.25rem"}, {"--spacing-sm", "0.5rem"}, {"--spacing-md", "1rem"},
		{"--spacing-lg", "1.5rem"}, {"--spacing-xl", "2rem"}, {"--spacing-2xl", "3rem"},
		{"--spacing-3xl", "4rem"},
	}},
	{"FONT SIZES", [][2]string{
		{"--font-size-xs", "0.75rem"}, {"--font-size-sm", "0.875rem"}, {"--font-size-base", "1rem"},
		{"--font-size-lg", "1.125rem"}, {"--font-size-xl", "1.25rem"}, {"--font-size-2xl", "1.5rem"},
		{"--font-size-3xl", "1.875rem"}, {"--font-size-4xl", "2.25rem"}, {"--font-size-5xl", "3rem"},
		{"--font-size-6xl", "3.75rem"},
	}},
	{"EFFECTS", [][2]string{
		{"--glass-bg", "rgba(255,255,255,0.05)"}, {"--glass-border", "rgba(255,255,255,0.1)"},
		{"--glass-blur", "20px"},
		{"--shadow-sm", "0 1px 2px 0 rgba(0,0,0,0.05)"}, {"--shadow-md", "0 4px 6px -1px rgba(0,0,0,0.1)"},
		{"--shadow-lg", "0 10px 15px -3px rgba(0,0,0,0.1)"}, {"--shadow-xl", "0 20px 25px -5px rgba(0,0,0,0.1)"},
		{"--shadow-2xl", "0 25px 50px -12px rgba(0,0,0,0.25)"},
		{"--glow-small", "0 0 20px currentColor"},
		{"--glow-medium", "0 0 20px currentColor,0 0 40px currentColor"},
		{"--glow-large", "0 0 20px currentColor,0 0 40px currentColor,0 0 60px currentColor"},
	}},
	{"TRANSITIONS", [][2]string{
		{"--transition-fast", "150ms cubic-bezier(0.4,0,0.2,1)"},
		{"--transition-normal", "300ms cubic-bezier(0.4,0,0.2,1)"},
		{"--transition-slow", "500ms cubic-bezier(0.4,0,0.2,1)"},
		{"--transition-bounce", "600ms cubic-bezier(0.23,1,0.32,1)"},
	}},
	{"RADII", [][2]string{
		{"--radius-sm", "0.375rem"}, {"--radius-md", "0.5rem"}, {"--radius-lg", "0.75rem"},
		{"--radius-xl", "1rem"}, {"--radius-2xl", "1.5rem"}, {"--radius-full", "9999px"},
	}},
	{"Z-INDEX", [][2]string{
		{"--z-base", "0"}, {"--z-dropdown", "1000"}, {"--z-sticky", "1020"}, {"--z-fixed", "1030"},
		{"--z-modal-backdrop", "1040"}, {"--z-modal", "1050"}, {"--z-popover", "1060"},
		{"--z-tooltip", "1070"},
	}},
}

var groupTitles = map[string]string{
	GroupScales:     "DERIVED SCALES",
	GroupBackground: "BACKGROUND",
	GroupGradients:  "GRADIENTS",
	GroupSections:   "SECTION OVERLAYS",
	GroupParticles:  "PARTICLES",
	GroupTypography: "TYPOGRAPHY",
}

// Generator renders snapshots as static stylesheets.
type Generator struct {
	Library []models.LocalFontAsset
	Now     func() time.Time
}

// Generate renders s with no font library and the current time.
func Generate(s *models.Snapshot) string {
	return Generator{}.CSS(s)
}

// CSS renders the stylesheet for s: a header comment, font imports,
// @font-face rules, then one :root block holding every projected property
// followed by the fixed design constants.
func (g Generator) CSS(s *models.Snapshot) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return render(Resolve(s, g.Library), familyTitles(s), now())
}

// familyTitles maps each raw token variable to its family heading.
func familyTitles(s *models.Snapshot) map[string]string {
	titles := make(map[string]string)
	for _, f := range s.Families {
		for _, t := range f.Tokens {
			if _, ok := titles[t.Variable]; !ok {
				titles[t.Variable] = commentText(strings.ToUpper(f.Name))
			}
		}
	}
	return titles
}

// commentText keeps free text from ending the comment it is written into
// or the <style> element the stylesheet may be inlined in.
func commentText(s string) string {
	s = strings.NewReplacer("*/", "* /", "<", "", ">", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func render(p Projection, families map[string]string, at time.Time) string {
	var b strings.Builder
	b.WriteString("/**\n")
	b.WriteString(" * Design tokens exported from the theme editor\n")
	b.WriteString(" * Generated on " + at.Format("January 2, 2006") + "\n")
	b.WriteString(" * To install, replace styles/theme/tokens.css with this file.\n")
	b.WriteString(" */\n\n")

	if p.GoogleFontsURL != "" {
		b.WriteString("@import url('" + p.GoogleFontsURL + "');\n\n")
	}
	for _, face := range p.FontFaces {
		b.WriteString(face + "\n")
	}
	if len(p.FontFaces) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(":root {\n")
	heading := ""
	for _, prop := range p.Properties {
		title := groupTitles[prop.Group]
		if prop.Group == GroupTokens {
			title = families[prop.Name]
		}
		if title != heading {
			if heading != "" {
				b.WriteString("\n")
			}
			b.WriteString("  /* === " + title + " === */\n")
			heading = title
		}
		b.WriteString("  " + prop.Name + ": " + prop.Value + ";\n")
	}
	for _, sg := range staticGroups {
		b.WriteString("\n  /* === " + sg.title + " (fixed) === */\n")
		for _, kv := range sg.props {
			b.WriteString("  " + kv[0] + ": " + kv[1] + ";\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}
