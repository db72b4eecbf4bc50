// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import "themeforge/internal/models"

// SectionIDs is the fixed, ordered list of page sections that accept an
// overlay preset.
var SectionIDs = []string{"hero", "about", "schedule", "tracks", "tech", "evaluation", "cta", "footer"}

// CustomPreset is reported by SharedSectionPreset when sections disagree.
const CustomPreset = "custom"

// NoPreset is the transparent overlay.
const NoPreset = "none"

// OverlayPreset is a named section overlay and the CSS background it
// expands to.
type OverlayPreset struct {
	ID    string
	Label string
	CSS   string
}

// OverlayPresets is the single source for section overlays. The applier,
// the stylesheet generator and the bootstrap script are all built from it.
var OverlayPresets = []OverlayPreset{
	{ID: NoPreset, Label: "None", CSS: "transparent"},
	{ID: "cyan-mist", Label: "Cyan mist", CSS: "radial-gradient(circle at 20% 20%, color-mix(in srgb, var(--color-cyan-400) 20%, transparent) 0%, transparent 65%)"},
	{ID: "purple-glow", Label: "Purple glow", CSS: "radial-gradient(circle at 80% 30%, color-mix(in srgb, var(--color-purple-400) 24%, transparent) 0%, transparent 60%)"},
	{ID: "pink-beam", Label: "Pink beam", CSS: "linear-gradient(135deg, color-mix(in srgb, var(--color-pink-400) 16%, transparent) 0%, transparent 60%)"},
	{ID: "aurora", Label: "Aurora", CSS: "linear-gradient(120deg, color-mix(in srgb, var(--color-cyan-400) 14%, transparent) 0%, color-mix(in srgb, var(--color-purple-400) 14%, transparent) 55%, color-mix(in srgb, var(--color-pink-400) 12%, transparent) 100%)"},
	{ID: "vignette", Label: "Vignette", CSS: "radial-gradient(circle at center, transparent 45%, color-mix(in srgb, var(--bg-dark-primary) 62%, transparent) 100%)"},
}

// OverlayCSS returns the CSS for a preset id, or "transparent" when the
// id is unknown.
func OverlayCSS(id string) string {
	for _, p := range OverlayPresets {
		if p.ID == id {
			return p.CSS
		}
	}
	return "transparent"
}

// IsPreset reports whether id names a known overlay preset.
func IsPreset(id string) bool {
	for _, p := range OverlayPresets {
		if p.ID == id {
			return true
		}
	}
	return false
}

// IsSection reports whether id is one of SectionIDs.
func IsSection(id string) bool {
	for _, s := range SectionIDs {
		if s == id {
			return true
		}
	}
	return false
}

// DefaultSectionFilters gives the hero the aurora overlay and leaves the
// other sections clear.
func DefaultSectionFilters() models.SectionFilters {
	f := make(models.SectionFilters, len(SectionIDs))
	for _, id := range SectionIDs {
		f[id] = NoPreset
	}
	f["hero"] = "aurora"
	return f
}

// SectionPreset resolves the preset for one section, falling back to the
// default assignment when the snapshot has none.
func SectionPreset(filters models.SectionFilters, section string) string {
	if p, ok := filters[section]; ok && p != "" {
		return p
	}
	return DefaultSectionFilters()[section]
}

// SharedSectionPreset returns the preset every section uses, or
// CustomPreset when any two sections differ.
func SharedSectionPreset(filters models.SectionFilters) string {
	shared := ""
	for i, id := range SectionIDs {
		p := SectionPreset(filters, id)
		if i == 0 {
			shared = p
			continue
		}
		if p != shared {
			return CustomPreset
		}
	}
	return shared
}
