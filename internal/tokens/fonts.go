// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"fmt"
	"strings"

	"themeforge/internal/models"
)

// FontOption is a bundled font served from Google Fonts.
type FontOption struct {
	ID       string
	Label    string
	Family   string
	Category string
}

// FontCatalog lists the bundled fonts. The first entry is the fallback for
// unresolved font ids.
var FontCatalog = []FontOption{
	{ID: "inter", Label: "Inter", Family: "Inter", Category: models.FontSansSerif},
	{ID: "orbitron", Label: "Orbitron", Family: "Orbitron", Category: models.FontDisplay},
	{ID: "space-grotesk", Label: "Space Grotesk", Family: "Space Grotesk", Category: models.FontSansSerif},
	{ID: "playfair-display", Label: "Playfair Display", Family: "Playfair Display", Category: models.FontSerif},
	{ID: "jetbrains-mono", Label: "JetBrains Mono", Family: "JetBrains Mono", Category: models.FontMonospace},
}

// CatalogFont looks up a bundled font by id.
func CatalogFont(id string) (FontOption, bool) {
	for _, f := range FontCatalog {
		if f.ID == id {
			return f, true
		}
	}
	return FontOption{}, false
}

// FontStack renders a font-family value with a generic fallback matching
// the category. Display fonts fall back to sans-serif.
func FontStack(family, category string) string {
	generic := "sans-serif"
	switch category {
	case models.FontSerif:
		generic = "serif"
	case models.FontMonospace:
		generic = "monospace"
	}
	return fmt.Sprintf("'%s', %s", family, generic)
}

// GoogleFontsURL builds the stylesheet URL for the given catalog families,
// deduplicated and in first-seen order. It returns "" for no families.
func GoogleFontsURL(families []string) string {
	seen := make(map[string]bool, len(families))
	var parts []string
	for _, f := range families {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		parts = append(parts, "family="+strings.Join(strings.Fields(f), "+")+":wght@400;500;600;700;800")
	}
	if len(parts) == 0 {
		return ""
	}
	return "https://fonts.googleapis.com/css2?" + strings.Join(parts, "&") + "&display=swap"
}
