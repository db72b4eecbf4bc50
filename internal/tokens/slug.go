// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"strconv"

	"themeforge/internal/slug"
)

// FamilySlug makes a CSS-safe identifier from a family name.
func FamilySlug(name string) string {
	return slug.Identifier(name)
}

// TokenVariable derives the CSS variable for the token at position index
// (0-based) of a family, e.g. ("Primary", 2) → "--color-primary-3".
func TokenVariable(familyName string, index int) string {
	return "--color-" + FamilySlug(familyName) + "-" + itoa(index+1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
