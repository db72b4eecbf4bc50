// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns free text into identifiers safe for CSS variable
// names, object keys and file names.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything that isn't a letter, digit, space or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// fileDisallowed is disallowed without underscore, which file names keep.
	fileDisallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// nonAlphanumericRun matches runs of anything outside [a-z0-9].
	nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// fold lowercases s and strips combining marks: "Señal" → "senal".
func fold(s string) string {
	lower := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return out
}

// Generate creates a slug by dropping punctuation and joining words with
// hyphens. Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	return generate(s, disallowed)
}

func generate(s string, drop *regexp.Regexp) string {
	result := strings.TrimSpace(fold(s))
	result = drop.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Identifier replaces every run of non-alphanumerics with one hyphen, so
// punctuation separates words instead of gluing them.
// Example: "Acento — Rosa" → "acento-rosa"
func Identifier(s string) string {
	return strings.Trim(nonAlphanumericRun.ReplaceAllString(fold(s), "-"), "-")
}

// FileName sanitizes an uploaded file name, keeping underscores and its
// lowercased extension. Names with nothing usable become "file" plus the
// extension.
// Example: "My Font (Bold).TTF" → "my-font-bold.ttf"
func FileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.Trim(generate(strings.TrimSuffix(name, filepath.Ext(name)), fileDisallowed), "-_")
	if base == "" {
		base = "file"
	}
	return base + ext
}
