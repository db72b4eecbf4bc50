// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"themeforge/internal/slug"
)

// FontFile is an uploaded font. Metadata and bytes are stored in
// PostgreSQL; a copy may also live in the public object storage bucket.
type FontFile struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Family    string    `json:"family"`
	Category  string    `json:"category"`
	Format    string    `json:"format"`
	MimeType  string    `json:"mime_type"`
	FileName  string    `json:"file_name"`
	Data      []byte    `json:"-"`
	S3Key     string    `json:"s3_key,omitempty"`
	PublicURL string    `json:"public_url,omitempty"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// DataURL embeds the font bytes as a base64 data URL.
func (f *FontFile) DataURL() string {
	return "data:" + f.MimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// Asset converts the stored font to the form snapshots embed.
func (f *FontFile) Asset() LocalFontAsset {
	return LocalFontAsset{
		ID:       f.ID,
		Label:    f.Label,
		Family:   f.Family,
		Category: f.Category,
		Format:   f.Format,
		DataURL:  f.DataURL(),
		URL:      f.PublicURL,
	}
}

// HumanSize returns a human-readable file size string.
func (f *FontFile) HumanSize() string {
	const kb = 1024
	switch {
	case f.SizeBytes >= kb*kb:
		return fmt.Sprintf("%.1f MB", float64(f.SizeBytes)/float64(kb*kb))
	case f.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(f.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", f.SizeBytes)
	}
}

// fontTypes maps accepted extensions to their CSS format and MIME type.
var fontTypes = map[string][2]string{
	".woff2": {"woff2", "font/woff2"},
	".woff":  {"woff", "font/woff"},
	".ttf":   {"truetype", "font/ttf"},
	".otf":   {"opentype", "font/otf"},
}

// FontType returns the CSS format and MIME type for a font file name.
// ok is false for unsupported extensions.
func FontType(fileName string) (format, mime string, ok bool) {
	t, ok := fontTypes[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return "", "", false
	}
	return t[0], t[1], true
}

var (
	familySeparators = regexp.MustCompile(`[_-]+`)
	spaces           = regexp.MustCompile(`\s+`)
)

// FontFamilyFromFileName derives a display family name from a file name.
// Underscores and hyphens separate words: "brand_sans-bold.woff2" →
// "brand sans bold".
func FontFamilyFromFileName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	stem = familySeparators.ReplaceAllString(stem, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(stem, " "))
}

// FontIDFromFileName derives the asset id for an uploaded file name.
func FontIDFromFileName(fileName string) string {
	return "local-folder-" + slug.Identifier(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
}

// NewFontFile describes an upload. fileName should already be sanitized.
// It returns false when the extension is not a supported font type.
func NewFontFile(fileName string, data []byte) (*FontFile, bool) {
	format, mime, ok := FontType(fileName)
	if !ok {
		return nil, false
	}
	return &FontFile{
		ID:        FontIDFromFileName(fileName),
		Label:     fileName,
		Family:    FontFamilyFromFileName(fileName),
		Category:  FontDisplay,
		Format:    format,
		MimeType:  mime,
		FileName:  fileName,
		Data:      data,
		SizeBytes: int64(len(data)),
	}, true
}
