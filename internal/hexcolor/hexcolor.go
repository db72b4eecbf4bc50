// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hexcolor implements the hex color helpers behind the theme token
// system: parsing and canonicalizing CSS hex colors, naive sRGB mixing, and
// the fixed tint/shade scales derived from a single base color.
//
// Every function is safe to call on raw user input. Invalid colors never
// panic; they either report ok=false or fall back to a fixed default.
package hexcolor

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strings"
)

const (
	// DefaultOpaque is returned by ToOpaqueHex for unparseable input.
	DefaultOpaque = "#000000"

	// DefaultScaleBase is used by DeriveScale when the base is invalid.
	DefaultScaleBase = "#6366f1"

	// DefaultBackgroundBase is used by DeriveBackgroundScale when the base is invalid.
	DefaultBackgroundBase = "#201c1f"

	White = "#ffffff"
	Black = "#000000"
)

// hexPattern accepts 3, 4, 6 or 8 hex digits without the leading '#'.
var hexPattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// NormalizeHex canonicalizes a hex color to lowercase "#rrggbb" or
// "#rrggbbaa". Short 3/4-digit forms are expanded. The leading '#' is
// optional and surrounding whitespace is ignored.
func NormalizeHex(s string) (string, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexPattern.MatchString(raw) {
		return "", false
	}
	raw = strings.ToLower(raw)
	if len(raw) == 3 || len(raw) == 4 {
		var b strings.Builder
		b.Grow(len(raw) * 2)
		for i := 0; i < len(raw); i++ {
			b.WriteByte(raw[i])
			b.WriteByte(raw[i])
		}
		raw = b.String()
	}
	return "#" + raw, true
}

// IsHex reports whether s parses as a hex color.
func IsHex(s string) bool {
	_, ok := NormalizeHex(s)
	return ok
}

// ToOpaqueHex returns the 6-digit form of s with any alpha channel dropped.
// Invalid input yields DefaultOpaque.
func ToOpaqueHex(s string) string {
	return ToOpaqueHexOr(s, DefaultOpaque)
}

// ToOpaqueHexOr is ToOpaqueHex with a caller-chosen fallback.
func ToOpaqueHexOr(s, fallback string) string {
	n, ok := NormalizeHex(s)
	if !ok {
		return fallback
	}
	return n[:7]
}

// Parse converts s to an opaque color.RGBA. ok is false for invalid input.
func Parse(s string) (color.RGBA, bool) {
	n, ok := NormalizeHex(s)
	if !ok {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: hexByte(n[1:3]),
		G: hexByte(n[3:5]),
		B: hexByte(n[5:7]),
		A: 0xff,
	}, true
}

// Format renders c as lowercase "#rrggbb", ignoring alpha.
func Format(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Mix interpolates a and b channel by channel in sRGB space. weightA is the
// share of a and is clamped to [0,1]. Each channel is rounded half away
// from zero. Invalid inputs are treated as black.
func Mix(a, b string, weightA float64) string {
	ca, _ := Parse(ToOpaqueHex(a))
	cb, _ := Parse(ToOpaqueHex(b))

	wa := clamp01(weightA)
	wb := 1 - wa

	return Format(color.RGBA{
		R: mixChannel(ca.R, cb.R, wa, wb),
		G: mixChannel(ca.G, cb.G, wa, wb),
		B: mixChannel(ca.B, cb.B, wa, wb),
		A: 0xff,
	})
}

// Luminance returns the perceived brightness of c in [0,1]. Invalid input
// reports 0.
func Luminance(c string) float64 {
	rgb, ok := Parse(c)
	if !ok {
		return 0
	}
	return (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
}

// Foreground picks a readable label color for text drawn on top of c.
func Foreground(c string) string {
	if Luminance(c) > 0.55 {
		return "#111111"
	}
	return White
}

func mixChannel(a, b uint8, wa, wb float64) uint8 {
	v := math.Round(float64(a)*wa + float64(b)*wb)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hexByte(s string) uint8 {
	return hexDigit(s[0])<<4 | hexDigit(s[1])
}

func hexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
