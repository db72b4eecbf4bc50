// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"themeforge/internal/hexcolor"
	"themeforge/internal/models"
)

// MinStops is the fewest stops a gradient may have.
const MinStops = 2

// GradientPolicy controls which colors a gradient stop may take. With
// AllowArbitraryColors false, stops can only reference palette tokens so
// gradients stay tied to the base palette.
type GradientPolicy struct {
	AllowArbitraryColors bool
}

// varRef matches a single custom property reference, e.g. var(--color-cyan-400).
var varRef = regexp.MustCompile(`^var\(\s*(--[A-Za-z0-9_-]+)\s*\)$`)

// StopsToCSS renders a linear-gradient expression. Stops are emitted in
// the given order.
func StopsToCSS(angle float64, stops []models.GradientStop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.Color + " " + FormatNumber(s.Position) + "%"
	}
	return "linear-gradient(" + FormatNumber(angle) + "deg, " + strings.Join(parts, ", ") + ")"
}

// FormatNumber prints v without trailing zeros: 135 → "135", 12.5 → "12.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClampAngle limits a gradient angle to [0,360]. NaN becomes the default.
func ClampAngle(a float64) float64 {
	if math.IsNaN(a) {
		return DefaultGradientAngle
	}
	return math.Max(0, math.Min(360, a))
}

// ClampPosition limits a stop position to [0,100].
func ClampPosition(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(100, p))
}

// TokenRef returns the reference form of a token variable.
func TokenRef(variable string) string {
	return "var(" + variable + ")"
}

// ParseTokenRef extracts the variable from a "var(--x)" reference.
func ParseTokenRef(s string) (string, bool) {
	m := varRef.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AllowedStopColors lists the token references a restricted gradient stop
// may use, in palette order.
func AllowedStopColors(s *models.Snapshot) []string {
	var out []string
	for _, t := range s.AllTokens() {
		if t.Variable != "" {
			out = append(out, TokenRef(t.Variable))
		}
	}
	return out
}

// ValidateStopColor checks a candidate stop color against the policy and
// returns its canonical form. A non-empty message means the color is
// rejected and the previous value must be kept.
func (p GradientPolicy) ValidateStopColor(s *models.Snapshot, input string) (string, string) {
	if variable, ok := ParseTokenRef(input); ok {
		if _, exists := s.TokenValue(variable); !exists {
			return "", "Unknown color token " + variable + "."
		}
		return TokenRef(variable), ""
	}
	if !p.AllowArbitraryColors {
		return "", "Gradient stops must use a palette color."
	}
	hex, ok := hexcolor.NormalizeHex(input)
	if !ok {
		return "", "Invalid hex color."
	}
	return hex, ""
}

// maxRefDepth bounds reference chains so cycles terminate.
const maxRefDepth = 8

// ResolveValue follows token references until it reaches a literal.
// Unresolvable or cyclic references return the last value seen.
func ResolveValue(s *models.Snapshot, value string) string {
	v := value
	for i := 0; i < maxRefDepth; i++ {
		variable, ok := ParseTokenRef(v)
		if !ok {
			return v
		}
		next, exists := s.TokenValue(variable)
		if !exists {
			return v
		}
		v = next
	}
	return v
}
