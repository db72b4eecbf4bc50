// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hexcolor

// Steps lists the scale steps in ascending order.
var Steps = []int{100, 200, 300, 400, 500, 600}

// Scale is a six-step tint/shade ramp. Step 400 is the base color.
type Scale struct {
	S100 string
	S200 string
	S300 string
	S400 string
	S500 string
	S600 string
}

// Step returns the color for a step from Steps, or "" for unknown steps.
func (s Scale) Step(step int) string {
	switch step {
	case 100:
		return s.S100
	case 200:
		return s.S200
	case 300:
		return s.S300
	case 400:
		return s.S400
	case 500:
		return s.S500
	case 600:
		return s.S600
	}
	return ""
}

// DeriveScale builds the tint/shade ramp for base. Lighter steps mix the
// base toward white, darker steps toward black; the weights are the share
// of the base color and must not change, published palettes depend on them.
func DeriveScale(base string) Scale {
	b := ToOpaqueHexOr(base, DefaultScaleBase)
	return Scale{
		S100: Mix(b, White, 0.22),
		S200: Mix(b, White, 0.38),
		S300: Mix(b, White, 0.62),
		S400: b,
		S500: Mix(b, Black, 0.86),
		S600: Mix(b, Black, 0.70),
	}
}

// BackgroundScale holds the five dark background layers, darkest first.
type BackgroundScale struct {
	Primary    string
	Secondary  string
	Tertiary   string
	Quaternary string
	Quinary    string
}

// Levels returns the named levels in order, darkest first.
func (b BackgroundScale) Levels() [][2]string {
	return [][2]string{
		{"primary", b.Primary},
		{"secondary", b.Secondary},
		{"tertiary", b.Tertiary},
		{"quaternary", b.Quaternary},
		{"quinary", b.Quinary},
	}
}

// DeriveBackgroundScale builds the background layers around base.
// Secondary is always the base itself.
func DeriveBackgroundScale(base string) BackgroundScale {
	b := ToOpaqueHexOr(base, DefaultBackgroundBase)
	return BackgroundScale{
		Primary:    Mix(b, Black, 0.62),
		Secondary:  b,
		Tertiary:   Mix(b, White, 0.88),
		Quaternary: Mix(b, White, 0.76),
		Quinary:    Mix(b, White, 0.64),
	}
}
