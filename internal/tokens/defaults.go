// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tokens holds the editable design-token model: the default
// palette, family/token/gradient editing, section overlay presets, and the
// bundled font catalog. Every editing operation is a pure transition that
// returns a new Editor and leaves its input untouched.
package tokens

import (
	"github.com/google/uuid"

	"themeforge/internal/models"
)

// Core variables recognized by scale derivation. Any other variable is
// opaque pass-through.
const (
	VarCyanBase     = "--color-cyan-400"
	VarPurpleBase   = "--color-purple-400"
	VarPinkBase     = "--color-pink-400"
	VarBgSecondary  = "--bg-dark-secondary"
	VarTextPrimary  = "--text-primary"
	VarTextSecond   = "--text-secondary"
	VarTextMuted    = "--text-muted"
	VarTextTertiary = "--text-tertiary"
)

// Default values for the core variables.
const (
	DefaultCyan          = "#009e9a"
	DefaultPurple        = "#5b2eff"
	DefaultPink          = "#ed1e79"
	DefaultSectionBase   = "#201c1f"
	DefaultTextPrimary   = "#ffffff"
	DefaultTextSecondary = "#e4e7f8"
	DefaultTextMuted     = "#94a3b8"
	DefaultNewColor      = "#6366f1"
	DefaultGradientAngle = 135
)

// NewID returns a fresh identifier for families, tokens and gradients.
func NewID() string {
	return uuid.NewString()
}

func tok(variable, label, hint, value string, isKey bool) models.ColorToken {
	return models.ColorToken{ID: NewID(), Variable: variable, Label: label, Hint: hint, Value: value, IsKey: isKey}
}

func grad(variable, label, hint string, angle float64, stops ...models.GradientStop) models.GradientToken {
	return models.GradientToken{ID: NewID(), Variable: variable, Label: label, Hint: hint, Angle: angle, Stops: stops}
}

// DefaultFamilies returns the stock palette with fresh ids.
func DefaultFamilies() []models.ColorFamily {
	return []models.ColorFamily{
		{
			ID: NewID(), Name: "Primary - Cyan", Emoji: "🔵",
			Description: "Main system color. The rest of the cyan ramp is derived from it.",
			Tokens: []models.ColorToken{
				tok(VarCyanBase, "Base color", "Main accent: icons, links and active states", DefaultCyan, true),
			},
		},
		{
			ID: NewID(), Name: "Secondary - Purple", Emoji: "🟣",
			Description: "Secondary system color. Its variations are derived automatically.",
			Tokens: []models.ColorToken{
				tok(VarPurpleBase, "Base color", "Secondary actions and highlighted titles", DefaultPurple, true),
			},
		},
		{
			ID: NewID(), Name: "Accent - Pink", Emoji: "🩷",
			Description: "Accent color. Its variations are derived automatically.",
			Tokens: []models.ColorToken{
				tok(VarPinkBase, "Base color", "High-contrast accents: highlights and alerts", DefaultPink, true),
			},
		},
		{
			ID: NewID(), Name: "Background", Emoji: "🌑",
			Description: "Main site background. Additional dark layers are derived automatically.",
			Tokens: []models.ColorToken{
				tok(VarBgSecondary, "Global background", "Base of every section", DefaultSectionBase, true),
			},
		},
		{
			ID: NewID(), Name: "Text", Emoji: "✏️",
			Description: "Text hierarchy. The tertiary level is derived from the secondary one.",
			Tokens: []models.ColorToken{
				tok(VarTextPrimary, "Primary text", "Headlines and main content", DefaultTextPrimary, true),
				tok(VarTextSecond, "Secondary text", "Subtitles and supporting paragraphs", DefaultTextSecondary, false),
				tok(VarTextMuted, "Muted text", "Notes, metadata and low-priority content", DefaultTextMuted, false),
			},
		},
	}
}

// DefaultGradients returns the stock gradients with fresh ids.
func DefaultGradients() []models.GradientToken {
	return []models.GradientToken{
		grad("--gradient-primary", "Primary gradient", "Hero sections and main banners", DefaultGradientAngle,
			models.GradientStop{Color: DefaultCyan, Position: 0}, models.GradientStop{Color: DefaultPurple, Position: 100}),
		grad("--gradient-secondary", "Secondary gradient", "Call-to-action buttons", DefaultGradientAngle,
			models.GradientStop{Color: DefaultPurple, Position: 0}, models.GradientStop{Color: DefaultPink, Position: 100}),
		grad("--gradient-accent", "Accent gradient", "Pills, badges and small details", DefaultGradientAngle,
			models.GradientStop{Color: DefaultCyan, Position: 0}, models.GradientStop{Color: DefaultPink, Position: 100}),
		grad("--gradient-hero", "Stage gradient", "Panoramic background of the hero section", DefaultGradientAngle,
			models.GradientStop{Color: "#151216", Position: 0},
			models.GradientStop{Color: DefaultSectionBase, Position: 55},
			models.GradientStop{Color: "#2a252a", Position: 100}),
	}
}

// DefaultTypography selects the first catalog font for every role.
func DefaultTypography() models.TypographySelection {
	id := FontCatalog[0].ID
	return models.TypographySelection{Primary: id, Subheading: id, Heading: id}
}

// DefaultSnapshot builds a complete snapshot from the stock values.
func DefaultSnapshot() *models.Snapshot {
	typo := DefaultTypography()
	return &models.Snapshot{
		Families:         DefaultFamilies(),
		Gradients:        DefaultGradients(),
		SectionBaseColor: DefaultSectionBase,
		SectionFilters:   DefaultSectionFilters(),
		Typography:       &typo,
		EventName:        "GDL Innova",
	}
}

// NewFamily returns an empty family with placeholder name and emoji.
func NewFamily() models.ColorFamily {
	return models.ColorFamily{
		ID:          NewID(),
		Name:        "New family",
		Emoji:       "🎨",
		Description: "Describe the purpose of this color family",
		Tokens:      []models.ColorToken{},
	}
}

// NewToken returns the token appended at position index (0-based) of a
// family named familyName.
func NewToken(familyName string, index int) models.ColorToken {
	n := index + 1
	return models.ColorToken{
		ID:       NewID(),
		Variable: TokenVariable(familyName, index),
		Label:    "Shade " + itoa(n),
		Hint:     "Describe where this color is used",
		Value:    DefaultNewColor,
	}
}

// NewGradient returns a two-stop gradient with a unique variable name.
func NewGradient() models.GradientToken {
	id := NewID()
	return models.GradientToken{
		ID:       id,
		Variable: "--gradient-custom-" + id[:8],
		Label:    "New gradient",
		Hint:     "Describe where this gradient is used",
		Angle:    DefaultGradientAngle,
		Stops: []models.GradientStop{
			{Color: DefaultPurple, Position: 0},
			{Color: DefaultPink, Position: 100},
		},
	}
}

// NewGradientStop returns a mid-position stop.
func NewGradientStop(color string) models.GradientStop {
	if color == "" {
		color = DefaultNewColor
	}
	return models.GradientStop{Color: color, Position: 50}
}
