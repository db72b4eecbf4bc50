// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tokens

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"themeforge/internal/models"
)

// Op is a single editing operation received over the wire. Only the fields
// relevant to Kind are read.
type Op struct {
	Kind        string                 `json:"op"`
	FamilyID    string                 `json:"familyId,omitempty"`
	TokenID     string                 `json:"tokenId,omitempty"`
	GradientID  string                 `json:"gradientId,omitempty"`
	Index       int                    `json:"index,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Number      float64                `json:"number,omitempty"`
	Section     string                 `json:"section,omitempty"`
	Role        string                 `json:"role,omitempty"`
	Name        *string                `json:"name,omitempty"`
	Emoji       *string                `json:"emoji,omitempty"`
	Description *string                `json:"description,omitempty"`
	Label       *string                `json:"label,omitempty"`
	Hint        *string                `json:"hint,omitempty"`
	Variable    *string                `json:"variable,omitempty"`
	Gradient    *models.GradientToken  `json:"gradient,omitempty"`
	Style       models.DevElementStyle `json:"style,omitempty"`
	Font        *models.LocalFontAsset `json:"font,omitempty"`
}

// Op kinds.
const (
	OpSelect           = "select"
	OpAddFamily        = "add-family"
	OpDeleteFamily     = "delete-family"
	OpPatchFamily      = "patch-family"
	OpAddToken         = "add-token"
	OpDeleteToken      = "delete-token"
	OpToggleKey        = "toggle-key"
	OpSetTokenValue    = "set-token-value"
	OpPatchToken       = "patch-token"
	OpAddGradient      = "add-gradient"
	OpDeleteGradient   = "delete-gradient"
	OpUpdateGradient   = "update-gradient"
	OpAddStop          = "add-stop"
	OpRemoveStop       = "remove-stop"
	OpSetStopColor     = "set-stop-color"
	OpSetStopPosition  = "set-stop-position"
	OpSetAngle         = "set-angle"
	OpSetSectionFilter = "set-section-filter"
	OpSetAllSections   = "set-all-section-filters"
	OpSetSectionBase   = "set-section-base-color"
	OpSetTypography    = "set-typography"
	OpSetEventName     = "set-event-name"
	OpSetParticles     = "set-particles-palette"
	OpSetDevElement    = "set-dev-element"
	OpAddLocalFont     = "add-local-font"
)

// Apply dispatches op against e. It returns the new editor and a
// validation message; the message is non-empty when the input was
// rejected and e is returned unchanged. Unknown kinds are an error.
func Apply(e Editor, op Op) (Editor, string, error) {
	if msg := limitMessage(e.Snapshot, op); msg != "" {
		return e, msg, nil
	}
	switch op.Kind {
	case OpSelect:
		return e.Select(op.Value), "", nil
	case OpAddFamily:
		return e.AddFamily(), "", nil
	case OpDeleteFamily:
		return e.DeleteFamily(op.FamilyID), "", nil
	case OpPatchFamily:
		return e.PatchFamily(op.FamilyID, FamilyPatch{Name: op.Name, Emoji: op.Emoji, Description: op.Description}), "", nil
	case OpAddToken:
		return e.AddToken(op.FamilyID), "", nil
	case OpDeleteToken:
		return e.DeleteToken(op.FamilyID, op.TokenID), "", nil
	case OpToggleKey:
		return e.ToggleKey(op.FamilyID, op.TokenID), "", nil
	case OpSetTokenValue:
		next, msg := e.SetTokenValue(op.FamilyID, op.TokenID, op.Value)
		return next, msg, nil
	case OpPatchToken:
		next, msg := e.PatchToken(op.FamilyID, op.TokenID, TokenPatch{Label: op.Label, Hint: op.Hint, Variable: op.Variable})
		return next, msg, nil
	case OpAddGradient:
		return e.AddGradient(), "", nil
	case OpDeleteGradient:
		return e.DeleteGradient(op.GradientID), "", nil
	case OpUpdateGradient:
		if op.Gradient == nil {
			return e, "Missing gradient.", nil
		}
		next, msg := e.UpdateGradient(*op.Gradient)
		return next, msg, nil
	case OpAddStop:
		return e.AddStop(op.GradientID), "", nil
	case OpRemoveStop:
		return e.RemoveStop(op.GradientID, op.Index), "", nil
	case OpSetStopColor:
		next, msg := e.SetStopColor(op.GradientID, op.Index, op.Value)
		return next, msg, nil
	case OpSetStopPosition:
		return e.SetStopPosition(op.GradientID, op.Index, op.Number), "", nil
	case OpSetAngle:
		return e.SetAngle(op.GradientID, op.Number), "", nil
	case OpSetSectionFilter:
		next, msg := e.SetSectionFilter(op.Section, op.Value)
		return next, msg, nil
	case OpSetAllSections:
		next, msg := e.SetAllSectionFilters(op.Value)
		return next, msg, nil
	case OpSetSectionBase:
		next, msg := e.SetSectionBaseColor(op.Value)
		return next, msg, nil
	case OpSetTypography:
		next, msg := e.SetTypography(op.Role, op.Value)
		return next, msg, nil
	case OpSetEventName:
		return e.SetEventName(op.Value), "", nil
	case OpSetParticles:
		next, msg := e.SetParticlesPalette(op.Value)
		return next, msg, nil
	case OpSetDevElement:
		return e.SetDevElementStyle(op.Value, op.Style), "", nil
	case OpAddLocalFont:
		if op.Font == nil {
			return e, "Missing font.", nil
		}
		next, msg := e.AddLocalFont(*op.Font)
		return next, msg, nil
	}
	return e, "", fmt.Errorf("unknown op %q", op.Kind)
}

// limitMessage enforces the document limits on ops that grow a snapshot or
// set free text, so edited snapshots stay publishable.
func limitMessage(s *models.Snapshot, op Op) string {
	switch op.Kind {
	case OpAddFamily:
		if len(s.Families) >= MaxFamilies {
			return "Too many color families (max 64)."
		}
	case OpPatchFamily:
		if op.Name != nil && strings.TrimSpace(*op.Name) == "" {
			return "Every color family needs a name."
		}
	case OpAddToken:
		if i := familyIndex(s, op.FamilyID); i >= 0 && len(s.Families[i].Tokens) >= MaxTokens {
			return "This family has too many tokens (max 64)."
		}
	case OpPatchToken:
		if op.Label != nil && utf8.RuneCountInString(*op.Label) > MaxLabelLen {
			return "Label is too long (max 120 characters)."
		}
	case OpSetEventName:
		if utf8.RuneCountInString(strings.TrimSpace(op.Value)) > MaxEventNameLen {
			return "Event name is too long (max 200 characters)."
		}
	case OpAddGradient:
		if len(s.Gradients) >= MaxGradients {
			return "Too many gradients (max 64)."
		}
	case OpAddStop:
		if i := gradientIndex(s, op.GradientID); i >= 0 && len(s.Gradients[i].Stops) >= MaxStops {
			return "A gradient can have at most 16 stops."
		}
	}
	return ""
}
