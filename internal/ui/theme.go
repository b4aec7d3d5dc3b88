// Package ui provides the RenoCalc application UI components.
//
// This file defines a compact Fyne theme with a selectable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// RenoCalcTheme wraps the default Fyne theme with compact sizing overrides
// and an optional forced light or dark variant.
type RenoCalcTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	forced  bool
}

// NewRenoCalcTheme creates a theme that follows the system variant.
func NewRenoCalcTheme() *RenoCalcTheme {
	return &RenoCalcTheme{base: theme.DefaultTheme()}
}

// NewRenoCalcThemeFor creates a theme for a config value: "light", "dark"
// or anything else for the system default.
func NewRenoCalcThemeFor(name string) *RenoCalcTheme {
	t := NewRenoCalcTheme()
	t.SetVariantName(name)
	return t
}

// SetVariantName updates the variant from a config value.
func (t *RenoCalcTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.forced = theme.VariantLight, true
	case "dark":
		t.variant, t.forced = theme.VariantDark, true
	default:
		t.forced = false
	}
}

// Color delegates to the base theme, using the forced variant if one is set.
func (t *RenoCalcTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *RenoCalcTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *RenoCalcTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *RenoCalcTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
