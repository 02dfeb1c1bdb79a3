package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is a tighter variant of the default theme pinned to either the
// light or the dark palette regardless of the OS preference.
type CompactTheme struct {
	variant fyne.ThemeVariant
}

// NewCompactTheme creates the theme for the given preference.
func NewCompactTheme(dark bool) fyne.Theme {
	if dark {
		return &CompactTheme{variant: theme.VariantDark}
	}
	return &CompactTheme{variant: theme.VariantLight}
}

// IsDark reports whether the dark palette is active.
func (t *CompactTheme) IsDark() bool {
	return t.variant == theme.VariantDark
}

// Color returns theme colors for the pinned variant
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 230, G: 140, B: 0, A: 255} // orange, readable on both palettes
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		if t.IsDark() {
			return color.RGBA{R: 28, G: 28, B: 28, A: 255}
		}
		return color.RGBA{R: 250, G: 249, B: 248, A: 255}
	case theme.ColorNameForeground:
		if t.IsDark() {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 50, G: 49, B: 48, A: 255}
	}

	return theme.DefaultTheme().Color(name, t.variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 22
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
