package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Bar colors for the three-state legend, plus the panel chrome.
var (
	barDefaultColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	barHighlightColor    = color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	barSortedColor       = color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}
	legendColor          = color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	panelBackgroundColor = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
)

// CustomTheme darkens the window background so the histogram reads like
// a canvas rather than a form.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color returns the color for the given theme color name.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return panelBackgroundColor
	}
	return t.Theme.Color(name, variant)
}
