package theme

import (
	"github.com/gdamore/tcell/v2"
)

// MonoTheme is a grayscale scheme for terminals with poor color support.
// Tunnel swatches are reduced to their luminance.
type MonoTheme struct{}

func NewMonoTheme() *MonoTheme {
	return &MonoTheme{}
}

func (t *MonoTheme) Name() string {
	return "mono"
}

func (t *MonoTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Waiting:    DOSDarkGray,
	}
}

func (t *MonoTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: DOSBlack,
		Foreground: DOSWhite,
		Border:     DOSWhite,
		Title:      DOSWhite,
		SelectedBg: DOSWhite,
		SelectedFg: DOSBlack,
		ButtonBg:   DOSLightGray,
		ButtonFg:   DOSBlack,
	}
}

func (t *MonoTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: DOSDarkGray,
		Foreground: DOSWhite,
		ErrorBg:    DOSWhite,
		ErrorFg:    DOSBlack,
		LoadingFg:  DOSLightGray,
		ReadyFg:    DOSWhite,
		FailedFg:   DOSWhite,
	}
}

func (t *MonoTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Border:     DOSDarkGray,
		Title:      DOSWhite,
		HeaderBg:   DOSBlack,
		HeaderFg:   DOSWhite,
		SelectedBg: DOSLightGray,
		SelectedFg: DOSBlack,
		Warning:    DOSWhite,
	}
}

func (t *MonoTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      DOSDarkGray,
		TitleColor: DOSWhite,
		Padding:    0,
	}
}

func (t *MonoTheme) Swatch(rgb uint32) tcell.Color {
	r := float64((rgb >> 16) & 0xFF)
	g := float64((rgb >> 8) & 0xFF)
	b := float64(rgb & 0xFF)
	y := int32(0.299*r + 0.587*g + 0.114*b + 0.5)
	if y > 255 {
		y = 255
	}
	return tcell.NewRGBColor(y, y, y)
}

func (t *MonoTheme) ANSIColorPalette() [16]tcell.Color {
	return dosPalette
}
