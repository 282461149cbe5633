package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Standard ANSI 16-color palette using fixed hex values, so the inspector
// looks the same regardless of the terminal color scheme
var (
	DOSBlack     = tcell.NewHexColor(0x000000)
	DOSRed       = tcell.NewHexColor(0x800000)
	DOSGreen     = tcell.NewHexColor(0x008000)
	DOSBrown     = tcell.NewHexColor(0x808000)
	DOSBlue      = tcell.NewHexColor(0x000080)
	DOSMagenta   = tcell.NewHexColor(0x800080)
	DOSCyan      = tcell.NewHexColor(0x008080)
	DOSLightGray = tcell.NewHexColor(0xC0C0C0)

	DOSDarkGray     = tcell.NewHexColor(0x808080)
	DOSLightRed     = tcell.NewHexColor(0xFF0000)
	DOSLightGreen   = tcell.NewHexColor(0x00FF00)
	DOSYellow       = tcell.NewHexColor(0xFFFF00)
	DOSLightBlue    = tcell.NewHexColor(0x0000FF)
	DOSLightMagenta = tcell.NewHexColor(0xFF00FF)
	DOSLightCyan    = tcell.NewHexColor(0x00FFFF)
	DOSWhite        = tcell.NewHexColor(0xFFFFFF)
)

var dosPalette = [16]tcell.Color{
	DOSBlack, DOSRed, DOSGreen, DOSBrown,
	DOSBlue, DOSMagenta, DOSCyan, DOSLightGray,
	DOSDarkGray, DOSLightRed, DOSLightGreen, DOSYellow,
	DOSLightBlue, DOSLightMagenta, DOSLightCyan, DOSWhite,
}

// ClassicTheme is the blue-on-black DOS look
type ClassicTheme struct{}

func NewClassicTheme() *ClassicTheme {
	return &ClassicTheme{}
}

func (t *ClassicTheme) Name() string {
	return "classic"
}

func (t *ClassicTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Waiting:    DOSDarkGray,
	}
}

func (t *ClassicTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: DOSBlue,
		Foreground: DOSWhite,
		Border:     DOSWhite,
		Title:      DOSWhite,
		SelectedBg: DOSWhite,
		SelectedFg: DOSBlack,
		ButtonBg:   DOSLightGray,
		ButtonFg:   DOSBlack,
	}
}

// StatusColors returns the status bar color scheme
func (t *ClassicTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: DOSBlue,
		Foreground: DOSLightGray,
		ErrorBg:    DOSRed,
		ErrorFg:    DOSWhite,
		LoadingFg:  DOSYellow,
		ReadyFg:    DOSLightGreen,
		FailedFg:   DOSLightRed,
	}
}

func (t *ClassicTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Border:     DOSLightGray,
		Title:      DOSLightGray,
		HeaderBg:   DOSBlack,
		HeaderFg:   DOSWhite,
		SelectedBg: DOSRed,
		SelectedFg: DOSWhite,
		Warning:    DOSYellow,
	}
}

func (t *ClassicTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      DOSLightGray,
		TitleColor: DOSLightGray,
		Padding:    0,
	}
}

// Swatch keeps tunnel colors exact; the palette is already saturated
func (t *ClassicTheme) Swatch(rgb uint32) tcell.Color {
	return tcell.NewHexColor(int32(rgb & 0xFFFFFF))
}

func (t *ClassicTheme) ANSIColorPalette() [16]tcell.Color {
	return dosPalette
}
