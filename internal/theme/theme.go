// Package theme holds the color schemes of the mine inspector.
package theme

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// DefaultColors is the base color scheme of the application
type DefaultColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Waiting    tcell.Color // placeholder text while nothing is loaded
}

// DialogColors is the color scheme of modal dialogs
type DialogColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	SelectedBg tcell.Color
	SelectedFg tcell.Color
	ButtonBg   tcell.Color
	ButtonFg   tcell.Color
}

// StatusColors is the color scheme of the load status bar
type StatusColors struct {
	Background tcell.Color
	Foreground tcell.Color
	ErrorBg    tcell.Color
	ErrorFg    tcell.Color
	LoadingFg  tcell.Color
	ReadyFg    tcell.Color
	FailedFg   tcell.Color
}

// PanelColors is the color scheme of the info panels and lists
type PanelColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	HeaderBg   tcell.Color
	HeaderFg   tcell.Color
	SelectedBg tcell.Color
	SelectedFg tcell.Color
	Warning    tcell.Color // invalid section tallies, audit findings
}

// BorderStyle defines border appearance
type BorderStyle struct {
	Color      tcell.Color
	TitleColor tcell.Color
	Padding    int
}

// Theme is a complete color scheme for the inspector
type Theme interface {
	Name() string

	DefaultColors() DefaultColors
	DialogColors() DialogColors
	StatusColors() StatusColors
	PanelColors() PanelColors

	BorderStyle() BorderStyle

	// Swatch maps a 0xRRGGBB tunnel color to a terminal color
	Swatch(rgb uint32) tcell.Color

	ANSIColorPalette() [16]tcell.Color
}

// ThemeManager manages the available themes
type ThemeManager struct {
	currentTheme Theme
	themes       map[string]Theme
}

// NewThemeManager creates a manager with the built-in themes registered
// and "classic" selected.
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}

	tm.RegisterTheme(NewClassicTheme())
	tm.RegisterTheme(NewMonoTheme())

	tm.SetTheme("classic")

	return tm
}

// RegisterTheme adds a theme to the available themes
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.themes[theme.Name()] = theme
}

// SetTheme changes the current theme
func (tm *ThemeManager) SetTheme(name string) error {
	if theme, exists := tm.themes[name]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found", name)
}

// Current returns the currently active theme
func (tm *ThemeManager) Current() Theme {
	return tm.currentTheme
}

// Available returns the registered theme names, sorted
func (tm *ThemeManager) Available() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}

// Hex renders a 0xRRGGBB color the way tview color tags expect it.
func Hex(rgb uint32) string {
	return fmt.Sprintf("#%06x", rgb&0xFFFFFF)
}
