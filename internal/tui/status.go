package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"mineview/internal/loader"
	"mineview/internal/theme"
)

const keyHelp = "r=Reload  Tab=Next panel  Enter=Details  q=Quit"

// StatusBar shows the loader status on the bottom row
type StatusBar struct {
	view   *tview.TextView
	colors theme.StatusColors
	source string
}

// NewStatusBar creates the status bar in the "nothing loaded" state
func NewStatusBar(tc *theme.ThemedComponents) *StatusBar {
	sb := &StatusBar{
		view:   tc.NewStatusBar(),
		colors: tc.Theme().StatusColors(),
	}
	sb.view.SetWrap(false)
	sb.view.SetText(" No file loaded | " + keyHelp)
	return sb
}

// GetView returns the status bar TextView
func (sb *StatusBar) GetView() *tview.TextView {
	return sb.view
}

// SetSource names the loaded file in the ready state
func (sb *StatusBar) SetSource(source string) {
	sb.source = source
}

// Update renders a loader status
func (sb *StatusBar) Update(st loader.Status) {
	if st.Err != nil {
		sb.view.SetBackgroundColor(sb.colors.ErrorBg)
	} else {
		sb.view.SetBackgroundColor(sb.colors.Background)
	}
	sb.view.SetText(statusText(st, sb.source, sb.colors))
}

// Text returns the rendered status line
func (sb *StatusBar) Text() string {
	return sb.view.GetText(false)
}

func statusText(st loader.Status, source string, colors theme.StatusColors) string {
	var b strings.Builder
	b.WriteString(" ")
	switch {
	case st.Err != nil:
		fmt.Fprintf(&b, "%sFailed[-] %s", tag(colors.ErrorFg), tview.Escape(st.Err.Error()))
	case st.Loading:
		fmt.Fprintf(&b, "%sLoading %d%%[-] %s", tag(colors.LoadingFg), st.Progress, tview.Escape(st.Message))
	case source != "":
		fmt.Fprintf(&b, "%sReady[-] %s", tag(colors.ReadyFg), tview.Escape(source))
	default:
		fmt.Fprintf(&b, "%sReady[-]", tag(colors.ReadyFg))
	}
	b.WriteString(" | ")
	b.WriteString(keyHelp)
	return b.String()
}

// tag is the tview color tag for a terminal color
func tag(c tcell.Color) string {
	return fmt.Sprintf("[#%06x]", c.Hex())
}
