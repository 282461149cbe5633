package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ThemedComponents provides convenience factory functions for creating themed components
// while still allowing manual styling using theme properties
type ThemedComponents struct {
	theme Theme
}

// NewThemedComponents creates a new themed components factory
func NewThemedComponents(theme Theme) *ThemedComponents {
	return &ThemedComponents{theme: theme}
}

// Theme returns the theme the factory styles with
func (tc *ThemedComponents) Theme() Theme {
	return tc.theme
}

// NewModal creates a new modal with theme applied
func (tc *ThemedComponents) NewModal() *tview.Modal {
	modal := tview.NewModal()
	colors := tc.theme.DialogColors()

	modal.SetBackgroundColor(colors.Background)
	modal.SetTextColor(colors.Foreground)
	modal.SetButtonBackgroundColor(colors.ButtonBg)
	modal.SetButtonTextColor(colors.ButtonFg)

	return modal
}

// NewTextView creates a bordered, titled text view with color tags enabled
func (tc *ThemedComponents) NewTextView(title string) *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	textView.SetDynamicColors(true)
	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorder(true)
	textView.SetBorderColor(border.Color)
	textView.SetTitle(" " + title + " ")
	textView.SetTitleColor(border.TitleColor)

	return textView
}

// NewTable creates a new table with theme applied
func (tc *ThemedComponents) NewTable(title string) *tview.Table {
	table := tview.NewTable()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	table.SetBackgroundColor(colors.Background)
	table.SetBorder(true)
	table.SetBorderColor(border.Color)
	table.SetTitle(" " + title + " ")
	table.SetTitleColor(border.TitleColor)
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)
	table.SetSelectedStyle(tcell.StyleDefault.
		Background(colors.SelectedBg).
		Foreground(colors.SelectedFg))

	return table
}

// HeaderCell creates a non-selectable table header cell
func (tc *ThemedComponents) HeaderCell(text string) *tview.TableCell {
	colors := tc.theme.PanelColors()
	return tview.NewTableCell(text).
		SetTextColor(colors.HeaderFg).
		SetBackgroundColor(colors.HeaderBg).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false)
}

// Cell creates a plain table cell
func (tc *ThemedComponents) Cell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(tc.theme.PanelColors().Foreground)
}

// SwatchCell creates a solid block cell in the given tunnel color
func (tc *ThemedComponents) SwatchCell(rgb uint32) *tview.TableCell {
	return tview.NewTableCell("██").
		SetTextColor(tc.theme.Swatch(rgb))
}

// NewStatusBar creates a new text view styled for status bars
func (tc *ThemedComponents) NewStatusBar() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.StatusColors()

	textView.SetDynamicColors(true)
	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorder(false)

	return textView
}
