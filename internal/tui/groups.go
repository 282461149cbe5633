package tui

import (
	"fmt"

	"github.com/rivo/tview"

	"mineview/internal/scene"
	"mineview/internal/theme"
)

// GroupTable lists the horizons or the excavations of the current scene
// with their color swatch and section tallies.
type GroupTable struct {
	table *tview.Table
	comps *theme.ThemedComponents
	kind  scene.GroupKind
	rows  []scene.GroupInfo

	onSelect func(scene.GroupInfo)
}

// NewGroupTable creates an empty table for one group kind
func NewGroupTable(tc *theme.ThemedComponents, kind scene.GroupKind) *GroupTable {
	title := "Horizons"
	if kind == scene.KindExcavation {
		title = "Excavations"
	}
	gt := &GroupTable{
		table: tc.NewTable(title),
		comps: tc,
		kind:  kind,
	}
	gt.table.SetSelectedFunc(func(row, _ int) {
		if info, ok := gt.At(row); ok && gt.onSelect != nil {
			gt.onSelect(info)
		}
	})
	gt.SetGroups(nil)
	return gt
}

// GetView returns the underlying table
func (gt *GroupTable) GetView() *tview.Table {
	return gt.table
}

// SetSelectedFunc is called with the group under the cursor on Enter
func (gt *GroupTable) SetSelectedFunc(fn func(scene.GroupInfo)) {
	gt.onSelect = fn
}

// SetGroups replaces the rows with the infos of this table's kind, in
// build order.
func (gt *GroupTable) SetGroups(infos []scene.GroupInfo) {
	gt.table.Clear()
	gt.rows = gt.rows[:0]

	extra := "Altitude"
	if gt.kind == scene.KindExcavation {
		extra = "Type"
	}
	for col, h := range []string{"", "ID", "Name", extra, "Sections"} {
		gt.table.SetCell(0, col, gt.comps.HeaderCell(h))
	}

	warn := gt.comps.Theme().PanelColors().Warning
	for _, info := range infos {
		if info.Kind != gt.kind {
			continue
		}
		gt.rows = append(gt.rows, info)
		row := len(gt.rows)

		detail := info.ExcavationType
		if gt.kind == scene.KindHorizon {
			detail = fmt.Sprintf("%.1f", info.Altitude)
		}
		tally := gt.comps.Cell(fmt.Sprintf("%d/%d", info.SectionsValid, info.SectionsTotal))
		if info.SectionsInvalid() > 0 {
			tally.SetTextColor(warn)
		}

		gt.table.SetCell(row, 0, gt.comps.SwatchCell(info.Color))
		gt.table.SetCell(row, 1, gt.comps.Cell(info.OwnerID))
		gt.table.SetCell(row, 2, gt.comps.Cell(info.Label).SetExpansion(1))
		gt.table.SetCell(row, 3, gt.comps.Cell(detail))
		gt.table.SetCell(row, 4, tally.SetAlign(tview.AlignRight))
	}
	if len(gt.rows) > 0 {
		gt.table.Select(1, 0)
	}
}

// Len is the number of groups shown
func (gt *GroupTable) Len() int {
	return len(gt.rows)
}

// At returns the group on a table row; row 0 is the header.
func (gt *GroupTable) At(row int) (scene.GroupInfo, bool) {
	if row < 1 || row > len(gt.rows) {
		return scene.GroupInfo{}, false
	}
	return gt.rows[row-1], true
}

// groupDetail is the text of the details dialog
func groupDetail(info scene.GroupInfo) string {
	s := fmt.Sprintf("%s %s\n%s\n\n", info.Kind, info.OwnerID, info.Label)
	switch info.Kind {
	case scene.KindHorizon:
		s += fmt.Sprintf("Altitude: %.1f\n", info.Altitude)
	case scene.KindExcavation:
		s += fmt.Sprintf("Type: %s\n", info.ExcavationType)
	}
	s += fmt.Sprintf("Color: %s\n", theme.Hex(info.Color))
	s += fmt.Sprintf("Sections: %d listed, %d drawn, %d skipped",
		info.SectionsTotal, info.SectionsValid, info.SectionsInvalid())
	return s
}
