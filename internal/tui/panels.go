package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"mineview/internal/loader"
	"mineview/internal/theme"
	"mineview/internal/topology"
)

// maxFindings caps the audit list in the topology panel
const maxFindings = 20

func statsText(m *loader.Model) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	st := m.Graph.Statistics()
	fmt.Fprintf(&b, "[::b]File[::-]        %s\n", tview.Escape(m.Source))
	fmt.Fprintf(&b, "Loaded      %s\n\n", m.LoadedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "Nodes       %d\n", st.Nodes)
	fmt.Fprintf(&b, "Sections    %d\n", st.Sections)
	fmt.Fprintf(&b, "Excavations %d\n", st.Excavations)
	fmt.Fprintf(&b, "Horizons    %d\n", st.Horizons)

	ext := m.Extent
	if ext.Valid() {
		b.WriteString("\n[::b]Extent[::-]\n")
		fmt.Fprintf(&b, "X %.1f .. %.1f (%.1f)\n", ext.Min.X, ext.Max.X, ext.Dimensions.Width)
		fmt.Fprintf(&b, "Y %.1f .. %.1f (%.1f)\n", ext.Min.Y, ext.Max.Y, ext.Dimensions.Height)
		fmt.Fprintf(&b, "Z %.1f .. %.1f (%.1f)\n", ext.Min.Z, ext.Max.Z, ext.Dimensions.Depth)
		fmt.Fprintf(&b, "Center %.1f, %.1f, %.1f\n", ext.Center.X, ext.Center.Y, ext.Center.Z)
	}

	d := m.Graph.Diagnostics
	if d.MalformedNumbers > 0 || d.DuplicateIDs > 0 {
		b.WriteString("\n[::b]Parse[::-]\n")
		fmt.Fprintf(&b, "Malformed numbers %d\n", d.MalformedNumbers)
		fmt.Fprintf(&b, "Duplicate ids     %d\n", d.DuplicateIDs)
	}
	return b.String()
}

func topologyText(sum topology.Summary, findings []topology.Finding, colors theme.PanelColors) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Components %d, isolated nodes %d\n", sum.Components, len(sum.IsolatedNodes))
	fmt.Fprintf(&b, "Edges %d, total length %.1f\n", sum.Edges, sum.TotalLength)
	fmt.Fprintf(&b, "Dangling %d, parallel %d, self-loops %d\n",
		len(sum.DanglingSections), len(sum.ParallelSections), len(sum.SelfLoops))

	if len(findings) == 0 {
		b.WriteString("\n[::b]Audit[::-] clean\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n[::b]Audit[::-] %d findings\n", len(findings))
	for i, f := range findings {
		if i == maxFindings {
			fmt.Fprintf(&b, "... and %d more\n", len(findings)-maxFindings)
			break
		}
		fmt.Fprintf(&b, "%s%s[-]\n", tag(colors.Warning), tview.Escape(f.String()))
	}
	return b.String()
}
