package topology

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"mineview/internal/log"
)

// Plan output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// defaultEdgeColor is used for sections no group claims.
const defaultEdgeColor = "#808080"

// PlanOptions controls the plan drawing.
type PlanOptions struct {
	Format string
	// Width is the longer side of the drawing in inches.
	Width float64
	// SectionColors maps a section id to 0xRRGGBB.
	SectionColors map[string]uint32
	Background    string
}

// RenderPlan draws the network seen from above (source X right, source Y
// up) with every node pinned at its surveyed position.
func (n *Network) RenderPlan(ctx context.Context, w io.Writer, opts PlanOptions) error {
	switch opts.Format {
	case FormatDOT, FormatSVG, FormatPNG:
	default:
		return fmt.Errorf("unsupported plan format %q", opts.Format)
	}
	if opts.Width <= 0 {
		opts.Width = 10
	}
	if opts.Background == "" {
		opts.Background = "black"
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	gvGraph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graphviz graph: %w", err)
	}
	defer gvGraph.Close()

	gvGraph.SetLayout("neato")
	gvGraph.SetBackgroundColor(opts.Background)
	gvGraph.SetOverlap(true)
	gvGraph.SetSplines("line")
	if _, err := gvGraph.Attr(int(cgraph.NODE), "shape", "point"); err != nil {
		return fmt.Errorf("failed to set node defaults: %w", err)
	}
	if _, err := gvGraph.Attr(int(cgraph.NODE), "color", "white"); err != nil {
		return fmt.Errorf("failed to set node defaults: %w", err)
	}
	if _, err := gvGraph.Attr(int(cgraph.EDGE), "color", defaultEdgeColor); err != nil {
		return fmt.Errorf("failed to set edge defaults: %w", err)
	}

	m := n.mine
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, kv := range m.Nodes.Order {
		minX, maxX = math.Min(minX, kv.Value.X), math.Max(maxX, kv.Value.X)
		minY, maxY = math.Min(minY, kv.Value.Y), math.Max(maxY, kv.Value.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if span > 0 && !math.IsInf(span, 0) {
		scale = opts.Width * 72 / span
	}

	gvNodes := make(map[string]*graphviz.Node, m.Nodes.Len())
	for _, kv := range m.Nodes.Order {
		node, err := gvGraph.CreateNodeByName(kv.Key)
		if err != nil {
			return fmt.Errorf("failed to create plan node %q: %w", kv.Key, err)
		}
		node.SetLabel("")
		node.SafeSet("width", "0.06", "")
		node.SafeSet("pos", fmt.Sprintf("%.2f,%.2f!", (kv.Value.X-minX)*scale, (kv.Value.Y-minY)*scale), "")
		gvNodes[kv.Key] = node
	}

	edges := 0
	for _, kv := range m.Sections.Order {
		s := kv.Value
		start, okStart := gvNodes[s.StartNodeID]
		end, okEnd := gvNodes[s.EndNodeID]
		if !okStart || !okEnd {
			continue
		}
		edge, err := gvGraph.CreateEdgeByName(s.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to create plan edge %q: %w", s.ID, err)
		}
		edge.SetPenWidth(2)
		edge.SetStyle("solid")
		edge.SetDir("none")
		if c, ok := opts.SectionColors[s.ID]; ok {
			edge.SafeSet("color", fmt.Sprintf("#%06x", c), "")
		}
		edges++
	}

	log.Debug("rendering plan", "format", opts.Format, "nodes", len(gvNodes), "edges", edges, "scale", scale)
	if err := gv.Render(ctx, gvGraph, graphviz.Format(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return nil
}
