// Package parser builds a mine.Graph from the scheme XML.
//
// The scheme is read with flat collection semantics: every <Node>,
// <Section>, <Excavation> and <Horizon> element counts, wherever it sits in
// the tree, and each field is the first descendant with the field's tag.
// Missing or unreadable fields fall back to defaults instead of failing the
// load.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mineview/internal/log"
	"mineview/internal/mine"
)

// Element and field tag names used by the scheme.
const (
	TagNode       = "Node"
	TagSection    = "Section"
	TagExcavation = "Excavation"
	TagHorizon    = "Horizon"

	fieldID             = "Id"
	fieldGUID           = "Guid"
	fieldX              = "X"
	fieldY              = "Y"
	fieldZ              = "Z"
	fieldStartNodeID    = "StartNodeId"
	fieldEndNodeID      = "EndNodeId"
	fieldThickness      = "Thickness"
	fieldSections       = "Sections"
	fieldName           = "Name"
	fieldObjectID       = "ObjectId"
	fieldExcavationType = "ExcavationType"
	fieldAltitude       = "Altitude"
	fieldIsMine         = "IsMine"
)

// DefaultThickness is used when a section has no readable thickness.
const DefaultThickness = 1

// ProgressFunc receives human readable status lines. It is informational
// only.
type ProgressFunc func(status string)

// Parse turns scheme text into a graph. It either returns a complete graph
// or a *ParseFailure and no graph.
func Parse(text string, progress ProgressFunc) (g *mine.Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while parsing mine XML", "panic", r)
			g = nil
			err = &ParseFailure{Err: fmt.Errorf("%v", r)}
		}
	}()

	notify(progress, "Parsing XML...")
	doc, err := parseDocument(text)
	if err != nil {
		return nil, &ParseFailure{Err: err}
	}

	p := &fieldReader{}
	g = mine.NewGraph()

	notify(progress, "Processing "+TagNode+"...")
	for _, el := range doc.elements(TagNode) {
		n := p.node(el)
		if _, exists := g.Nodes.ValueByKeyTry(n.ID); exists {
			g.Diagnostics.DuplicateIDs++
		}
		g.Nodes.Add(n.ID, n)
	}

	notify(progress, "Processing "+TagSection+"...")
	for _, el := range doc.elements(TagSection) {
		s := p.section(el)
		if _, exists := g.Sections.ValueByKeyTry(s.ID); exists {
			g.Diagnostics.DuplicateIDs++
		}
		g.Sections.Add(s.ID, s)
	}

	notify(progress, "Processing "+TagExcavation+"...")
	for _, el := range doc.elements(TagExcavation) {
		e := p.excavation(el)
		if _, exists := g.Excavations.ValueByKeyTry(e.ID); exists {
			g.Diagnostics.DuplicateIDs++
		}
		g.Excavations.Add(e.ID, e)
	}

	notify(progress, "Processing "+TagHorizon+"...")
	elements := doc.elements(TagHorizon)
	g.Horizons = make([]mine.Horizon, 0, len(elements))
	for _, el := range elements {
		g.Horizons = append(g.Horizons, p.horizon(el))
	}

	g.Diagnostics.MalformedNumbers = p.malformed
	if p.malformed > 0 {
		log.Warn("numeric fields replaced with defaults", "count", p.malformed)
	}
	log.Debug("mine XML parsed",
		"nodes", g.Nodes.Len(),
		"sections", g.Sections.Len(),
		"excavations", g.Excavations.Len(),
		"horizons", len(g.Horizons),
		"duplicates", g.Diagnostics.DuplicateIDs)

	notify(progress, "XML parsing complete!")
	return g, nil
}

// notify calls the sink, shielding the parse from anything it does.
func notify(progress ProgressFunc, status string) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn("progress sink panicked", "status", status, "panic", r)
		}
	}()
	progress(status)
}

// fieldReader reads typed child fields and counts numeric fields it had to
// replace.
type fieldReader struct {
	malformed int
}

func (p *fieldReader) text(el *element, tag string) string {
	child := el.first(tag)
	if child == nil {
		return ""
	}
	return child.text()
}

func (p *fieldReader) number(el *element, tag string, def float64) float64 {
	raw := p.text(el, tag)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.malformed++
		log.Debug("unparsable number, using default", "field", tag, "value", raw, "default", def)
		return def
	}
	return v
}

func (p *fieldReader) boolean(el *element, tag string) bool {
	return p.text(el, tag) == "true"
}

func (p *fieldReader) node(el *element) mine.Node {
	return mine.Node{
		ID:   p.text(el, fieldID),
		GUID: p.text(el, fieldGUID),
		X:    p.number(el, fieldX, 0),
		Y:    p.number(el, fieldY, 0),
		Z:    p.number(el, fieldZ, 0),
	}
}

func (p *fieldReader) section(el *element) mine.Section {
	return mine.Section{
		ID:          p.text(el, fieldID),
		GUID:        p.text(el, fieldGUID),
		StartNodeID: p.text(el, fieldStartNodeID),
		EndNodeID:   p.text(el, fieldEndNodeID),
		Thickness:   p.number(el, fieldThickness, DefaultThickness),
	}
}

func (p *fieldReader) excavation(el *element) mine.Excavation {
	return mine.Excavation{
		ID:             p.text(el, fieldID),
		GUID:           p.text(el, fieldGUID),
		Sections:       p.text(el, fieldSections),
		Name:           p.text(el, fieldName),
		ObjectID:       p.text(el, fieldObjectID),
		ExcavationType: p.text(el, fieldExcavationType),
	}
}

func (p *fieldReader) horizon(el *element) mine.Horizon {
	return mine.Horizon{
		ID:       p.text(el, fieldID),
		GUID:     p.text(el, fieldGUID),
		Sections: p.text(el, fieldSections),
		Name:     p.text(el, fieldName),
		Altitude: p.number(el, fieldAltitude, 0),
		IsMine:   p.boolean(el, fieldIsMine),
		ObjectID: p.text(el, fieldObjectID),
	}
}
