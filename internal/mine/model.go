// Package mine holds the in-memory model of one loaded mine scheme: nodes,
// the sections that connect them, and the excavations and horizons that
// group sections.
package mine

import (
	"cogentcore.org/core/base/ordmap"
)

// Node is a surveyed point, the endpoint of one or more sections.
type Node struct {
	ID   string
	GUID string
	X    float64
	Y    float64
	Z    float64
}

// Section is one straight tunnel segment between two nodes.
type Section struct {
	ID          string
	GUID        string
	StartNodeID string
	EndNodeID   string
	Thickness   float64
}

// Excavation is a named physical dig (drift, shaft, ...) made of sections.
type Excavation struct {
	ID             string
	GUID           string
	Name           string
	ObjectID       string
	ExcavationType string
	// Sections is the comma separated list of section ids as written in
	// the file.
	Sections string
}

// Horizon is a mine level at a given altitude.
type Horizon struct {
	ID       string
	GUID     string
	Name     string
	ObjectID string
	Altitude float64
	IsMine   bool
	Sections string
}

// Diagnostics counts non-fatal problems found while parsing.
type Diagnostics struct {
	MalformedNumbers int // numeric fields present but not a finite float
	DuplicateIDs     int // elements that overwrote an earlier one with the same id
}

// Graph is the parsed aggregate for one file. It is built once and then
// only read; a reload builds a new Graph.
type Graph struct {
	Nodes       *ordmap.Map[string, Node]
	Sections    *ordmap.Map[string, Section]
	Excavations *ordmap.Map[string, Excavation]
	Horizons    []Horizon

	Diagnostics Diagnostics
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:       ordmap.New[string, Node](),
		Sections:    ordmap.New[string, Section](),
		Excavations: ordmap.New[string, Excavation](),
	}
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	return g.Nodes.ValueByKeyTry(id)
}

// Section looks up a section by id.
func (g *Graph) Section(id string) (Section, bool) {
	return g.Sections.ValueByKeyTry(id)
}

// Excavation looks up an excavation by id.
func (g *Graph) Excavation(id string) (Excavation, bool) {
	return g.Excavations.ValueByKeyTry(id)
}

// Endpoints resolves both nodes of a section. ok is false when either one
// is missing.
func (g *Graph) Endpoints(s Section) (start, end Node, ok bool) {
	start, okStart := g.Node(s.StartNodeID)
	end, okEnd := g.Node(s.EndNodeID)
	return start, end, okStart && okEnd
}

// HasData reports whether there is anything to draw.
func (g *Graph) HasData() bool {
	return g != nil && g.Nodes.Len() > 0 && g.Sections.Len() > 0
}

// Statistics is the element count summary shown to the user.
type Statistics struct {
	Nodes       int `json:"nodes"`
	Sections    int `json:"sections"`
	Excavations int `json:"excavations"`
	Horizons    int `json:"horizons"`
}

// Statistics counts the elements of g. A nil graph counts as empty.
func (g *Graph) Statistics() Statistics {
	if g == nil {
		return Statistics{}
	}
	return Statistics{
		Nodes:       g.Nodes.Len(),
		Sections:    g.Sections.Len(),
		Excavations: g.Excavations.Len(),
		Horizons:    len(g.Horizons),
	}
}
