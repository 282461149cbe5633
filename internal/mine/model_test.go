package mine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphLookupsAndStatistics(t *testing.T) {
	g := NewGraph()
	assert.False(t, g.HasData())

	g.Nodes.Add("A", Node{ID: "A"})
	g.Nodes.Add("B", Node{ID: "B", X: 10})
	assert.False(t, g.HasData(), "nodes alone are not drawable")

	g.Sections.Add("S1", Section{ID: "S1", StartNodeID: "A", EndNodeID: "B", Thickness: 2})
	g.Sections.Add("S2", Section{ID: "S2", StartNodeID: "A", EndNodeID: "missing"})
	g.Horizons = append(g.Horizons, Horizon{ID: "H1", Sections: "S1,S2"})
	assert.True(t, g.HasData())

	assert.Equal(t, Statistics{Nodes: 2, Sections: 2, Excavations: 0, Horizons: 1}, g.Statistics())

	s1, ok := g.Section("S1")
	assert.True(t, ok)
	start, end, ok := g.Endpoints(s1)
	assert.True(t, ok)
	assert.Equal(t, "A", start.ID)
	assert.Equal(t, "B", end.ID)

	s2, _ := g.Section("S2")
	_, _, ok = g.Endpoints(s2)
	assert.False(t, ok)

	_, ok = g.Excavation("E1")
	assert.False(t, ok)
}

func TestNilGraphIsEmpty(t *testing.T) {
	var g *Graph
	assert.False(t, g.HasData())
	assert.Equal(t, Statistics{}, g.Statistics())
}

func TestLaterDuplicateKeepsFirstPosition(t *testing.T) {
	g := NewGraph()
	g.Excavations.Add("E1", Excavation{ID: "E1", Name: "first"})
	g.Excavations.Add("E2", Excavation{ID: "E2", Name: "second"})
	g.Excavations.Add("E1", Excavation{ID: "E1", Name: "replaced"})

	assert.Equal(t, 2, g.Excavations.Len())
	assert.Equal(t, "E1", g.Excavations.KeyByIndex(0))
	e, _ := g.Excavation("E1")
	assert.Equal(t, "replaced", e.Name)
}
