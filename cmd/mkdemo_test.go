package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineview/internal/decoder"
	"mineview/internal/parser"
	"mineview/internal/topology"
)

func TestGeneratedMineParses(t *testing.T) {
	m := generate(2, 3, 2, 25, 60, rand.New(rand.NewPCG(7, 7)))
	data, err := decoder.Encode(m.render())
	require.NoError(t, err)

	g, err := parser.Parse(decoder.Decode(data), nil)
	require.NoError(t, err)

	st := g.Statistics()
	assert.Equal(t, 14, st.Nodes)
	assert.Equal(t, 13, st.Sections)
	assert.Equal(t, 7, st.Excavations)
	assert.Equal(t, 2, st.Horizons)
	assert.Zero(t, g.Diagnostics.MalformedNumbers)
	assert.Zero(t, g.Diagnostics.DuplicateIDs)

	assert.Equal(t, "Горизонт -60", g.Horizons[0].Name)
	assert.Equal(t, -120.0, g.Horizons[1].Altitude)
	shaft, ok := g.Excavation("SHAFT")
	require.True(t, ok)
	assert.Equal(t, "Ствол", shaft.Name)

	network, err := topology.New(g)
	require.NoError(t, err)
	sum, err := network.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Components, "the shaft joins every horizon")

	findings, err := network.Audit()
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(1, 2, 2, 10, 50, rand.New(rand.NewPCG(3, 3))).render()
	b := generate(1, 2, 2, 10, 50, rand.New(rand.NewPCG(3, 3))).render()
	assert.Equal(t, a, b)
	assert.Equal(t, guid("N0_0"), guid("N0_0"))
}
