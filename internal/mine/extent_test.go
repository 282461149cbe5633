package mine

import (
	"fmt"
	"math"
	"testing"

	"cogentcore.org/core/base/ordmap"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"mineview/internal/geom"
)

func nodesOf(points ...geom.Vec3) *ordmap.Map[string, Node] {
	m := ordmap.New[string, Node]()
	for i, p := range points {
		id := fmt.Sprintf("n%d", i)
		m.Add(id, Node{ID: id, X: p.X, Y: p.Y, Z: p.Z})
	}
	return m
}

func TestComputeExtentSingleNode(t *testing.T) {
	e := ComputeExtent(nodesOf(geom.V3(12.5, -3, 400)))

	assert.Equal(t, geom.V3(12.5, -3, 400), e.Center)
	assert.Equal(t, Dimensions{}, e.Dimensions)
	assert.True(t, e.Valid())
}

func TestComputeExtentTwoNodes(t *testing.T) {
	e := ComputeExtent(nodesOf(geom.V3(0, 0, 0), geom.V3(10, -20, 6)))

	assert.Equal(t, geom.V3(5, -10, 3), e.Center)
	assert.Equal(t, Dimensions{Width: 10, Height: 20, Depth: 6}, e.Dimensions)
	assert.Equal(t, geom.V3(0, -20, 0), e.Min)
	assert.Equal(t, geom.V3(10, 0, 6), e.Max)
}

func TestComputeExtentNoNodesIsDegenerate(t *testing.T) {
	for _, nodes := range []*ordmap.Map[string, Node]{nil, ordmap.New[string, Node]()} {
		e := ComputeExtent(nodes)

		assert.True(t, math.IsNaN(e.Center.X))
		assert.True(t, math.IsNaN(e.Center.Y))
		assert.True(t, math.IsNaN(e.Center.Z))
		assert.True(t, math.IsInf(e.Dimensions.Width, -1))
		assert.True(t, math.IsInf(e.Min.X, 1))
		assert.True(t, math.IsInf(e.Max.X, -1))
		assert.False(t, e.Valid())
	}
}

func TestComputeExtentDoesNotMutate(t *testing.T) {
	nodes := nodesOf(geom.V3(1, 2, 3), geom.V3(-1, -2, -3))
	before := append([]ordmap.KeyValue[string, Node](nil), nodes.Order...)

	first := ComputeExtent(nodes)
	second := ComputeExtent(nodes)

	assert.Equal(t, before, nodes.Order)
	assert.Equal(t, first, second)
}

func TestComputeExtentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1e6, 1e6)
	point := gopter.CombineGens(coord, coord, coord).Map(func(v []interface{}) geom.Vec3 {
		return geom.V3(v[0].(float64), v[1].(float64), v[2].(float64))
	})

	properties.Property("center is the midpoint and dimensions the span", prop.ForAll(
		func(points []geom.Vec3) bool {
			if len(points) == 0 {
				return true
			}
			e := ComputeExtent(nodesOf(points...))

			minP, maxP := points[0], points[0]
			for _, p := range points[1:] {
				minP = geom.V3(math.Min(minP.X, p.X), math.Min(minP.Y, p.Y), math.Min(minP.Z, p.Z))
				maxP = geom.V3(math.Max(maxP.X, p.X), math.Max(maxP.Y, p.Y), math.Max(maxP.Z, p.Z))
			}
			center := geom.V3((minP.X+maxP.X)/2, (minP.Y+maxP.Y)/2, (minP.Z+maxP.Z)/2)

			return e.Center.ApproxEqual(center, 1e-9) &&
				e.Dimensions.Width == maxP.X-minP.X &&
				e.Dimensions.Height == maxP.Y-minP.Y &&
				e.Dimensions.Depth == maxP.Z-minP.Z
		},
		gen.SliceOfN(50, point),
	))

	properties.Property("every node lies inside the box", prop.ForAll(
		func(points []geom.Vec3) bool {
			e := ComputeExtent(nodesOf(points...))
			for _, p := range points {
				if p.X < e.Min.X || p.X > e.Max.X || p.Y < e.Min.Y || p.Y > e.Max.Y || p.Z < e.Min.Z || p.Z > e.Max.Z {
					return false
				}
			}
			return true
		},
		gen.SliceOf(point),
	))

	properties.TestingRun(t)
}
