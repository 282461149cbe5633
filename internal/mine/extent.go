package mine

import (
	"math"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32/minmax"

	"mineview/internal/geom"
)

// Dimensions is the size of the bounding box along each source axis.
type Dimensions struct {
	Width  float64 `json:"width"`  // X
	Height float64 `json:"height"` // Y
	Depth  float64 `json:"depth"`  // Z
}

// Extent is the bounding box of all nodes and its center, used to
// re-center the model around the origin.
type Extent struct {
	Min        geom.Vec3
	Max        geom.Vec3
	Center     geom.Vec3
	Dimensions Dimensions
}

// ComputeExtent returns the componentwise bounding box of the nodes.
//
// With no nodes the ranges stay at +Inf/-Inf, the center is NaN and the
// dimensions are -Inf. That case is left to the caller; see Valid.
func ComputeExtent(nodes *ordmap.Map[string, Node]) Extent {
	var x, y, z minmax.F64
	x.Set(math.Inf(1), math.Inf(-1))
	y.Set(math.Inf(1), math.Inf(-1))
	z.Set(math.Inf(1), math.Inf(-1))

	if nodes != nil {
		for _, kv := range nodes.Order {
			x.FitValInRange(kv.Value.X)
			y.FitValInRange(kv.Value.Y)
			z.FitValInRange(kv.Value.Z)
		}
	}

	return Extent{
		Min:    geom.V3(x.Min, y.Min, z.Min),
		Max:    geom.V3(x.Max, y.Max, z.Max),
		Center: geom.V3(x.Midpoint(), y.Midpoint(), z.Midpoint()),
		Dimensions: Dimensions{
			Width:  x.Range(),
			Height: y.Range(),
			Depth:  z.Range(),
		},
	}
}

// Valid reports whether the extent came from at least one node.
func (e Extent) Valid() bool {
	return e.Min.X <= e.Max.X && e.Center.IsFinite()
}
