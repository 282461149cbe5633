package tunnel

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineview/internal/geom"
)

const eps = 1e-9

func TestRadius(t *testing.T) {
	tests := []struct {
		thickness float64
		expected  float64
	}{
		{0, 5},
		{1, 5},
		{6.25, 5},
		{10, 8},
		{100, 80},
		{-3, 5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Radius(tt.thickness), eps, "thickness %v", tt.thickness)
	}
}

func TestRadiusProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("floor holds up to 6.25", prop.ForAll(
		func(thickness float64) bool {
			return Radius(thickness) == MinRadius
		},
		gen.Float64Range(-100, 6.25),
	))

	properties.Property("scales above the floor", prop.ForAll(
		func(thickness float64) bool {
			return math.Abs(Radius(thickness)-thickness*RadiusScale) < 1e-9*thickness
		},
		gen.Float64Range(6.2501, 1e6),
	))

	properties.Property("monotonic", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return Radius(a) <= Radius(b)
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 1000),
	))

	properties.TestingRun(t)
}

func TestBuildDescriptors(t *testing.T) {
	start := geom.V3(-5, 0, 0)
	end := geom.V3(5, 0, 0)

	tun := Build(start, end, 2, 0xff3d3d)

	assert.Equal(t, KindTube, tun.Tube.Kind)
	assert.Equal(t, start, tun.Tube.Start)
	assert.Equal(t, end, tun.Tube.End)
	assert.Equal(t, TubularSegments, tun.Tube.TubularSegments)
	assert.Equal(t, TubeRadialSegments, tun.Tube.RadialSegments)
	assert.InDelta(t, 5.0, tun.Tube.Radius, eps)
	assert.InDelta(t, 10.0, tun.Tube.Length(), eps)

	want := Material{Color: 0xff3d3d, Opacity: 1, Shininess: Shininess, DoubleSide: true}
	for _, m := range tun.Meshes() {
		assert.Equal(t, want, m.Material, "%s shares the tunnel material", m.Kind)
		assert.InDelta(t, tun.Tube.Radius, m.Radius, eps)
	}

	assert.Equal(t, KindCap, tun.StartCap.Kind)
	assert.Equal(t, start, tun.StartCap.Position)
	assert.Equal(t, end, tun.EndCap.Position)
	assert.Equal(t, CapHeight, tun.StartCap.Height)
	assert.Equal(t, CapRadialSegments, tun.StartCap.RadialSegments)
}

func TestCapAxisRunsAlongSegment(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Vec3
	}{
		{"along x", geom.V3(0, 0, 0), geom.V3(10, 0, 0)},
		{"along z", geom.V3(0, 0, 0), geom.V3(0, 0, -7)},
		{"vertical", geom.V3(1, 2, 3), geom.V3(1, 50, 3)},
		{"vertical down", geom.V3(1, 50, 3), geom.V3(1, 2, 3)},
		{"diagonal", geom.V3(-3, 4, 12), geom.V3(9, -8, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := Build(tt.start, tt.end, 1, 0)
			dir := tt.end.Sub(tt.start).Normal()

			for _, c := range []Mesh{tun.StartCap, tun.EndCap} {
				axis := c.Axis()
				assert.InDelta(t, 1.0, math.Abs(axis.Dot(dir)), 1e-3, "cap axis %v vs %v", axis, dir)
				assert.InDelta(t, 1.0, c.Rotation.Length(), eps)
			}
		})
	}
}

func TestZeroLengthSegment(t *testing.T) {
	p := geom.V3(3, 3, 3)

	var tun Tunnel
	require.NotPanics(t, func() { tun = Build(p, p, 2, 0x25c9d0) })

	assert.Zero(t, tun.Tube.Length())
	assert.Equal(t, geom.Vec3{}, tun.Tube.Axis())

	g := tun.Tube.Triangulate()
	for _, v := range g.Positions {
		assert.True(t, v.IsFinite())
	}
	for _, c := range []Mesh{tun.StartCap, tun.EndCap} {
		assert.True(t, c.Axis().IsFinite())
		for _, v := range c.Triangulate().Positions {
			assert.True(t, v.IsFinite())
		}
	}
}

func TestTriangulateTube(t *testing.T) {
	tun := Build(geom.V3(0, 0, 0), geom.V3(0, 0, 20), 10, 0)
	g := tun.Tube.Triangulate()

	require.Len(t, g.Positions, (TubularSegments+1)*(TubeRadialSegments+1))
	require.Len(t, g.Normals, len(g.Positions))
	assert.Equal(t, TubularSegments*TubeRadialSegments*2, g.Triangles())

	for i, v := range g.Positions {
		// distance from the z axis is the radius
		assert.InDelta(t, tun.Tube.Radius, math.Hypot(v.X, v.Y), 1e-9, "vertex %d", i)
		assert.InDelta(t, 1.0, g.Normals[i].Length(), 1e-9)
	}
	assert.InDelta(t, 0.0, g.Positions[0].Z, eps)
	assert.InDelta(t, 20.0, g.Positions[len(g.Positions)-1].Z, eps)

	for _, idx := range g.Indices {
		assert.Less(t, idx, len(g.Positions))
	}
}

func TestTriangulateCap(t *testing.T) {
	start := geom.V3(10, 0, 0)
	tun := Build(start, geom.V3(30, 0, 0), 10, 0)
	g := tun.StartCap.Triangulate()

	torso := (CapHeightSegments + 1) * (CapRadialSegments + 1)
	fan := CapRadialSegments + CapRadialSegments + 1
	require.Len(t, g.Positions, torso+2*fan)
	assert.Equal(t, CapRadialSegments*CapHeightSegments*2+2*CapRadialSegments, g.Triangles())

	// the cap lies across the tube: every vertex is within half the height
	// of the endpoint along the segment direction
	for _, v := range g.Positions {
		assert.LessOrEqual(t, math.Abs(v.X-start.X), CapHeight/2+1e-9)
		assert.LessOrEqual(t, math.Hypot(v.Y, v.Z), tun.StartCap.Radius+1e-9)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tube", KindTube.String())
	assert.Equal(t, "cap", KindCap.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
