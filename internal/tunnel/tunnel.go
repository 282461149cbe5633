// Package tunnel builds the mesh descriptors for one straight tunnel
// segment: an open tube between two points and a flat cap at each end.
package tunnel

import (
	"math"

	"mineview/internal/geom"
)

const (
	// RadiusScale converts a section thickness into a tube radius.
	RadiusScale = 0.8

	// MinRadius keeps thin sections visible.
	MinRadius = 5.0

	TubularSegments    = 1
	TubeRadialSegments = 8

	CapHeight         = 2.0
	CapRadialSegments = 16
	CapHeightSegments = 1

	Shininess = 100
)

// Kind tells a tube from a cap.
type Kind int

const (
	KindTube Kind = iota
	KindCap
)

func (k Kind) String() string {
	switch k {
	case KindTube:
		return "tube"
	case KindCap:
		return "cap"
	default:
		return "unknown"
	}
}

// Material is the semi-gloss tint shared by a tube and its caps.
type Material struct {
	Color      uint32
	Opacity    float64
	Shininess  float64
	DoubleSide bool
}

// Mesh describes one primitive. Tubes carry their path in world space and
// have an identity transform; caps are a cylinder along local +Y placed by
// Position and Rotation.
type Mesh struct {
	Kind     Kind
	Radius   float64
	Material Material

	// tube
	Start           geom.Vec3
	End             geom.Vec3
	TubularSegments int

	// cap
	Height         float64
	HeightSegments int

	RadialSegments int
	Position       geom.Vec3
	Rotation       geom.Quat
}

// Tunnel is the output for one section.
type Tunnel struct {
	Tube     Mesh
	StartCap Mesh
	EndCap   Mesh
}

// Meshes returns the tube followed by both caps.
func (t Tunnel) Meshes() []Mesh {
	return []Mesh{t.Tube, t.StartCap, t.EndCap}
}

// Radius is the tube radius for a section thickness.
func Radius(thickness float64) float64 {
	return math.Max(thickness*RadiusScale, MinRadius)
}

// Build returns the tube and caps between start and end. Coincident points
// give a zero-length tube.
func Build(start, end geom.Vec3, thickness float64, color uint32) Tunnel {
	radius := Radius(thickness)
	material := Material{
		Color:      color,
		Opacity:    1,
		Shininess:  Shininess,
		DoubleSide: true,
	}

	return Tunnel{
		Tube: Mesh{
			Kind:            KindTube,
			Radius:          radius,
			Material:        material,
			Start:           start,
			End:             end,
			TubularSegments: TubularSegments,
			RadialSegments:  TubeRadialSegments,
			Rotation:        geom.IdentityQuat(),
		},
		StartCap: capAt(start, end, radius, material),
		EndCap:   capAt(end, start, radius, material),
	}
}

var (
	up       = geom.V3(0, 1, 0)
	quarterX = geom.QuatFromAxisAngle(geom.V3(1, 0, 0), math.Pi/2)
)

// capAt faces the cap at the opposite end, then tips it a quarter turn about
// its local X so the cylinder axis runs along the segment.
func capAt(position, opposite geom.Vec3, radius float64, material Material) Mesh {
	rotation := geom.LookRotation(position, opposite, up).Mul(quarterX)
	return Mesh{
		Kind:           KindCap,
		Radius:         radius,
		Material:       material,
		Height:         CapHeight,
		HeightSegments: CapHeightSegments,
		RadialSegments: CapRadialSegments,
		Position:       position,
		Rotation:       rotation,
	}
}

// Axis is the unit direction of the mesh's long axis in world space: the
// path direction for a tube, the rotated local +Y for a cap. Zero for a
// zero-length tube.
func (m Mesh) Axis() geom.Vec3 {
	if m.Kind == KindTube {
		return m.End.Sub(m.Start).Normal()
	}
	return m.Rotation.Rotate(up).Normal()
}

// Length is the tube length or the cap height.
func (m Mesh) Length() float64 {
	if m.Kind == KindTube {
		return m.Start.Distance(m.End)
	}
	return m.Height
}
