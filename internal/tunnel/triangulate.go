package tunnel

import (
	"math"

	"mineview/internal/geom"
)

// Geometry is a tessellated mesh in world space. Every three entries of
// Indices form one counter-clockwise triangle.
type Geometry struct {
	Positions []geom.Vec3
	Normals   []geom.Vec3
	Indices   []int
}

// Triangulate tessellates the descriptor the way the viewer does: a tube
// ring per path point with RadialSegments+1 vertices (the seam is
// duplicated), and for caps a closed cylinder with a torso and two fans.
func (m Mesh) Triangulate() Geometry {
	if m.Kind == KindTube {
		return m.tube()
	}
	return m.cylinder()
}

func (m Mesh) tube() Geometry {
	tubular := max(m.TubularSegments, 1)
	radial := max(m.RadialSegments, 3)

	tangent := m.End.Sub(m.Start).Normal()
	normal, binormal := frame(tangent)

	var g Geometry
	for i := 0; i <= tubular; i++ {
		t := float64(i) / float64(tubular)
		p := m.Start.Add(m.End.Sub(m.Start).Scale(t))
		for j := 0; j <= radial; j++ {
			v := float64(j) / float64(radial) * 2 * math.Pi
			sin, cos := math.Sin(v), -math.Cos(v)
			n := normal.Scale(cos).Add(binormal.Scale(sin)).Normal()
			g.Normals = append(g.Normals, n)
			g.Positions = append(g.Positions, p.Add(n.Scale(m.Radius)))
		}
	}

	for j := 1; j <= tubular; j++ {
		for i := 1; i <= radial; i++ {
			a := (radial+1)*(j-1) + (i - 1)
			b := (radial+1)*j + (i - 1)
			c := (radial+1)*j + i
			d := (radial+1)*(j-1) + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// frame is the initial Frenet frame for a straight path: the normal starts
// from the world axis the tangent is least aligned with.
func frame(tangent geom.Vec3) (normal, binormal geom.Vec3) {
	tx, ty, tz := math.Abs(tangent.X), math.Abs(tangent.Y), math.Abs(tangent.Z)
	lowest := math.MaxFloat64
	var axis geom.Vec3
	if tx <= lowest {
		lowest = tx
		axis = geom.V3(1, 0, 0)
	}
	if ty <= lowest {
		lowest = ty
		axis = geom.V3(0, 1, 0)
	}
	if tz <= lowest {
		axis = geom.V3(0, 0, 1)
	}

	vec := tangent.Cross(axis).Normal()
	normal = tangent.Cross(vec)
	binormal = tangent.Cross(normal)
	return normal, binormal
}

func (m Mesh) cylinder() Geometry {
	radial := max(m.RadialSegments, 3)
	segments := max(m.HeightSegments, 1)
	half := m.Height / 2

	var g Geometry
	local := func(p, n geom.Vec3) {
		g.Positions = append(g.Positions, m.Position.Add(m.Rotation.Rotate(p)))
		g.Normals = append(g.Normals, m.Rotation.Rotate(n).Normal())
	}

	// torso
	for y := 0; y <= segments; y++ {
		v := float64(y) / float64(segments)
		for x := 0; x <= radial; x++ {
			theta := float64(x) / float64(radial) * 2 * math.Pi
			sin, cos := math.Sin(theta), math.Cos(theta)
			local(geom.V3(m.Radius*sin, -v*m.Height+half, m.Radius*cos), geom.V3(sin, 0, cos))
		}
	}
	row := radial + 1
	for x := 0; x < radial; x++ {
		for y := 0; y < segments; y++ {
			a := y*row + x
			b := (y+1)*row + x
			c := (y+1)*row + x + 1
			d := y*row + x + 1
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	// caps
	for _, sign := range []float64{1, -1} {
		centers := len(g.Positions)
		for x := 1; x <= radial; x++ {
			local(geom.V3(0, half*sign, 0), geom.V3(0, sign, 0))
		}
		rim := len(g.Positions)
		for x := 0; x <= radial; x++ {
			theta := float64(x) / float64(radial) * 2 * math.Pi
			local(geom.V3(m.Radius*math.Sin(theta), half*sign, m.Radius*math.Cos(theta)), geom.V3(0, sign, 0))
		}
		for x := 0; x < radial; x++ {
			c := centers + x
			i := rim + x
			if sign > 0 {
				g.Indices = append(g.Indices, i, i+1, c)
			} else {
				g.Indices = append(g.Indices, i+1, i, c)
			}
		}
	}
	return g
}

// Triangles is the number of triangles in the geometry.
func (g Geometry) Triangles() int {
	return len(g.Indices) / 3
}
