package export

import (
	"bufio"
	"fmt"
	"io"

	"mineview/internal/scene"
)

func materialName(c uint32) string {
	return fmt.Sprintf("tunnel_%06x", c&0xffffff)
}

// WriteOBJ writes every mesh of s as triangles, one OBJ group per scene
// group. mtlFile, if not empty, is referenced with mtllib.
func WriteOBJ(w io.Writer, s *scene.Scene, mtlFile string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# mineview scene export")
	if mtlFile != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlFile)
	}

	base := 1 // OBJ indices are 1-based and global
	for _, name := range s.Groups() {
		group, ok := s.Group(name)
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "g %s\n", name)

		for _, h := range group.Handles {
			m, ok := s.Mesh(h)
			if !ok {
				continue
			}
			fmt.Fprintf(bw, "usemtl %s\n", materialName(m.Material.Color))

			geo := m.Triangulate()
			for _, p := range geo.Positions {
				fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
			}
			for _, n := range geo.Normals {
				fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
			}
			for i := 0; i+2 < len(geo.Indices); i += 3 {
				a, b, c := base+geo.Indices[i], base+geo.Indices[i+1], base+geo.Indices[i+2]
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			}
			base += len(geo.Positions)
		}
	}
	return bw.Flush()
}

// WriteMTL writes one Phong material per color used in s.
func WriteMTL(w io.Writer, s *scene.Scene) error {
	bw := bufio.NewWriter(w)
	seen := make(map[uint32]bool)
	for _, name := range s.Groups() {
		group, _ := s.Group(name)
		for _, h := range group.Handles {
			m, ok := s.Mesh(h)
			if !ok || seen[m.Material.Color] {
				continue
			}
			seen[m.Material.Color] = true

			c := m.Material.Color
			r := float64(c>>16&0xff) / 255
			g := float64(c>>8&0xff) / 255
			b := float64(c&0xff) / 255
			fmt.Fprintf(bw, "newmtl %s\n", materialName(c))
			fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", r, g, b)
			fmt.Fprintf(bw, "Ks 1.0000 1.0000 1.0000\n")
			fmt.Fprintf(bw, "Ns %g\n", m.Material.Shininess)
			fmt.Fprintf(bw, "d %g\n\n", m.Material.Opacity)
		}
	}
	return bw.Flush()
}
