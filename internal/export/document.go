// Package export writes a built scene to files other tools can open:
// a JSON or YAML description of the groups and meshes, or Wavefront
// OBJ/MTL geometry.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"mineview/internal/geom"
	"mineview/internal/mine"
	"mineview/internal/scene"
	"mineview/internal/tunnel"
)

// Document is the serializable form of a scene.
type Document struct {
	Source     string          `json:"source" yaml:"source"`
	Statistics mine.Statistics `json:"statistics" yaml:"statistics"`
	Center     Vector          `json:"center" yaml:"center"`
	Dimensions mine.Dimensions `json:"dimensions" yaml:"dimensions"`
	Root       string          `json:"root" yaml:"root"`
	Groups     []Group         `json:"groups" yaml:"groups"`
}

type Group struct {
	Name           string  `json:"name" yaml:"name"`
	Kind           string  `json:"kind" yaml:"kind"`
	Label          string  `json:"label,omitempty" yaml:"label,omitempty"`
	Color          string  `json:"color" yaml:"color"`
	SectionsTotal  int     `json:"sectionsTotal" yaml:"sectionsTotal"`
	SectionsValid  int     `json:"sectionsValid" yaml:"sectionsValid"`
	Altitude       float64 `json:"altitude,omitempty" yaml:"altitude,omitempty"`
	ExcavationType string  `json:"excavationType,omitempty" yaml:"excavationType,omitempty"`
	Meshes         []Mesh  `json:"meshes" yaml:"meshes"`
}

type Mesh struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Radius   float64     `json:"radius" yaml:"radius"`
	Start    *Vector     `json:"start,omitempty" yaml:"start,omitempty"`
	End      *Vector     `json:"end,omitempty" yaml:"end,omitempty"`
	Position *Vector     `json:"position,omitempty" yaml:"position,omitempty"`
	Rotation *[4]float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Height   float64     `json:"height,omitempty" yaml:"height,omitempty"`
	Segments int         `json:"radialSegments" yaml:"radialSegments"`
}

type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func vector(v geom.Vec3) Vector {
	return Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// HexColor formats 0xRRGGBB as #rrggbb.
func HexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xffffff)
}

// NewDocument describes every group currently in s.
func NewDocument(source string, g *mine.Graph, ext mine.Extent, s *scene.Scene) Document {
	doc := Document{
		Source:     source,
		Statistics: g.Statistics(),
		Center:     vector(ext.Center),
		Dimensions: ext.Dimensions,
		Root:       scene.RootName,
	}

	for _, name := range s.Groups() {
		group, ok := s.Group(name)
		if !ok {
			continue
		}
		info := group.Info
		out := Group{
			Name:           info.Name,
			Kind:           info.Kind.String(),
			Label:          info.Label,
			Color:          HexColor(info.Color),
			SectionsTotal:  info.SectionsTotal,
			SectionsValid:  info.SectionsValid,
			Altitude:       info.Altitude,
			ExcavationType: info.ExcavationType,
			Meshes:         make([]Mesh, 0, len(group.Handles)),
		}
		for _, h := range group.Handles {
			if m, ok := s.Mesh(h); ok {
				out.Meshes = append(out.Meshes, mesh(m))
			}
		}
		doc.Groups = append(doc.Groups, out)
	}
	return doc
}

func mesh(m tunnel.Mesh) Mesh {
	out := Mesh{Kind: m.Kind.String(), Radius: m.Radius, Segments: m.RadialSegments}
	if m.Kind == tunnel.KindTube {
		start, end := vector(m.Start), vector(m.End)
		out.Start, out.End = &start, &end
		return out
	}
	pos := vector(m.Position)
	rot := [4]float64{m.Rotation.X, m.Rotation.Y, m.Rotation.Z, m.Rotation.W}
	out.Position, out.Rotation = &pos, &rot
	out.Height = m.Height
	return out
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes doc as YAML.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
