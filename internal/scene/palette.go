package scene

import (
	"strings"

	"mineview/internal/mine"
)

// Palette is the fixed group color cycle, 0xRRGGBB.
var Palette = [...]uint32{
	0xff3d3d, // red
	0x4dff4d, // green
	0x4d4dff, // blue
	0xffdd3d, // yellow
	0xff3dff, // magenta
	0x3dffff, // cyan
	0xff9f3d, // orange
	0xb43dff, // violet
	0xff6e6e, // light red
	0x6eff6e, // light green
	0x6e6eff, // light blue
	0xf0f03d, // light yellow
	0x3dffb4, // turquoise
	0xffc2a3, // peach
	0xff4da6, // pink
	0xa3cfff, // sky
	0x25c9d0, // teal
}

// ColorFor returns the color of the group at position index in its
// iteration order.
func ColorFor(index int) uint32 {
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

// SectionColors maps every section id referenced by a group to the color
// that group draws it with. When several groups list a section the first
// horizon wins, then the first excavation.
func SectionColors(g *mine.Graph) map[string]uint32 {
	colors := make(map[string]uint32)
	if g == nil {
		return colors
	}
	claim := func(ids []string, c uint32) {
		for _, id := range ids {
			if _, ok := colors[id]; !ok {
				colors[id] = c
			}
		}
	}
	for i, h := range g.Horizons {
		claim(strings.Split(h.Sections, ","), ColorFor(i))
	}
	for i, kv := range g.Excavations.Order {
		claim(splitExcavationSections(kv.Value.Sections), ColorFor(i))
	}
	return colors
}
