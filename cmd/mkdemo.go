package main

import (
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/google/uuid"

	"mineview/internal/decoder"
)

// demoMine collects the elements of a generated scheme in document order
type demoMine struct {
	nodes       []string
	sections    []string
	excavations []string
	horizons    []string
}

func main() {
	var (
		outputFile = flag.String("output", "", "Output XML file path (prints to stdout if not specified)")
		levels     = flag.Int("horizons", 3, "Number of horizons")
		drifts     = flag.Int("drifts", 4, "Drifts per horizon")
		segments   = flag.Int("segments", 5, "Sections per drift")
		step       = flag.Float64("step", 25, "Section length")
		spacing    = flag.Float64("spacing", 60, "Vertical distance between horizons")
		seed       = flag.Uint64("seed", 1, "Random seed for the survey jitter")
	)
	flag.Parse()

	if *levels < 1 || *drifts < 1 || *segments < 1 {
		fmt.Println("horizons, drifts and segments must be positive")
		os.Exit(1)
	}

	m := generate(*levels, *drifts, *segments, *step, *spacing, rand.New(rand.NewPCG(*seed, *seed)))
	data, err := decoder.Encode(m.render())
	if err != nil {
		fmt.Printf("Error encoding scheme: %v\n", err)
		os.Exit(1)
	}

	if *outputFile == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		fmt.Printf("Error writing scheme file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated demo mine: %s (%d nodes, %d sections)\n", *outputFile, len(m.nodes), len(m.sections))
}

func guid(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("mineview-demo/"+id)).String()
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (m *demoMine) node(id string, x, y, z float64) {
	m.nodes = append(m.nodes, fmt.Sprintf(
		"<Node><Id>%s</Id><Guid>%s</Guid><X>%.3f</X><Y>%.3f</Y><Z>%.3f</Z></Node>",
		id, guid(id), x, y, z))
}

func (m *demoMine) section(id, start, end string, thickness float64) {
	m.sections = append(m.sections, fmt.Sprintf(
		"<Section><Id>%s</Id><Guid>%s</Guid><StartNodeId>%s</StartNodeId><EndNodeId>%s</EndNodeId><Thickness>%.1f</Thickness></Section>",
		id, guid(id), start, end, thickness))
}

func (m *demoMine) excavation(id, name, kind string, sections []string) {
	m.excavations = append(m.excavations, fmt.Sprintf(
		"<Excavation><Id>%s</Id><Guid>%s</Guid><Name>%s</Name><ObjectId>%s</ObjectId><ExcavationType>%s</ExcavationType><Sections>%s</Sections></Excavation>",
		id, guid(id), escape(name), id, kind, strings.Join(sections, ", ")))
}

func (m *demoMine) horizon(id, name string, altitude float64, sections []string) {
	m.horizons = append(m.horizons, fmt.Sprintf(
		"<Horizon><Id>%s</Id><Guid>%s</Guid><Name>%s</Name><ObjectId>%s</ObjectId><Altitude>%.1f</Altitude><IsMine>true</IsMine><Sections>%s</Sections></Horizon>",
		id, guid(id), escape(name), id, altitude, strings.Join(sections, ",")))
}

// generate lays out one star of drifts per horizon around a central shaft.
// Source Z is the vertical axis.
func generate(levels, drifts, segments int, step, spacing float64, rng *rand.Rand) *demoMine {
	m := &demoMine{}
	var shaft []string

	for h := 0; h < levels; h++ {
		altitude := -spacing * float64(h+1)
		center := fmt.Sprintf("N%d_0", h)
		m.node(center, 0, 0, altitude)

		if h > 0 {
			id := fmt.Sprintf("SH%d", h)
			m.section(id, fmt.Sprintf("N%d_0", h-1), center, 8)
			shaft = append(shaft, id)
		}

		var level []string
		for d := 0; d < drifts; d++ {
			angle := 2*math.Pi*float64(d)/float64(drifts) + rng.Float64()*0.2
			prev := center
			var drift []string
			for s := 1; s <= segments; s++ {
				id := fmt.Sprintf("N%d_%d_%d", h, d, s)
				r := step * float64(s)
				m.node(id,
					r*math.Cos(angle)+rng.NormFloat64(),
					r*math.Sin(angle)+rng.NormFloat64(),
					altitude+rng.NormFloat64()*0.5)

				sid := fmt.Sprintf("S%d_%d_%d", h, d, s)
				m.section(sid, prev, id, 3+rng.Float64()*4)
				drift = append(drift, sid)
				prev = id
			}
			m.excavation(fmt.Sprintf("E%d_%d", h, d), fmt.Sprintf("Штрек %d-%d", h+1, d+1), "drift", drift)
			level = append(level, drift...)
		}
		m.horizon(fmt.Sprintf("H%d", h), fmt.Sprintf("Горизонт %.0f", altitude), altitude, level)
	}

	if len(shaft) > 0 {
		m.excavation("SHAFT", "Ствол", "shaft", shaft)
	}
	return m
}

func (m *demoMine) render() string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"windows-1251\"?>\n<Mine>\n")
	block := func(tag string, items []string) {
		fmt.Fprintf(&b, "  <%s>\n", tag)
		for _, item := range items {
			fmt.Fprintf(&b, "    %s\n", item)
		}
		fmt.Fprintf(&b, "  </%s>\n", tag)
	}
	block("Nodes", m.nodes)
	block("Sections", m.sections)
	block("Excavations", m.excavations)
	block("Horizons", m.horizons)
	b.WriteString("</Mine>\n")
	return b.String()
}
