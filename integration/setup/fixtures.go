// Package setup provides fixtures shared by the integration tests.
package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mineview/internal/decoder"
)

// TwoLevelMine has two horizons joined by a shaft, one drift per horizon, a
// dangling section and an isolated node.
const TwoLevelMine = `<?xml version="1.0" encoding="windows-1251"?>
<Mine>
  <Nodes>
    <Node><Id>T0</Id><X>0</X><Y>0</Y><Z>-100</Z></Node>
    <Node><Id>T1</Id><X>40</X><Y>0</Y><Z>-100</Z></Node>
    <Node><Id>B0</Id><X>0</X><Y>0</Y><Z>-200</Z></Node>
    <Node><Id>B1</Id><X>0</X><Y>30</Y><Z>-200</Z></Node>
    <Node><Id>LONE</Id><X>100</X><Y>100</Y><Z>-200</Z></Node>
  </Nodes>
  <Sections>
    <Section><Id>D1</Id><StartNodeId>T0</StartNodeId><EndNodeId>T1</EndNodeId><Thickness>4</Thickness></Section>
    <Section><Id>D2</Id><StartNodeId>B0</StartNodeId><EndNodeId>B1</EndNodeId><Thickness>10</Thickness></Section>
    <Section><Id>SH</Id><StartNodeId>T0</StartNodeId><EndNodeId>B0</EndNodeId><Thickness>8</Thickness></Section>
    <Section><Id>BAD</Id><StartNodeId>B1</StartNodeId><EndNodeId>GONE</EndNodeId></Section>
  </Sections>
  <Excavations>
    <Excavation><Id>E1</Id><Name>Ствол главный</Name><ExcavationType>shaft</ExcavationType><Sections>SH</Sections></Excavation>
  </Excavations>
  <Horizons>
    <Horizon><Id>H100</Id><Name>Горизонт -100</Name><Altitude>-100</Altitude><Sections>D1</Sections></Horizon>
    <Horizon><Id>H200</Id><Name>Горизонт -200</Name><Altitude>-200</Altitude><Sections>D2,BAD</Sections></Horizon>
  </Horizons>
</Mine>
`

// WriteMine encodes text as Windows-1251 into a file under a fresh temp
// directory and returns its path.
func WriteMine(t *testing.T, text string) string {
	t.Helper()
	data, err := decoder.Encode(text)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "mine.xml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
