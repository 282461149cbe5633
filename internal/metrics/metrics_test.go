package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineview/internal/loader"
	"mineview/internal/mine"
	"mineview/internal/parser"
	"mineview/internal/scene"
)

const miniXML = `<Mine>
  <Node><Id>A</Id></Node><Node><Id>B</Id><X>10</X></Node>
  <Section><Id>S1</Id><StartNodeId>A</StartNodeId><EndNodeId>B</EndNodeId></Section>
  <Horizon><Id>H1</Id><Sections>S1,S2</Sections></Horizon>
  <Excavation><Id>E1</Id><Sections>S1</Sections></Excavation>
</Mine>`

func TestLoaderObserver(t *testing.T) {
	r := NewRegistry()
	l := loader.New(loader.WithObserver(r))

	m, err := l.Load(context.Background(), "mini.xml", strings.NewReader(miniXML))
	require.NoError(t, err)
	_, err = l.Load(context.Background(), "broken.xml", strings.NewReader("<Mine>"))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("parse_error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.LoadsInFlight))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ModelElements.WithLabelValues("node")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ModelElements.WithLabelValues("horizon")))
	assert.Equal(t, float64(m.LoadedAt.Unix()), testutil.ToFloat64(r.LastLoadTime))
}

func TestFailureResult(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{loader.ErrSuperseded, "superseded"},
		{&loader.IOFailure{Source: "x", Err: io.ErrUnexpectedEOF}, "io_error"},
		{&parser.ParseFailure{Err: errors.New("boom")}, "parse_error"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, failureResult(tt.err), "%v", tt.err)
	}
}

func TestRecordScene(t *testing.T) {
	r := NewRegistry()
	r.RecordScene([]scene.GroupInfo{
		{Kind: scene.KindHorizon, SectionsTotal: 2, SectionsValid: 1},
		{Kind: scene.KindExcavation, SectionsTotal: 1, SectionsValid: 1},
	}, 6)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.SceneGroups.WithLabelValues("horizon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SceneGroups.WithLabelValues("excavation")))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.SceneMeshes))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SectionsRendered))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SectionsSkipped))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.LoadSucceeded(&loader.Model{LoadedAt: time.Unix(1700000000, 0), Graph: parseMini(t)}, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `mineview_loads_total{result="ok"} 1`)
	assert.Contains(t, body, `mineview_model_elements{kind="section"} 1`)
}

func parseMini(t *testing.T) *mine.Graph {
	t.Helper()
	g, err := parser.Parse(miniXML, nil)
	require.NoError(t, err)
	return g
}
