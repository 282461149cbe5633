// Package metrics exposes load and scene statistics to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mineview/internal/loader"
	"mineview/internal/parser"
	"mineview/internal/scene"
)

// Registry holds all metrics for the application
type Registry struct {
	// Load Metrics
	LoadsTotal    *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
	LoadsInFlight prometheus.Gauge
	LastLoadTime  prometheus.Gauge

	// Model Metrics
	ModelElements    *prometheus.GaugeVec
	MalformedNumbers prometheus.Gauge
	DuplicateIDs     prometheus.Gauge

	// Scene Metrics
	SceneGroups      *prometheus.GaugeVec
	SceneMeshes      prometheus.Gauge
	SectionsRendered prometheus.Gauge
	SectionsSkipped  prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.LoadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mineview_loads_total",
			Help: "Total number of mine file loads",
		},
		[]string{"result"}, // ok, io_error, parse_error, superseded
	)
	r.LoadDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mineview_load_duration_seconds",
			Help:    "Duration of mine file loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
	r.LoadsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_loads_in_flight",
			Help: "Number of loads currently running",
		},
	)
	r.LastLoadTime = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_last_load_timestamp_seconds",
			Help: "Unix time of the last successful load",
		},
	)

	r.ModelElements = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mineview_model_elements",
			Help: "Number of elements in the current model",
		},
		[]string{"kind"}, // node, section, excavation, horizon
	)
	r.MalformedNumbers = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_model_malformed_numbers",
			Help: "Numeric fields replaced with defaults in the current model",
		},
	)
	r.DuplicateIDs = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_model_duplicate_ids",
			Help: "Elements that overwrote an earlier one with the same id",
		},
	)

	r.SceneGroups = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mineview_scene_groups",
			Help: "Number of geometry groups in the scene",
		},
		[]string{"kind"}, // horizon, excavation
	)
	r.SceneMeshes = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_scene_meshes",
			Help: "Number of meshes in the scene",
		},
	)
	r.SectionsRendered = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_scene_sections_rendered",
			Help: "Section references that produced a tunnel",
		},
	)
	r.SectionsSkipped = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mineview_scene_sections_skipped",
			Help: "Section references that could not be resolved",
		},
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// LoadStarted implements loader.Observer.
func (r *Registry) LoadStarted() {
	r.LoadsInFlight.Inc()
}

// LoadSucceeded implements loader.Observer.
func (r *Registry) LoadSucceeded(m *loader.Model, elapsed time.Duration) {
	r.LoadsInFlight.Dec()
	r.LoadsTotal.WithLabelValues("ok").Inc()
	r.LoadDuration.Observe(elapsed.Seconds())
	r.LastLoadTime.Set(float64(m.LoadedAt.Unix()))

	stats := m.Graph.Statistics()
	r.ModelElements.WithLabelValues("node").Set(float64(stats.Nodes))
	r.ModelElements.WithLabelValues("section").Set(float64(stats.Sections))
	r.ModelElements.WithLabelValues("excavation").Set(float64(stats.Excavations))
	r.ModelElements.WithLabelValues("horizon").Set(float64(stats.Horizons))
	r.MalformedNumbers.Set(float64(m.Graph.Diagnostics.MalformedNumbers))
	r.DuplicateIDs.Set(float64(m.Graph.Diagnostics.DuplicateIDs))
}

// LoadFailed implements loader.Observer.
func (r *Registry) LoadFailed(err error, elapsed time.Duration) {
	r.LoadsInFlight.Dec()
	r.LoadsTotal.WithLabelValues(failureResult(err)).Inc()
	r.LoadDuration.Observe(elapsed.Seconds())
}

func failureResult(err error) string {
	var ioErr *loader.IOFailure
	var parseErr *parser.ParseFailure
	switch {
	case errors.Is(err, loader.ErrSuperseded):
		return "superseded"
	case errors.As(err, &ioErr):
		return "io_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	default:
		return "error"
	}
}

// RecordScene records the outcome of a scene build.
func (r *Registry) RecordScene(infos []scene.GroupInfo, meshes int) {
	var horizons, excavations, rendered, skipped int
	for _, info := range infos {
		if info.Kind == scene.KindExcavation {
			excavations++
		} else {
			horizons++
		}
		rendered += info.SectionsValid
		skipped += info.SectionsInvalid()
	}
	r.SceneGroups.WithLabelValues("horizon").Set(float64(horizons))
	r.SceneGroups.WithLabelValues("excavation").Set(float64(excavations))
	r.SceneMeshes.Set(float64(meshes))
	r.SectionsRendered.Set(float64(rendered))
	r.SectionsSkipped.Set(float64(skipped))
}

var _ loader.Observer = (*Registry)(nil)
