package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/nnetplot/pkg/observability"
)

// Metrics holds the service's Prometheus collectors. It implements the
// pipeline, cache and HTTP hooks of pkg/observability, so registering it
// with [Metrics.Register] is all that is needed to instrument a process.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram
	BuildLayers   prometheus.Histogram

	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	CacheEventsTotal *prometheus.CounterVec
	CacheWriteBytes  prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nnetplot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nnetplot_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BuildsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nnetplot_builds_total",
				Help: "Diagram builds by outcome",
			},
			[]string{"status"},
		),
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nnetplot_build_duration_seconds",
			Help:    "Time to decode, validate and position a document",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		}),
		BuildLayers: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nnetplot_build_layers",
			Help:    "Number of layers per built diagram",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nnetplot_renders_total",
				Help: "Renders by visualization type and outcome",
			},
			[]string{"viz_type", "status"},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nnetplot_render_duration_seconds",
				Help:    "Time to render all requested formats",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"viz_type"},
		),
		CacheEventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nnetplot_cache_events_total",
				Help: "Cache hits, misses and writes by key type",
			},
			[]string{"key_type", "event"},
		),
		CacheWriteBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nnetplot_cache_write_bytes",
			Help:    "Size of cached artifacts in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		}),
		registry: reg,
	}
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnBuildStart(context.Context, string) {}

func (m *Metrics) OnBuildComplete(_ context.Context, _ string, layers int, d time.Duration, err error) {
	m.BuildsTotal.WithLabelValues(outcome(err)).Inc()
	m.BuildDuration.Observe(d.Seconds())
	if err == nil {
		m.BuildLayers.Observe(float64(layers))
	}
}

func (m *Metrics) OnRenderStart(context.Context, string, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, vizType string, _ []string, d time.Duration, err error) {
	m.RendersTotal.WithLabelValues(vizType, outcome(err)).Inc()
	m.RenderDuration.WithLabelValues(vizType).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheWriteBytes.Observe(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
