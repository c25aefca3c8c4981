// Package metrics defines the Prometheus collectors used by the index builder
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for a build process.
type Metrics struct {
	DocsFedTotal        prometheus.Counter
	DocsPurgedTotal     prometheus.Counter
	MergesTotal         *prometheus.CounterVec
	SnapshotLoadsTotal  *prometheus.CounterVec
	SnapshotWritesTotal *prometheus.CounterVec
	IndexTerms          *prometheus.GaugeVec
	IndexDocuments      prometheus.Gauge
	StemCacheHitsTotal  prometheus.Counter
	StemCacheMissTotal  prometheus.Counter
	BuildDuration       *prometheus.HistogramVec
	EventsTotal         *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DocsFedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "searchindex_docs_fed_total",
				Help: "Total documents fed into an index store.",
			},
		),
		DocsPurgedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "searchindex_docs_purged_total",
				Help: "Total documents removed from the index.",
			},
		),
		MergesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchindex_merges_total",
				Help: "Partial store merges by status (ok, conflict, discarded).",
			},
			[]string{"status"},
		),
		SnapshotLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchindex_snapshot_loads_total",
				Help: "Previous snapshot loads by result (loaded, missing, rejected, error).",
			},
			[]string{"result"},
		),
		SnapshotWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchindex_snapshot_writes_total",
				Help: "Snapshot and artifact writes by format and status.",
			},
			[]string{"format", "status"},
		),
		IndexTerms: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "searchindex_terms",
				Help: "Number of distinct terms in the last frozen snapshot.",
			},
			[]string{"mapping"},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "searchindex_documents",
				Help: "Number of documents in the last frozen snapshot.",
			},
		),
		StemCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "searchindex_stem_cache_hits_total",
				Help: "Total stem cache hits.",
			},
		),
		StemCacheMissTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "searchindex_stem_cache_misses_total",
				Help: "Total stem cache misses.",
			},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "searchindex_build_phase_duration_seconds",
				Help:    "Duration of build phases in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"phase"},
		),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchindex_lifecycle_events_total",
				Help: "Lifecycle events consumed by type and status.",
			},
			[]string{"type", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchindex_http_requests_total",
				Help: "Requests to the watch server by path and status code.",
			},
			[]string{"path", "code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "searchindex_http_request_duration_seconds",
				Help:    "Watch server request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	reg.MustRegister(
		m.DocsFedTotal,
		m.DocsPurgedTotal,
		m.MergesTotal,
		m.SnapshotLoadsTotal,
		m.SnapshotWritesTotal,
		m.IndexTerms,
		m.IndexDocuments,
		m.StemCacheHitsTotal,
		m.StemCacheMissTotal,
		m.BuildDuration,
		m.EventsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
