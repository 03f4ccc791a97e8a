// Package metrics exposes operational metrics for the dashboard over a
// private Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the dashboard metrics and their Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// PageViews counts requests per dashboard view.
	PageViews *prometheus.CounterVec
	// ViewErrors counts failed view renders per dashboard view.
	ViewErrors *prometheus.CounterVec
	// AggregationSeconds observes how long each view's aggregation takes.
	AggregationSeconds *prometheus.HistogramVec
	// SourceRows reports the row count of each loaded source table.
	SourceRows *prometheus.GaugeVec
	// SnapshotLoadSeconds reports how long the snapshot took to build.
	SnapshotLoadSeconds prometheus.Gauge
}

// NewRegistry creates a registry with all dashboard metrics registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	pageViews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplytics_page_views_total",
		Help: "Requests served per dashboard view.",
	}, []string{"view"})
	viewErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplytics_view_errors_total",
		Help: "Failed renders per dashboard view.",
	}, []string{"view"})
	aggregationSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shoplytics_aggregation_seconds",
		Help:    "Aggregation latency per dashboard view.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	sourceRows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shoplytics_source_rows",
		Help: "Row count per loaded source table.",
	}, []string{"source"})
	snapshotLoadSeconds := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shoplytics_snapshot_load_seconds",
		Help: "Wall time spent building the dataset snapshot.",
	})

	r.MustRegister(pageViews, viewErrors, aggregationSeconds, sourceRows, snapshotLoadSeconds)
	return &Registry{
		reg:                 r,
		PageViews:           pageViews,
		ViewErrors:          viewErrors,
		AggregationSeconds:  aggregationSeconds,
		SourceRows:          sourceRows,
		SnapshotLoadSeconds: snapshotLoadSeconds,
	}
}

// Handler returns the HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
