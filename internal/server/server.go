// Package server exposes the dashboard views as a JSON HTTP API. It renders
// no charts; it serializes pipeline outputs for a browser UI, which supplies
// only the sales-trend date range back.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplytics/shoplytics/internal/config"
	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/metrics"
	"github.com/shoplytics/shoplytics/internal/pipeline"
)

// Server serves the four dashboard views over HTTP.
type Server struct {
	snap    *dataset.Snapshot
	cfg     config.Config
	log     zerolog.Logger
	metrics *metrics.Registry
	server  *http.Server

	// defaultRange is the [min, max] delivered-date span of the joined
	// order-item data, the sales-trend default. hasDates is false when the
	// dataset carries no delivered dates at all.
	defaultRange pipeline.DateRange
	hasDates     bool
}

// New creates a dashboard server over the given snapshot.
func New(snap *dataset.Snapshot, cfg config.Config, logger zerolog.Logger, reg *metrics.Registry) *Server {
	s := &Server{
		snap:    snap,
		cfg:     cfg,
		log:     logger,
		metrics: reg,
	}

	bounds, err := pipeline.DateBounds(snap.OrderItemRows)
	if err == nil {
		s.defaultRange = bounds
		s.hasDates = true
	}

	reg.SourceRows.WithLabelValues(dataset.SourceOrders).Set(float64(snap.Orders.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourceOrderItems).Set(float64(snap.OrderItems.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourcePayments).Set(float64(snap.Payments.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourceCustomers).Set(float64(snap.Customers.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourceSellers).Set(float64(snap.Sellers.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourceGeolocation).Set(float64(snap.Geolocation.Len()))
	reg.SourceRows.WithLabelValues(dataset.SourceProducts).Set(float64(snap.Products.Len()))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/views", s.handleViews)
	mux.HandleFunc("/api/v1/sales-trend", s.view(ViewSalesTrend, s.salesTrend))
	mux.HandleFunc("/api/v1/late-deliveries", s.view(ViewLateDeliveries, s.lateDeliveries))
	mux.HandleFunc("/api/v1/payment-methods", s.view(ViewPaymentMethods, s.paymentMethods))
	mux.HandleFunc("/api/v1/city-distribution", s.view(ViewCityDistribution, s.cityDistribution))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", reg.Handler())

	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("dashboard listening")
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// view wraps a dashboard view: method guard, timing, metrics, and the shared
// error mapping. Failures stay local to the view; other routes are
// unaffected.
func (s *Server) view(name string, fn func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.metrics.PageViews.WithLabelValues(name).Inc()

		started := time.Now()
		result, err := fn(r)
		s.metrics.AggregationSeconds.WithLabelValues(name).Observe(time.Since(started).Seconds())

		var badRequest *badRequestError
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, result)
		case errors.IsInvalidRange(err):
			// Recoverable user input: a warning, not a render.
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"warning": "start date must not be after end date",
			})
		case stderrors.As(err, &badRequest):
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"warning": badRequest.msg,
			})
		case stderrors.Is(err, errors.ErrNoData):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"message": "no data available for this view",
			})
		default:
			s.metrics.ViewErrors.WithLabelValues(name).Inc()
			s.log.Error().Err(err).Str("view", name).Msg("view failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "internal error",
			})
		}
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(started)).
			Msg("request")
	})
}
