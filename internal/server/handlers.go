package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/pipeline"
)

const dateLayout = "2006-01-02"

// salesTrendResponse carries the daily item-count series for the selected
// range. Message is set when the range holds no orders, so the UI can show
// an informational note instead of an empty chart.
type salesTrendResponse struct {
	Start   string               `json:"start"`
	End     string               `json:"end"`
	Series  pipeline.DailySeries `json:"series"`
	Message string               `json:"message,omitempty"`
}

func (s *Server) salesTrend(r *http.Request) (any, error) {
	if !s.hasDates {
		return nil, errors.ErrNoData
	}

	rng := s.defaultRange
	if err := parseDateParam(r, "start", &rng.Start); err != nil {
		return nil, err
	}
	if err := parseDateParam(r, "end", &rng.End); err != nil {
		return nil, err
	}

	series, err := pipeline.ItemsSoldByDay(s.snap.OrderItemRows, rng)
	if err != nil {
		return nil, err
	}

	resp := salesTrendResponse{
		Start:  rng.Start.Format(dateLayout),
		End:    rng.End.Format(dateLayout),
		Series: series,
	}
	if len(series) == 0 {
		resp.Message = "no orders in the selected date range"
	}
	return resp, nil
}

// lateDeliveriesResponse wraps the pipeline report with rates rounded to the
// one decimal the charts display.
type lateDeliveriesResponse struct {
	*pipeline.LateDeliveryReport
	LateRate   float64 `json:"late_rate"`
	OnTimeRate float64 `json:"on_time_rate"`
}

func (s *Server) lateDeliveries(*http.Request) (any, error) {
	report, err := pipeline.LateDeliveries(s.snap.Orders, s.cfg.Dashboard.MovingAverageWindow)
	if err != nil {
		return nil, err
	}

	late := math.Round(report.LateRate*10) / 10
	return lateDeliveriesResponse{
		LateDeliveryReport: report,
		LateRate:           late,
		OnTimeRate:         math.Round((100-report.LateRate)*10) / 10,
	}, nil
}

// paymentMethod is one histogram bucket with its display label.
type paymentMethod struct {
	Method string `json:"method"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

func (s *Server) paymentMethods(*http.Request) (any, error) {
	counts, err := pipeline.PaymentMethodCounts(s.snap.Payments)
	if err != nil {
		return nil, err
	}

	methods := make([]paymentMethod, len(counts))
	for i, pc := range counts {
		methods[i] = paymentMethod{
			Method: pc.Method,
			Label:  pipeline.PaymentMethodLabel(pc.Method),
			Count:  pc.Count,
		}
	}
	return map[string]any{"methods": methods}, nil
}

func (s *Server) cityDistribution(*http.Request) (any, error) {
	topCities, err := pipeline.TopCities(s.snap.Customers, s.cfg.Dashboard.TopCities)
	if err != nil {
		return nil, err
	}
	customerDensity, err := pipeline.Density(s.snap.CustomerGeo)
	if err != nil {
		return nil, err
	}
	sellerDensity, err := pipeline.Density(s.snap.SellerGeo)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"top_cities":       topCities,
		"customer_density": customerDensity,
		"seller_density":   sellerDensity,
	}, nil
}

// badRequestError marks malformed user input, mapped to a 400 response.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

// parseDateParam overwrites dst with the named query parameter when present.
func parseDateParam(r *http.Request, name string, dst *time.Time) error {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return &badRequestError{msg: fmt.Sprintf("invalid %s date %q, want YYYY-MM-DD", name, raw)}
	}
	*dst = parsed
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
