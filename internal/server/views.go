package server

import (
	"net/http"
	"time"
)

// View identifiers; one per dashboard page.
const (
	ViewSalesTrend       = "sales-trend"
	ViewLateDeliveries   = "late-deliveries"
	ViewPaymentMethods   = "payment-methods"
	ViewCityDistribution = "city-distribution"
)

// View describes one sidebar entry of the dashboard.
type View struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Views lists the four fixed dashboard pages in sidebar order.
func Views() []View {
	return []View{
		{ID: ViewSalesTrend, Title: "Sale Trend", Path: "/api/v1/sales-trend"},
		{ID: ViewLateDeliveries, Title: "Late Orders Analysis", Path: "/api/v1/late-deliveries"},
		{ID: ViewPaymentMethods, Title: "Payment Method Analysis", Path: "/api/v1/payment-methods"},
		{ID: ViewCityDistribution, Title: "City-wise Distribution", Path: "/api/v1/city-distribution"},
	}
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"views": Views()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
