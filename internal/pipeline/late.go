package pipeline

import (
	"time"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/table"
)

// DefaultMovingAverageWindow is the standard trailing window, in present
// data points, of the smoothed late-delivery series.
const DefaultMovingAverageWindow = 7

// LateDeliveryReport summarizes how often delivered orders arrived after
// their estimated delivery date.
type LateDeliveryReport struct {
	DeliveredOrders int64   `json:"delivered_orders"`
	LateOrders      int64   `json:"late_orders"`
	LateRate        float64 `json:"late_rate"` // percent of delivered orders

	// Daily and DailyLate group delivered and late order counts by the
	// delivered date (not the estimated date).
	Daily     DailySeries `json:"daily"`
	DailyLate DailySeries `json:"daily_late"`

	// DailyAvg and DailyLateAvg are trailing moving averages over the two
	// series, computed over present dates only. With a window of w, each
	// starts at its series' w-th present date; earlier entries emit no
	// value.
	DailyAvg     []FloatPoint `json:"daily_avg"`
	DailyLateAvg []FloatPoint `json:"daily_late_avg"`
}

// LateDeliveries analyzes orders with status delivered and both dates
// present. An order is late when it was delivered strictly after its
// estimated date; equal instants count as on-time. Grouping is by value, so
// the report is invariant to input row order. window is the trailing
// moving-average span in present data points, normally
// DefaultMovingAverageWindow.
func LateDeliveries(orders *table.Table, window int) (*LateDeliveryReport, error) {
	const op = "LateDeliveries"

	statuses, err := orders.Strings(dataset.ColOrderStatus)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	delivered, deliveredValid, err := orders.Times(dataset.ColDeliveredDate)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	estimated, estimatedValid, err := orders.Times(dataset.ColEstimatedDelivery)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}

	report := &LateDeliveryReport{}
	daily := make(map[time.Time]int64)
	dailyLate := make(map[time.Time]int64)

	for i, status := range statuses {
		if status != dataset.StatusDelivered || !deliveredValid[i] || !estimatedValid[i] {
			continue
		}

		report.DeliveredOrders++
		d := day(delivered[i])
		daily[d]++

		if delivered[i].After(estimated[i]) {
			report.LateOrders++
			dailyLate[d]++
		}
	}

	if report.DeliveredOrders == 0 {
		return nil, errors.ErrNoData
	}

	report.LateRate = 100 * float64(report.LateOrders) / float64(report.DeliveredOrders)
	report.Daily = sortedSeries(daily)
	report.DailyLate = sortedSeries(dailyLate)
	report.DailyAvg = movingAverage(report.Daily, window)
	report.DailyLateAvg = movingAverage(report.DailyLate, window)

	return report, nil
}
