package pipeline

import (
	"time"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/table"
)

// DateRange is an inclusive calendar date range. Time-of-day components are
// ignored; the range covers whole days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ItemsSoldByDay counts item rows per delivery date within the range. The
// input is the orders-with-items joined view: an order with three items
// contributes three to its date, one per item row. Rows with no delivered
// date are skipped.
//
// A range whose start falls after its end yields an invalid-range error and
// no aggregation runs. An empty input table yields errors.ErrNoData. Rows
// present but none within range yields an empty, non-nil series.
func ItemsSoldByDay(rows *table.Table, r DateRange) (DailySeries, error) {
	const op = "ItemsSoldByDay"

	start, end := day(r.Start), day(r.End)
	if start.After(end) {
		return nil, errors.NewInvalidRangeError(op)
	}

	if rows.Len() == 0 {
		return nil, errors.ErrNoData
	}

	delivered, valid, err := rows.Times(dataset.ColDeliveredDate)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}

	counts := make(map[time.Time]int64)
	for i, ts := range delivered {
		if !valid[i] {
			continue
		}
		d := day(ts)
		if d.Before(start) || d.After(end) {
			continue
		}
		counts[d]++
	}

	return sortedSeries(counts), nil
}

// DateBounds returns the [min, max] delivered dates present in the joined
// order-item rows, the default range for the sales-trend view. It returns
// errors.ErrNoData when no row carries a delivered date.
func DateBounds(rows *table.Table) (DateRange, error) {
	const op = "DateBounds"

	delivered, valid, err := rows.Times(dataset.ColDeliveredDate)
	if err != nil {
		return DateRange{}, errors.NewInternalError(op, err)
	}

	var bounds DateRange
	found := false
	for i, ts := range delivered {
		if !valid[i] {
			continue
		}
		d := day(ts)
		if !found {
			bounds = DateRange{Start: d, End: d}
			found = true
			continue
		}
		if d.Before(bounds.Start) {
			bounds.Start = d
		}
		if d.After(bounds.End) {
			bounds.End = d
		}
	}
	if !found {
		return DateRange{}, errors.ErrNoData
	}
	return bounds, nil
}
