// Package pipeline implements the four dashboard aggregations as pure,
// stateless functions over dataset tables. Each aggregation is independently
// callable; none mutates its input, and each returns fresh derived data.
//
// Every aggregation distinguishes two empty outcomes: when its input has no
// usable rows at all it returns errors.ErrNoData ("did not run"); when rows
// exist but none match it returns a non-nil empty result ("ran empty").
package pipeline

import (
	"time"
)

// DatePoint is one entry of a daily series.
type DatePoint struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// DailySeries maps calendar dates to counts, ascending by date, with one
// entry per date present in the source. Dates with no records are absent,
// not zero.
type DailySeries []DatePoint

// FloatPoint is one entry of a derived real-valued series, such as a moving
// average.
type FloatPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// day truncates a timestamp to its calendar date in UTC.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sortedSeries turns per-day counts into a DailySeries ordered by date
// ascending. The returned series is non-nil even when counts is empty.
func sortedSeries(counts map[time.Time]int64) DailySeries {
	result := make(DailySeries, 0, len(counts))
	for date, count := range counts {
		result = append(result, DatePoint{Date: date, Count: count})
	}
	sortSeries(result)
	return result
}
