package pipeline

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func sortSeries(s DailySeries) {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Date.Before(s[j].Date)
	})
}

// trailingMean computes a trailing moving average of the given window over
// values. The first window-1 positions emit nothing: the result has
// len(values)-window+1 entries, the first covering values[0:window]. With
// fewer than window values the result is empty. The window slides over the
// entries that are present, not over a continuous calendar.
func trailingMean[T constraints.Integer | constraints.Float](values []T, window int) []float64 {
	if window < 1 || len(values) < window {
		return []float64{}
	}

	result := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += float64(v)
		if i >= window {
			sum -= float64(values[i-window])
		}
		if i >= window-1 {
			result = append(result, sum/float64(window))
		}
	}
	return result
}

// movingAverage applies trailingMean to a daily series, pairing each emitted
// mean with the date it lands on. No value is emitted for the first window-1
// present dates.
func movingAverage(series DailySeries, window int) []FloatPoint {
	counts := make([]int64, len(series))
	for i, p := range series {
		counts[i] = p.Count
	}

	means := trailingMean(counts, window)
	result := make([]FloatPoint, len(means))
	for i, mean := range means {
		result[i] = FloatPoint{Date: series[i+window-1].Date, Value: mean}
	}
	return result
}
