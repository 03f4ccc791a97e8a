package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []int64
		window   int
		expected []float64
	}{
		{
			name:     "fewer values than window emits nothing",
			values:   []int64{1, 2, 3, 4, 5, 6},
			window:   7,
			expected: []float64{},
		},
		{
			name:     "exactly window emits one value",
			values:   []int64{1, 2, 3, 4, 5, 6, 7},
			window:   7,
			expected: []float64{4},
		},
		{
			name:     "window slides over present entries",
			values:   []int64{2, 4, 6, 8},
			window:   2,
			expected: []float64{3, 5, 7},
		},
		{
			name:     "window of one is identity",
			values:   []int64{5, 1},
			window:   1,
			expected: []float64{5, 1},
		},
		{
			name:     "empty input",
			values:   nil,
			window:   3,
			expected: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trailingMean(tt.values, tt.window))
		})
	}
}

func TestTrailingMeanMatchesDirectComputation(t *testing.T) {
	values := []int64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	window := 7

	got := trailingMean(values, window)
	require.Len(t, got, len(values)-window+1)

	// The k-th emitted mean covers the entry at k+window-1 and its six
	// predecessors.
	for k := range got {
		var sum float64
		for _, v := range values[k : k+window] {
			sum += float64(v)
		}
		assert.InDelta(t, sum/float64(window), got[k], 1e-9)
	}
}

func TestMovingAverageDateAlignment(t *testing.T) {
	series := DailySeries{
		{Date: date(2018, 1, 1), Count: 1},
		{Date: date(2018, 1, 2), Count: 2},
		// A calendar gap: the window spans present dates, not calendar days.
		{Date: date(2018, 1, 9), Count: 3},
	}

	got := movingAverage(series, 2)
	require.Len(t, got, 2)
	assert.Equal(t, date(2018, 1, 2), got[0].Date)
	assert.InDelta(t, 1.5, got[0].Value, 1e-9)
	assert.Equal(t, date(2018, 1, 9), got[1].Date)
	assert.InDelta(t, 2.5, got[1].Value, 1e-9)
}
