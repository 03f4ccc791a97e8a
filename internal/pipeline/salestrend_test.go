package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplytics/shoplytics/internal/errors"
)

func TestItemsSoldByDay(t *testing.T) {
	rows := makeItemRows([]time.Time{
		date(2018, 1, 9).Add(10 * time.Hour),
		date(2018, 1, 9).Add(15 * time.Hour),
		date(2018, 1, 12),
		date(2018, 2, 1),
		{}, // undelivered, skipped
	})
	defer rows.Release()

	t.Run("counts item rows per day", func(t *testing.T) {
		got, err := ItemsSoldByDay(rows, DateRange{Start: date(2018, 1, 1), End: date(2018, 1, 31)})
		require.NoError(t, err)

		assert.Equal(t, DailySeries{
			{Date: date(2018, 1, 9), Count: 2},
			{Date: date(2018, 1, 12), Count: 1},
		}, got)
	})

	t.Run("range endpoints are inclusive", func(t *testing.T) {
		got, err := ItemsSoldByDay(rows, DateRange{Start: date(2018, 1, 9), End: date(2018, 1, 9)})
		require.NoError(t, err)

		assert.Equal(t, DailySeries{{Date: date(2018, 1, 9), Count: 2}}, got)
	})

	t.Run("matches a direct filter and count", func(t *testing.T) {
		r := DateRange{Start: date(2018, 1, 1), End: date(2018, 12, 31)}
		got, err := ItemsSoldByDay(rows, r)
		require.NoError(t, err)

		var total int64
		for _, p := range got {
			total += p.Count
		}
		// Four delivered item rows fall inside the range.
		assert.Equal(t, int64(4), total)
	})

	t.Run("no rows in range runs empty", func(t *testing.T) {
		got, err := ItemsSoldByDay(rows, DateRange{Start: date(2020, 1, 1), End: date(2020, 12, 31)})
		require.NoError(t, err)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestItemsSoldByDayInvalidRange(t *testing.T) {
	rows := makeItemRows([]time.Time{date(2018, 1, 9)})
	defer rows.Release()

	// Invalid for every ordering of the two endpoints.
	_, err := ItemsSoldByDay(rows, DateRange{Start: date(2018, 2, 1), End: date(2018, 1, 1)})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRange(err))

	_, err = ItemsSoldByDay(rows, DateRange{Start: date(2018, 1, 1), End: date(2018, 2, 1)})
	assert.NoError(t, err)
}

func TestItemsSoldByDayNoData(t *testing.T) {
	rows := makeItemRows(nil)
	defer rows.Release()

	_, err := ItemsSoldByDay(rows, DateRange{Start: date(2018, 1, 1), End: date(2018, 1, 2)})
	assert.ErrorIs(t, err, errors.ErrNoData)
}

func TestDateBounds(t *testing.T) {
	t.Run("min and max delivered dates", func(t *testing.T) {
		rows := makeItemRows([]time.Time{
			date(2018, 3, 5),
			date(2017, 11, 2).Add(8 * time.Hour),
			{},
			date(2018, 1, 20),
		})
		defer rows.Release()

		bounds, err := DateBounds(rows)
		require.NoError(t, err)
		assert.Equal(t, date(2017, 11, 2), bounds.Start)
		assert.Equal(t, date(2018, 3, 5), bounds.End)
	})

	t.Run("no delivered dates", func(t *testing.T) {
		rows := makeItemRows([]time.Time{{}})
		defer rows.Release()

		_, err := DateBounds(rows)
		assert.ErrorIs(t, err, errors.ErrNoData)
	})
}
