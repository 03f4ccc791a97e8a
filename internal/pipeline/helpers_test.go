package pipeline

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/series"
	"github.com/shoplytics/shoplytics/internal/table"
)

// orderRow is a test fixture for one order.
type orderRow struct {
	id        string
	status    string
	estimated time.Time
	delivered time.Time // zero means not delivered yet
}

func makeOrders(rows []orderRow) *table.Table {
	mem := memory.NewGoAllocator()

	ids := make([]string, len(rows))
	statuses := make([]string, len(rows))
	estimated := make([]time.Time, len(rows))
	delivered := make([]time.Time, len(rows))
	deliveredValid := make([]bool, len(rows))
	for i, r := range rows {
		ids[i] = r.id
		statuses[i] = r.status
		estimated[i] = r.estimated
		delivered[i] = r.delivered
		deliveredValid[i] = !r.delivered.IsZero()
	}

	return table.New(
		series.New(dataset.ColOrderID, ids, mem),
		series.New(dataset.ColOrderStatus, statuses, mem),
		series.NewTimestamps(dataset.ColEstimatedDelivery, estimated, nil, mem),
		series.NewTimestamps(dataset.ColDeliveredDate, delivered, deliveredValid, mem),
	)
}

// makeItemRows builds a joined order-item view with one row per item,
// delivered at the given timestamps. A zero timestamp becomes a null.
func makeItemRows(delivered []time.Time) *table.Table {
	mem := memory.NewGoAllocator()

	ids := make([]string, len(delivered))
	itemSeq := make([]int64, len(delivered))
	valid := make([]bool, len(delivered))
	for i := range delivered {
		ids[i] = "o"
		itemSeq[i] = int64(i + 1)
		valid[i] = !delivered[i].IsZero()
	}

	return table.New(
		series.New(dataset.ColOrderID, ids, mem),
		series.New(dataset.ColOrderItemID, itemSeq, mem),
		series.NewTimestamps(dataset.ColDeliveredDate, delivered, valid, mem),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
