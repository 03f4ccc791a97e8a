package table

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplytics/shoplytics/internal/series"
)

func TestInnerJoin(t *testing.T) {
	mem := memory.NewGoAllocator()

	orders := New(
		series.New("order_id", []string{"o1", "o2", "o3"}, mem),
		series.New("order_status", []string{"delivered", "delivered", "shipped"}, mem),
	)
	defer orders.Release()

	items := New(
		series.New("order_id", []string{"o1", "o1", "o2", "o9"}, mem),
		series.New("order_item_id", []int64{1, 2, 1, 1}, mem),
	)
	defer items.Release()

	joined, err := InnerJoin(orders, items, "order_id", "order_id")
	require.NoError(t, err)
	defer joined.Release()

	// o1 has two items, o2 one, o3 none, and item row o9 has no order.
	assert.Equal(t, 3, joined.Len())

	ids, err := joined.Strings("order_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o1", "o2"}, ids)

	// Shared key column appears once.
	assert.Equal(t, []string{"order_id", "order_status", "order_item_id"}, joined.Columns())
}

func TestInnerJoinFanOut(t *testing.T) {
	mem := memory.NewGoAllocator()

	customers := New(
		series.New("customer_id", []string{"c1", "c2"}, mem),
		series.New("customer_zip_code_prefix", []string{"01310", "01310"}, mem),
	)
	defer customers.Release()

	// Zip prefixes are not unique in geolocation, so the join is many-to-many.
	geo := New(
		series.New("geolocation_zip_code_prefix", []string{"01310", "01310", "01310"}, mem),
		series.New("geolocation_lat", []float64{-23.55, -23.56, -23.55}, mem),
	)
	defer geo.Release()

	joined, err := InnerJoin(customers, geo, "customer_zip_code_prefix", "geolocation_zip_code_prefix")
	require.NoError(t, err)
	defer joined.Release()

	// 2 customers x 3 geolocation points on the same prefix.
	assert.Equal(t, 6, joined.Len())

	// Differently named key columns are both retained.
	assert.Contains(t, joined.Columns(), "customer_zip_code_prefix")
	assert.Contains(t, joined.Columns(), "geolocation_zip_code_prefix")
}

func TestInnerJoinNoMatches(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(series.New("k", []string{"a", "b"}, mem))
	defer left.Release()
	right := New(series.New("k", []string{"c"}, mem))
	defer right.Release()

	joined, err := InnerJoin(left, right, "k", "k")
	require.NoError(t, err)
	defer joined.Release()

	assert.Equal(t, 0, joined.Len())
}

func TestInnerJoinMissingKeyColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(series.New("k", []string{"a"}, mem))
	defer left.Release()
	right := New(series.New("k", []string{"a"}, mem))
	defer right.Release()

	_, err := InnerJoin(left, right, "nope", "k")
	require.Error(t, err)
}

func TestJoinHashMapCollisionSafety(t *testing.T) {
	keys := []string{"01310", "22041", "01310", ""}
	m := newJoinHashMap(keys)

	assert.Equal(t, []int{0, 2}, m.get("01310"))
	assert.Equal(t, []int{1}, m.get("22041"))
	assert.Equal(t, []int{3}, m.get(""))
	assert.Nil(t, m.get("99999"))
}
