package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shoplytics/shoplytics/internal/errors"
)

var ordersSchema = Schema{
	Source: "orders",
	Columns: []ColumnSpec{
		{Name: "order_id", Kind: KindString},
		{Name: "order_status", Kind: KindString},
		{Name: "order_estimated_delivery_date", Kind: KindTimestamp},
		{Name: "order_delivered_customer_date", Kind: KindTimestamp},
	},
}

func TestReadTypedColumns(t *testing.T) {
	data := `order_id,order_status,order_approved_at,order_estimated_delivery_date,order_delivered_customer_date
o1,delivered,2018-01-02 10:00:00,2018-01-10 00:00:00,2018-01-12 13:45:00
o2,shipped,2018-01-03 11:00:00,2018-01-15 00:00:00,
`
	tbl, err := Read(strings.NewReader(data), ordersSchema, nil)
	require.NoError(t, err)
	defer tbl.Release()

	// Only declared columns survive, in declaration order.
	assert.Equal(t, []string{
		"order_id", "order_status",
		"order_estimated_delivery_date", "order_delivered_customer_date",
	}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())

	ids, err := tbl.Strings("order_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o2"}, ids)

	delivered, valid, err := tbl.Times("order_delivered_customer_date")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, valid)
	assert.True(t, delivered[0].Equal(time.Date(2018, 1, 12, 13, 45, 0, 0, time.UTC)))
}

func TestReadDateOnlyTimestamps(t *testing.T) {
	data := "order_id,order_status,order_estimated_delivery_date,order_delivered_customer_date\no1,delivered,2018-01-10,2018-01-12\n"

	tbl, err := Read(strings.NewReader(data), ordersSchema, nil)
	require.NoError(t, err)
	defer tbl.Release()

	est, _, err := tbl.Times("order_estimated_delivery_date")
	require.NoError(t, err)
	assert.True(t, est[0].Equal(time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func TestReadSchemaMismatch(t *testing.T) {
	data := "order_id,order_status\no1,delivered\n"

	_, err := Read(strings.NewReader(data), ordersSchema, nil)
	require.Error(t, err)

	var ae *apperrors.AnalyticsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "orders", ae.Source)
	assert.Contains(t, ae.Message, "order_estimated_delivery_date")
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), ordersSchema, nil)
	require.Error(t, err)

	var ae *apperrors.AnalyticsError
	assert.ErrorAs(t, err, &ae)
}

func TestReadBadTimestamp(t *testing.T) {
	data := "order_id,order_status,order_estimated_delivery_date,order_delivered_customer_date\no1,delivered,not-a-date,\n"

	_, err := Read(strings.NewReader(data), ordersSchema, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized timestamp")
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "orders.csv"), ordersSchema, nil)
	require.Error(t, err)

	var ae *apperrors.AnalyticsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "source not found", ae.Message)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	data := "order_id,order_status,order_estimated_delivery_date,order_delivered_customer_date\no1,delivered,2018-01-10,2018-01-09\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	tbl, err := ReadFile(path, ordersSchema, nil)
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, 1, tbl.Len())
}
