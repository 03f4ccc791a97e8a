package pipeline

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/series"
	"github.com/shoplytics/shoplytics/internal/table"
)

func makePayments(methods []string) *table.Table {
	mem := memory.NewGoAllocator()
	ids := make([]string, len(methods))
	for i := range ids {
		ids[i] = "o"
	}
	return table.New(
		series.New(dataset.ColOrderID, ids, mem),
		series.New(dataset.ColPaymentType, methods, mem),
	)
}

func TestPaymentMethodCounts(t *testing.T) {
	payments := makePayments([]string{
		"credit_card", "boleto", "credit_card", "voucher", "credit_card", "boleto",
	})
	defer payments.Release()

	got, err := PaymentMethodCounts(payments)
	require.NoError(t, err)

	assert.Equal(t, []PaymentCount{
		{Method: "credit_card", Count: 3},
		{Method: "boleto", Count: 2},
		{Method: "voucher", Count: 1},
	}, got)

	// Counts sum to the number of payment records.
	var total int64
	for _, pc := range got {
		total += pc.Count
	}
	assert.Equal(t, int64(6), total)
}

func TestPaymentMethodCountsTiesKeepFirstSeenOrder(t *testing.T) {
	payments := makePayments([]string{"voucher", "debit_card", "voucher", "debit_card"})
	defer payments.Release()

	got, err := PaymentMethodCounts(payments)
	require.NoError(t, err)

	assert.Equal(t, []PaymentCount{
		{Method: "voucher", Count: 2},
		{Method: "debit_card", Count: 2},
	}, got)
}

func TestPaymentMethodCountsNoData(t *testing.T) {
	payments := makePayments(nil)
	defer payments.Release()

	_, err := PaymentMethodCounts(payments)
	assert.ErrorIs(t, err, errors.ErrNoData)
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Credit Card", PaymentMethodLabel("credit_card"))
	assert.Equal(t, "Boleto", PaymentMethodLabel("boleto"))
	assert.Equal(t, "Not Defined", PaymentMethodLabel("not_defined"))
}
