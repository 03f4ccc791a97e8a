package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/table"
)

// PaymentCount is one payment-method histogram bucket.
type PaymentCount struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

// PaymentMethodCounts builds the payment-method usage histogram: one bucket
// per distinct method present in the source, ordered by count descending with
// ties broken by first appearance. Methods absent from the source are absent
// from the histogram, not zero.
func PaymentMethodCounts(payments *table.Table) ([]PaymentCount, error) {
	const op = "PaymentMethodCounts"

	methods, err := payments.Strings(dataset.ColPaymentType)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	if len(methods) == 0 {
		return nil, errors.ErrNoData
	}

	counts := make(map[string]int64)
	var order []string
	for _, method := range methods {
		if _, seen := counts[method]; !seen {
			order = append(order, method)
		}
		counts[method]++
	}

	result := make([]PaymentCount, len(order))
	for i, method := range order {
		result[i] = PaymentCount{Method: method, Count: counts[method]}
	}
	// Stable sort keeps first-seen order for equal counts.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

// PaymentMethodLabel turns a raw method category into its display form:
// credit_card becomes "Credit Card".
func PaymentMethodLabel(method string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(method, "_", " "))
}
