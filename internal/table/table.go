// Package table provides an immutable, Arrow-backed table of typed columns.
// Tables are never mutated in place; every operation returns a fresh table.
package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/shoplytics/shoplytics/internal/series"
)

// Table represents a table of data with typed columns.
type Table struct {
	columns map[string]Column
	order   []string // maintains column order
}

// New creates a new Table from a slice of columns.
func New(cols ...Column) *Table {
	columns := make(map[string]Column, len(cols))
	order := make([]string, 0, len(cols))

	for _, c := range cols {
		name := c.Name()
		columns[name] = c
		order = append(order, name)
	}

	return &Table{columns: columns, order: order}
}

// Columns returns the names of all columns in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of rows. All columns share the same length.
func (t *Table) Len() int {
	if len(t.order) == 0 {
		return 0
	}
	if c, ok := t.columns[t.order[0]]; ok {
		return c.Len()
	}
	return 0
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// HasColumn checks if a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Select returns a new Table with only the specified columns.
func (t *Table) Select(names ...string) *Table {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		if c, ok := t.columns[name]; ok {
			cols = append(cols, c)
		}
	}
	return New(cols...)
}

// Take returns a new Table containing the rows at the given indices, in
// order. Indices may repeat, which duplicates rows; this is how fan-out
// joins materialize their output.
func (t *Table) Take(indices []int) (*Table, error) {
	cols := make([]Column, 0, len(t.order))
	for _, name := range t.order {
		c := t.columns[name]
		taken, err := takeColumn(c, indices)
		if err != nil {
			return nil, fmt.Errorf("taking rows from column %s: %w", name, err)
		}
		cols = append(cols, taken)
	}
	return New(cols...), nil
}

// takeColumn materializes a row subset of a single column.
func takeColumn(c Column, indices []int) (Column, error) {
	arr := c.Array()
	defer arr.Release()

	mem := memory.NewGoAllocator()

	switch typed := arr.(type) {
	case *array.String:
		values := make([]string, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
			}
		}
		return series.New(c.Name(), values, mem), nil
	case *array.Int64:
		values := make([]int64, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
			}
		}
		return series.New(c.Name(), values, mem), nil
	case *array.Float64:
		values := make([]float64, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
			}
		}
		return series.New(c.Name(), values, mem), nil
	case *array.Boolean:
		values := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
			}
		}
		return series.New(c.Name(), values, mem), nil
	case *array.Timestamp:
		values := make([]time.Time, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if typed.IsNull(idx) {
				continue
			}
			values[i] = time.Unix(0, int64(typed.Value(idx))).UTC()
			valid[i] = true
		}
		return series.NewTimestamps(c.Name(), values, valid, mem), nil
	default:
		return nil, fmt.Errorf("unsupported array type %T", arr)
	}
}

// Strings returns the values of a string column.
func (t *Table) Strings(name string) ([]string, error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %s does not exist", name)
	}
	arr := c.Array()
	defer arr.Release()

	typed, ok := arr.(*array.String)
	if !ok {
		return nil, fmt.Errorf("column %s is %s, not string", name, c.DataType())
	}
	values := make([]string, typed.Len())
	for i := range values {
		if !typed.IsNull(i) {
			values[i] = typed.Value(i)
		}
	}
	return values, nil
}

// Floats returns the values of a float64 column.
func (t *Table) Floats(name string) ([]float64, error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %s does not exist", name)
	}
	arr := c.Array()
	defer arr.Release()

	typed, ok := arr.(*array.Float64)
	if !ok {
		return nil, fmt.Errorf("column %s is %s, not float64", name, c.DataType())
	}
	values := make([]float64, typed.Len())
	for i := range values {
		if !typed.IsNull(i) {
			values[i] = typed.Value(i)
		}
	}
	return values, nil
}

// Times returns the values of a timestamp column together with a validity
// slice; valid[i] is false where the source value is null.
func (t *Table) Times(name string) (values []time.Time, valid []bool, err error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, nil, fmt.Errorf("column %s does not exist", name)
	}
	arr := c.Array()
	defer arr.Release()

	typed, ok := arr.(*array.Timestamp)
	if !ok {
		return nil, nil, fmt.Errorf("column %s is %s, not timestamp", name, c.DataType())
	}
	values = make([]time.Time, typed.Len())
	valid = make([]bool, typed.Len())
	for i := range values {
		if typed.IsNull(i) {
			continue
		}
		values[i] = time.Unix(0, int64(typed.Value(i))).UTC()
		valid[i] = true
	}
	return values, valid, nil
}

// String returns a string representation of the table.
func (t *Table) String() string {
	if len(t.columns) == 0 {
		return "Table[empty]"
	}

	parts := []string{fmt.Sprintf("Table[%dx%d]", t.Len(), t.Width())}
	for _, name := range t.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, t.columns[name].DataType()))
	}
	return strings.Join(parts, "\n")
}

// Release releases all underlying Arrow memory.
func (t *Table) Release() {
	for _, c := range t.columns {
		c.Release()
	}
}
