// Package io provides CSV input for the analytics core.
//
// Unlike a general-purpose reader, columns are read against a declared
// schema: each dataset source names its required columns and their types up
// front, and a missing column is a load-time failure. Extra columns in the
// file are ignored.
package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	apperrors "github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/series"
	"github.com/shoplytics/shoplytics/internal/table"
)

// Kind enumerates the column types a schema can declare.
type Kind int

const (
	// KindString holds identifiers, zip-code prefixes, and categories.
	KindString Kind = iota
	// KindInt64 holds integer sequence numbers.
	KindInt64
	// KindFloat64 holds coordinates and monetary values.
	KindFloat64
	// KindTimestamp holds dates; empty cells load as nulls.
	KindTimestamp
)

// ColumnSpec declares one required column of a source.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schema declares the required columns of one dataset source.
type Schema struct {
	Source  string
	Columns []ColumnSpec
}

// Timestamp layouts accepted in source files, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadFile opens and reads a CSV file against the schema.
func ReadFile(path string, schema Schema, mem memory.Allocator) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewSourceNotFoundError("Load", schema.Source, err)
		}
		return nil, apperrors.NewInternalError("Load", err)
	}
	defer f.Close()

	return Read(f, schema, mem)
}

// Read reads CSV data against the schema and returns a typed table holding
// exactly the declared columns, in declaration order.
func Read(r io.Reader, schema Schema, mem memory.Allocator) (*table.Table, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV for %s: %w", schema.Source, err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewSchemaMismatchError("Load", schema.Source, "file has no header row")
	}

	headerIndex := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		headerIndex[name] = i
	}

	var missing []string
	for _, spec := range schema.Columns {
		if _, ok := headerIndex[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaMismatchError(
			"Load", schema.Source, fmt.Sprintf("missing required columns %v", missing))
	}

	dataRows := records[1:]

	cols := make([]table.Column, 0, len(schema.Columns))
	for _, spec := range schema.Columns {
		idx := headerIndex[spec.Name]
		raw := make([]string, len(dataRows))
		for i, row := range dataRows {
			if idx < len(row) {
				raw[i] = row[idx]
			}
		}

		col, err := buildColumn(spec, raw, mem)
		if err != nil {
			return nil, fmt.Errorf("column %s of %s: %w", spec.Name, schema.Source, err)
		}
		cols = append(cols, col)
	}

	return table.New(cols...), nil
}

// buildColumn parses one raw string column into a typed series.
func buildColumn(spec ColumnSpec, raw []string, mem memory.Allocator) (table.Column, error) {
	switch spec.Kind {
	case KindString:
		return series.New(spec.Name, raw, mem), nil
	case KindInt64:
		values := make([]int64, len(raw))
		for i, v := range raw {
			if v == "" {
				continue
			}
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[i] = parsed
		}
		return series.New(spec.Name, values, mem), nil
	case KindFloat64:
		values := make([]float64, len(raw))
		for i, v := range raw {
			if v == "" {
				continue
			}
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[i] = parsed
		}
		return series.New(spec.Name, values, mem), nil
	case KindTimestamp:
		values := make([]time.Time, len(raw))
		valid := make([]bool, len(raw))
		for i, v := range raw {
			if v == "" {
				continue
			}
			parsed, err := parseTimestamp(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[i] = parsed
			valid[i] = true
		}
		return series.NewTimestamps(spec.Name, values, valid, mem), nil
	default:
		return nil, fmt.Errorf("unsupported column kind %d", spec.Kind)
	}
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
