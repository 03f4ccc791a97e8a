package table

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// hashEntry holds the row indices for one distinct key value. Entries that
// share an xxhash bucket are disambiguated by comparing the key itself.
type hashEntry struct {
	key  string
	rows []int
}

// joinHashMap indexes the row positions of a string key column by xxhash.
type joinHashMap struct {
	buckets map[uint64][]hashEntry
}

func newJoinHashMap(keys []string) *joinHashMap {
	m := &joinHashMap{buckets: make(map[uint64][]hashEntry, len(keys))}
	for row, key := range keys {
		m.put(key, row)
	}
	return m
}

func (m *joinHashMap) put(key string, row int) {
	hash := xxhash.Sum64String(key)
	bucket := m.buckets[hash]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].rows = append(bucket[i].rows, row)
			return
		}
	}
	m.buckets[hash] = append(bucket, hashEntry{key: key, rows: []int{row}})
}

func (m *joinHashMap) get(key string) []int {
	for _, entry := range m.buckets[xxhash.Sum64String(key)] {
		if entry.key == key {
			return entry.rows
		}
	}
	return nil
}

// InnerJoin joins two tables on string key columns, keeping only rows with a
// match on both sides. When a key value repeats on either side the join fans
// out: every matching (left, right) row pair appears in the output, so the
// result is a multiset and can be larger than either input. When the key
// columns share a name the output carries a single copy; otherwise both key
// columns are kept.
func InnerJoin(left, right *Table, leftKey, rightKey string) (*Table, error) {
	leftKeys, err := left.Strings(leftKey)
	if err != nil {
		return nil, fmt.Errorf("inner join left key: %w", err)
	}
	rightKeys, err := right.Strings(rightKey)
	if err != nil {
		return nil, fmt.Errorf("inner join right key: %w", err)
	}

	// Build on the right side, probe the left in row order so output order
	// follows the left table.
	hashMap := newJoinHashMap(rightKeys)

	var leftRows, rightRows []int
	for leftRow, key := range leftKeys {
		for _, rightRow := range hashMap.get(key) {
			leftRows = append(leftRows, leftRow)
			rightRows = append(rightRows, rightRow)
		}
	}

	rightNames := make([]string, 0, len(right.order))
	for _, name := range right.order {
		if name == rightKey && rightKey == leftKey {
			continue
		}
		if left.HasColumn(name) && name != rightKey {
			return nil, fmt.Errorf("inner join: column %s exists on both sides", name)
		}
		rightNames = append(rightNames, name)
	}

	leftOut, err := left.Take(leftRows)
	if err != nil {
		return nil, err
	}
	rightOut, err := right.Select(rightNames...).Take(rightRows)
	if err != nil {
		leftOut.Release()
		return nil, err
	}

	cols := make([]Column, 0, leftOut.Width()+rightOut.Width())
	for _, name := range leftOut.order {
		cols = append(cols, leftOut.columns[name])
	}
	for _, name := range rightOut.order {
		cols = append(cols, rightOut.columns[name])
	}
	return New(cols...), nil
}
