// SPDX-License-Identifier: Apache-2.0

// Package table implements a small in-memory rectangular table of strings
// with the relational operations the id conversion engine relies on. The
// empty string is the missing value. All operations return a new table,
// the receiver is never modified.
package table

import (
	"strings"
)

type Table struct {
	columns []string
	rows    [][]string
}

type JoinHow int

const (
	JoinLeft JoinHow = iota
	JoinInner
	JoinOuter
)

// rowKeySep separates cells when a row is used as a map key. It cannot
// appear in CSV cell data coming from encoding/csv.
const rowKeySep = "\x1f"

func New(columns []string, rows ...[]string) Table {
	t := Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.rows = append(t.rows, append([]string(nil), row...))
	}
	return t
}

func (t Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t Table) NumRows() int {
	return len(t.rows)
}

// Rows returns a copy of the table data, in row order.
func (t Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, append([]string(nil), row...))
	}
	return rows
}

func (t Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

func (t Table) columnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, in row order.
func (t Table) Column(name string) ([]string, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return nil, &ColumnError{Column: name, Available: t.Columns()}
	}
	values := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		values = append(values, row[idx])
	}
	return values, nil
}

// Select returns a table restricted to the named columns, in the order
// given.
func (t Table) Select(names ...string) (Table, error) {
	indexes := make([]int, 0, len(names))
	for _, name := range names {
		idx := t.columnIndex(name)
		if idx < 0 {
			return Table{}, &ColumnError{Column: name, Available: t.Columns()}
		}
		indexes = append(indexes, idx)
	}

	out := Table{
		columns: append([]string(nil), names...),
		rows:    make([][]string, 0, len(t.rows)),
	}
	for _, row := range t.rows {
		newRow := make([]string, 0, len(indexes))
		for _, idx := range indexes {
			newRow = append(newRow, row[idx])
		}
		out.rows = append(out.rows, newRow)
	}
	return out, nil
}

// Rename renames a single column, leaving the data untouched.
func (t Table) Rename(oldName, newName string) (Table, error) {
	idx := t.columnIndex(oldName)
	if idx < 0 {
		return Table{}, &ColumnError{Column: oldName, Available: t.Columns()}
	}
	out := Table{
		columns: append([]string(nil), t.columns...),
		rows:    t.rows,
	}
	out.columns[idx] = newName
	return out, nil
}

// Drop removes the named column.
func (t Table) Drop(name string) (Table, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return Table{}, &ColumnError{Column: name, Available: t.Columns()}
	}
	out := Table{
		columns: make([]string, 0, len(t.columns)-1),
		rows:    make([][]string, 0, len(t.rows)),
	}
	out.columns = append(out.columns, t.columns[:idx]...)
	out.columns = append(out.columns, t.columns[idx+1:]...)
	for _, row := range t.rows {
		newRow := make([]string, 0, len(row)-1)
		newRow = append(newRow, row[:idx]...)
		newRow = append(newRow, row[idx+1:]...)
		out.rows = append(out.rows, newRow)
	}
	return out, nil
}

// DropMissing removes the rows where the named column holds the missing
// value.
func (t Table) DropMissing(name string) (Table, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return Table{}, &ColumnError{Column: name, Available: t.Columns()}
	}
	out := Table{
		columns: append([]string(nil), t.columns...),
		rows:    make([][]string, 0, len(t.rows)),
	}
	for _, row := range t.rows {
		if row[idx] == "" {
			continue
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// Dedupe removes exact duplicate rows, keeping the first occurrence.
// Dedupe is idempotent.
func (t Table) Dedupe() Table {
	out := Table{
		columns: append([]string(nil), t.columns...),
		rows:    make([][]string, 0, len(t.rows)),
	}
	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		key := strings.Join(row, rowKeySep)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.rows = append(out.rows, row)
	}
	return out
}

// Coalesce fills missing values of dst with the value of src on the same
// row. Present dst values are never overwritten.
func (t Table) Coalesce(dst, src string) (Table, error) {
	dstIdx := t.columnIndex(dst)
	if dstIdx < 0 {
		return Table{}, &ColumnError{Column: dst, Available: t.Columns()}
	}
	srcIdx := t.columnIndex(src)
	if srcIdx < 0 {
		return Table{}, &ColumnError{Column: src, Available: t.Columns()}
	}
	out := Table{
		columns: append([]string(nil), t.columns...),
		rows:    make([][]string, 0, len(t.rows)),
	}
	for _, row := range t.rows {
		if row[dstIdx] == "" && row[srcIdx] != "" {
			row = append([]string(nil), row...)
			row[dstIdx] = row[srcIdx]
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// Derive appends a new column computed from an existing one. Missing
// source values stay missing.
func (t Table) Derive(name, from string, fn func(string) string) (Table, error) {
	fromIdx := t.columnIndex(from)
	if fromIdx < 0 {
		return Table{}, &ColumnError{Column: from, Available: t.Columns()}
	}
	out := Table{
		columns: append(append([]string(nil), t.columns...), name),
		rows:    make([][]string, 0, len(t.rows)),
	}
	for _, row := range t.rows {
		value := ""
		if row[fromIdx] != "" {
			value = fn(row[fromIdx])
		}
		out.rows = append(out.rows, append(append([]string(nil), row...), value))
	}
	return out, nil
}

// Join joins t with other on the shared key column. The result holds t's
// columns followed by other's columns minus the key, in their original
// order. A row whose key matches several rows of other fans out to one
// result row per match. Missing keys never match, mirroring NA join
// semantics.
//
// JoinLeft keeps unmatched rows of t with missing values in the joined-in
// columns, JoinInner drops them, and JoinOuter additionally appends the
// unmatched rows of other with missing values in t's columns.
func (t Table) Join(other Table, on string, how JoinHow) (Table, error) {
	leftIdx := t.columnIndex(on)
	if leftIdx < 0 {
		return Table{}, &ColumnError{Column: on, Available: t.Columns()}
	}
	rightIdx := other.columnIndex(on)
	if rightIdx < 0 {
		return Table{}, &ColumnError{Column: on, Available: other.Columns()}
	}

	out := Table{
		columns: append([]string(nil), t.columns...),
	}
	for i, c := range other.columns {
		if i == rightIdx {
			continue
		}
		out.columns = append(out.columns, c)
	}

	rightByKey := make(map[string][][]string, len(other.rows))
	for _, row := range other.rows {
		key := row[rightIdx]
		if key == "" {
			continue
		}
		rightByKey[key] = append(rightByKey[key], row)
	}

	matched := make(map[string]struct{}, len(rightByKey))
	for _, row := range t.rows {
		key := row[leftIdx]
		matches := rightByKey[key]
		if key != "" {
			matched[key] = struct{}{}
		}
		if len(matches) == 0 {
			if how == JoinInner {
				continue
			}
			newRow := append([]string(nil), row...)
			for i := 0; i < len(other.columns)-1; i++ {
				newRow = append(newRow, "")
			}
			out.rows = append(out.rows, newRow)
			continue
		}
		for _, match := range matches {
			newRow := make([]string, 0, len(out.columns))
			newRow = append(newRow, row...)
			for i, cell := range match {
				if i == rightIdx {
					continue
				}
				newRow = append(newRow, cell)
			}
			out.rows = append(out.rows, newRow)
		}
	}

	if how == JoinOuter {
		for _, row := range other.rows {
			key := row[rightIdx]
			if key == "" {
				continue
			}
			if _, ok := matched[key]; ok {
				continue
			}
			newRow := make([]string, len(t.columns))
			newRow[leftIdx] = key
			for i, cell := range row {
				if i == rightIdx {
					continue
				}
				newRow = append(newRow, cell)
			}
			out.rows = append(out.rows, newRow)
		}
	}

	return out, nil
}

// Equal reports whether two tables hold the same columns and rows in the
// same order.
func (t Table) Equal(other Table) bool {
	if len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, c := range t.columns {
		if other.columns[i] != c {
			return false
		}
	}
	for i, row := range t.rows {
		for j, cell := range row {
			if other.rows[i][j] != cell {
				return false
			}
		}
	}
	return true
}
