// Package twoda provides the in-memory representation for 2DA table
// resources: an ordered set of named columns and rows of string cells, each
// row carrying an identifying label. Binary encoding is outside this
// package; the engine receives decoded tables from its resource store.
package twoda

import (
	"fmt"
	"strconv"
)

// Blank is the placeholder written into cells no instruction assigned.
const Blank = "****"

// MaxColumnName is the longest permitted column name.
const MaxColumnName = 16

type Table struct {
	Columns []string
	Rows    []*Row
}

type Row struct {
	Label string
	Cells []string
}

func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// ColumnIndex returns the position of a named column, or -1.
func (tb *Table) ColumnIndex(name string) int {
	for i, c := range tb.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of a named column in a row.
func (tb *Table) Cell(row *Row, column string) (string, error) {
	i := tb.ColumnIndex(column)
	if i == -1 {
		return "", fmt.Errorf("no column %q", column)
	}
	return row.Cells[i], nil
}

// SetCell assigns a named column in a row.
func (tb *Table) SetCell(row *Row, column, value string) error {
	i := tb.ColumnIndex(column)
	if i == -1 {
		return fmt.Errorf("no column %q", column)
	}
	row.Cells[i] = value
	return nil
}

// AddRow appends a blank row with the given label and returns its index.
// An empty label defaults to the new row's index.
func (tb *Table) AddRow(label string) (int, *Row) {
	idx := len(tb.Rows)
	if label == "" {
		label = strconv.Itoa(idx)
	}
	row := &Row{Label: label, Cells: make([]string, len(tb.Columns))}
	for i := range row.Cells {
		row.Cells[i] = Blank
	}
	tb.Rows = append(tb.Rows, row)
	return idx, row
}

// AddColumn appends a column with the given default in every existing row.
func (tb *Table) AddColumn(name, def string) error {
	if name == "" {
		return fmt.Errorf("column name required")
	}
	if len(name) > MaxColumnName {
		return fmt.Errorf("column name %q exceeds %d characters", name, MaxColumnName)
	}
	if tb.ColumnIndex(name) != -1 {
		return fmt.Errorf("column %q already exists", name)
	}
	tb.Columns = append(tb.Columns, name)
	for _, row := range tb.Rows {
		row.Cells = append(row.Cells, def)
	}
	return nil
}

// RowIndex returns the position of a row, or -1.
func (tb *Table) RowIndex(row *Row) int {
	for i, r := range tb.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// RowByLabel returns the first row with the given label, or nil.
func (tb *Table) RowByLabel(label string) *Row {
	for _, row := range tb.Rows {
		if row.Label == label {
			return row
		}
	}
	return nil
}

// RowByColumnValue returns the first row whose named column equals value,
// or nil. The column must exist.
func (tb *Table) RowByColumnValue(column, value string) (*Row, error) {
	i := tb.ColumnIndex(column)
	if i == -1 {
		return nil, fmt.Errorf("no column %q", column)
	}
	for _, row := range tb.Rows {
		if row.Cells[i] == value {
			return row, nil
		}
	}
	return nil, nil
}

// HighWaterMark returns one past the maximum numeric value in a column,
// scanning every current row. Cells that do not parse as integers are
// skipped. A column with no numeric values resolves to 0.
func (tb *Table) HighWaterMark(column string) (int64, error) {
	i := tb.ColumnIndex(column)
	if i == -1 {
		return 0, fmt.Errorf("no column %q", column)
	}
	var max int64
	found := false
	for _, row := range tb.Rows {
		v, err := strconv.ParseInt(row.Cells[i], 10, 64)
		if err != nil {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	if !found {
		return 0, nil
	}
	return max + 1, nil
}

func (tb *Table) Clone() *Table {
	res := &Table{Columns: append([]string(nil), tb.Columns...)}
	res.Rows = make([]*Row, len(tb.Rows))
	for i, row := range tb.Rows {
		res.Rows[i] = &Row{
			Label: row.Label,
			Cells: append([]string(nil), row.Cells...),
		}
	}
	return res
}
