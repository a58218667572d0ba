package patchop

import (
	"fmt"
	"strconv"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/twoda"
)

// CellAssign assigns one column from a value source. Assignments apply in
// declaration order and each resolved value is visible to later sources in
// the same instruction.
type CellAssign struct {
	Column string
	Value  Value
}

// TableOp is one 2DA instruction.
type TableOp interface {
	OpLabel() string
	ApplyTable(ctx *Context, tb *twoda.Table) (Outcome, error)
}

// unknownColumn returns the first column name an instruction references
// that the table does not have, or "". Checked before mutating so a
// skipped instruction leaves the table untouched.
func unknownColumn(tb *twoda.Table, assigns []CellAssign, outs []MemoryOut, more ...string) string {
	for _, a := range assigns {
		if tb.ColumnIndex(a.Column) == -1 {
			return a.Column
		}
	}
	for _, o := range outs {
		if o.Column != "" && tb.ColumnIndex(o.Column) == -1 {
			return o.Column
		}
	}
	for _, c := range more {
		if c != "" && tb.ColumnIndex(c) == -1 {
			return c
		}
	}
	return ""
}

// assignCells resolves and writes assignments onto a row, skipping the
// exclusive column when its value was already resolved up front.
func assignCells(ctx *Context, tb *twoda.Table, row *twoda.Row, rowIndex int,
	assigns []CellAssign, exclusive string) error {
	rc := NewResolution(ctx.Mem)
	rc.Table = tb
	rc.RowIndex = rowIndex
	rc.Cells = rowCells(tb, row)
	for _, a := range assigns {
		if exclusive != "" && a.Column == exclusive {
			continue
		}
		rc.Column = a.Column
		v, err := a.Value.Resolve(rc)
		if err != nil {
			return fmt.Errorf("column %q: %w", a.Column, err)
		}
		if err := tb.SetCell(row, a.Column, v); err != nil {
			return err
		}
		rc.Cells[a.Column] = v
		if debug.Row() {
			debug.Logf("row %d: %s = %q\n", rowIndex, a.Column, v)
		}
	}
	return nil
}

func rowCells(tb *twoda.Table, row *twoda.Row) map[string]string {
	res := make(map[string]string, len(tb.Columns))
	for i, c := range tb.Columns {
		res[c] = row.Cells[i]
	}
	return res
}

// writeOuts stores the declared memory outputs after a row mutation.
func writeOuts(ctx *Context, tb *twoda.Table, row *twoda.Row, rowIndex int, outs []MemoryOut) error {
	for _, o := range outs {
		if o.Column == "" {
			ctx.Mem.SetToken(o.Slot, strconv.Itoa(rowIndex))
			continue
		}
		v, err := tb.Cell(row, o.Column)
		if err != nil {
			return err
		}
		ctx.Mem.SetToken(o.Slot, v)
	}
	return nil
}

func findAssign(assigns []CellAssign, column string) *CellAssign {
	for i := range assigns {
		if assigns[i].Column == column {
			return &assigns[i]
		}
	}
	return nil
}

// resolveExclusive resolves the would-be value of the exclusive column and
// returns the existing row holding that value, if any.
func resolveExclusive(ctx *Context, tb *twoda.Table, assign *CellAssign,
	exclusive string) (value string, match *twoda.Row, err error) {
	rc := NewResolution(ctx.Mem)
	rc.Table = tb
	rc.Column = exclusive
	rc.RowIndex = len(tb.Rows)
	rc.Cells = map[string]string{}
	v, err := assign.Value.Resolve(rc)
	if err != nil {
		return "", nil, fmt.Errorf("exclusive column %q: %w", exclusive, err)
	}
	row, err := tb.RowByColumnValue(exclusive, v)
	if err != nil {
		return "", nil, err
	}
	return v, row, nil
}
