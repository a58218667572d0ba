package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/twoda"
)

// AddColumn appends a column to every row of a 2DA table: the default
// value everywhere, then the per-row overrides. Column names are limited
// to 16 characters by the resource format.
type AddColumn struct {
	Label     string
	Column    string
	Default   Value
	Overrides []ColumnOverride
	Outs      []MemoryOut
}

// ColumnOverride assigns the new column in one selected row.
type ColumnOverride struct {
	Selector RowSelector
	Value    Value
}

func (a *AddColumn) OpLabel() string {
	return a.Label
}

func (a *AddColumn) ApplyTable(ctx *Context, tb *twoda.Table) (Outcome, error) {
	if tb.ColumnIndex(a.Column) != -1 {
		return skipped(fmt.Sprintf("column %q already exists", a.Column)), nil
	}
	for _, o := range a.Outs {
		if o.Column != "" && o.Column != a.Column && tb.ColumnIndex(o.Column) == -1 {
			return skipped(fmt.Sprintf("unknown column %q", o.Column)), nil
		}
	}
	rc := NewResolution(ctx.Mem)
	rc.Table = tb
	rc.Column = a.Column
	def := twoda.Blank
	if a.Default != nil {
		v, err := a.Default.Resolve(rc)
		if err != nil {
			return Outcome{}, fmt.Errorf("AddColumn %s: default: %w", a.Label, err)
		}
		def = v
	}
	if err := tb.AddColumn(a.Column, def); err != nil {
		return Outcome{}, fmt.Errorf("AddColumn %s: %w", a.Label, err)
	}
	var lastRow *twoda.Row
	lastIndex := -1
	for _, ov := range a.Overrides {
		row, err := ov.Selector.Select(tb)
		if err != nil {
			return Outcome{}, fmt.Errorf("AddColumn %s: %w", a.Label, err)
		}
		rc.RowIndex = tb.RowIndex(row)
		rc.Cells = rowCells(tb, row)
		v, err := ov.Value.Resolve(rc)
		if err != nil {
			return Outcome{}, fmt.Errorf("AddColumn %s: %s: %w", a.Label, ov.Selector, err)
		}
		if err := tb.SetCell(row, a.Column, v); err != nil {
			return Outcome{}, err
		}
		lastRow, lastIndex = row, rc.RowIndex
	}
	if lastRow != nil {
		if err := writeOuts(ctx, tb, lastRow, lastIndex, a.Outs); err != nil {
			return Outcome{}, fmt.Errorf("AddColumn %s: %w", a.Label, err)
		}
	}
	return applied(), nil
}
