package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/twoda"
)

// AddRow appends a row to a 2DA table.
//
// With Exclusive set, an existing row whose Exclusive column already holds
// the new row's resolved value redirects the instruction into a modify of
// that row, so re-running the same patch never duplicates rows. RowLabel
// sets the new row's identifying label; when empty the label defaults to
// the new row's index.
type AddRow struct {
	Label     string
	Exclusive string
	RowLabel  string
	Cells     []CellAssign
	Outs      []MemoryOut
}

func (a *AddRow) OpLabel() string {
	return a.Label
}

func (a *AddRow) ApplyTable(ctx *Context, tb *twoda.Table) (Outcome, error) {
	if bad := unknownColumn(tb, a.Cells, a.Outs, a.Exclusive); bad != "" {
		return skipped(fmt.Sprintf("unknown column %q", bad)), nil
	}
	exclusive := a.Exclusive
	var row *twoda.Row
	rowIndex := -1
	if exclusive != "" {
		assign := findAssign(a.Cells, exclusive)
		if assign == nil {
			return skipped(fmt.Sprintf("exclusive column %q has no assigned value", exclusive)), nil
		}
		v, match, err := resolveExclusive(ctx, tb, assign, exclusive)
		if err != nil {
			return Outcome{}, err
		}
		if match != nil {
			row = match
			rowIndex = tb.RowIndex(match)
			ctx.Log.Verbosef("AddRow %s: %s=%q already present, modifying row %d instead",
				a.Label, exclusive, v, rowIndex)
		} else {
			rowIndex, row = tb.AddRow(a.RowLabel)
			if err := tb.SetCell(row, exclusive, v); err != nil {
				return Outcome{}, err
			}
		}
	} else {
		rowIndex, row = tb.AddRow(a.RowLabel)
	}
	if err := assignCells(ctx, tb, row, rowIndex, a.Cells, exclusive); err != nil {
		return Outcome{}, fmt.Errorf("AddRow %s: %w", a.Label, err)
	}
	if err := writeOuts(ctx, tb, row, rowIndex, a.Outs); err != nil {
		return Outcome{}, fmt.Errorf("AddRow %s: %w", a.Label, err)
	}
	return applied(), nil
}
