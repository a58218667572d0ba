package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/twoda"
)

// CopyRow duplicates an existing row and applies the override assignments
// on top. The exclusive-column check works as in AddRow but against the
// post-override values: the exclusive value is the override when present,
// the source row's cell otherwise.
type CopyRow struct {
	Label     string
	Selector  RowSelector
	Exclusive string
	RowLabel  string
	Cells     []CellAssign
	Outs      []MemoryOut
}

func (c *CopyRow) OpLabel() string {
	return c.Label
}

func (c *CopyRow) ApplyTable(ctx *Context, tb *twoda.Table) (Outcome, error) {
	src, err := c.Selector.Select(tb)
	if err != nil {
		return Outcome{}, fmt.Errorf("CopyRow %s: %w", c.Label, err)
	}
	if bad := unknownColumn(tb, c.Cells, c.Outs, c.Exclusive); bad != "" {
		return skipped(fmt.Sprintf("unknown column %q", bad)), nil
	}
	exclusive := c.Exclusive
	var row *twoda.Row
	rowIndex := -1
	if exclusive != "" {
		v, match, err := c.exclusiveValue(ctx, tb, src)
		if err != nil {
			return Outcome{}, fmt.Errorf("CopyRow %s: %w", c.Label, err)
		}
		if match != nil {
			row = match
			rowIndex = tb.RowIndex(match)
			ctx.Log.Verbosef("CopyRow %s: %s=%q already present, modifying row %d instead",
				c.Label, exclusive, v, rowIndex)
		} else {
			rowIndex, row = c.appendCopy(tb, src)
			if err := tb.SetCell(row, exclusive, v); err != nil {
				return Outcome{}, err
			}
		}
	} else {
		rowIndex, row = c.appendCopy(tb, src)
	}
	if err := assignCells(ctx, tb, row, rowIndex, c.Cells, exclusive); err != nil {
		return Outcome{}, fmt.Errorf("CopyRow %s: %w", c.Label, err)
	}
	if err := writeOuts(ctx, tb, row, rowIndex, c.Outs); err != nil {
		return Outcome{}, fmt.Errorf("CopyRow %s: %w", c.Label, err)
	}
	return applied(), nil
}

// exclusiveValue computes the post-override value of the exclusive column
// and the existing row already holding it, if any.
func (c *CopyRow) exclusiveValue(ctx *Context, tb *twoda.Table, src *twoda.Row) (string, *twoda.Row, error) {
	if assign := findAssign(c.Cells, c.Exclusive); assign != nil {
		return resolveExclusive(ctx, tb, assign, c.Exclusive)
	}
	v, err := tb.Cell(src, c.Exclusive)
	if err != nil {
		return "", nil, err
	}
	match, err := tb.RowByColumnValue(c.Exclusive, v)
	if err != nil {
		return "", nil, err
	}
	return v, match, nil
}

func (c *CopyRow) appendCopy(tb *twoda.Table, src *twoda.Row) (int, *twoda.Row) {
	idx, row := tb.AddRow(c.RowLabel)
	copy(row.Cells, src.Cells)
	return idx, row
}
