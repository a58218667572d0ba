package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/twoda"
)

// ModifyRow assigns the listed columns of exactly one existing row,
// leaving every other cell untouched. A selector that matches no row is a
// fatal error.
type ModifyRow struct {
	Label    string
	Selector RowSelector
	Cells    []CellAssign
	Outs     []MemoryOut
}

func (m *ModifyRow) OpLabel() string {
	return m.Label
}

func (m *ModifyRow) ApplyTable(ctx *Context, tb *twoda.Table) (Outcome, error) {
	row, err := m.Selector.Select(tb)
	if err != nil {
		return Outcome{}, fmt.Errorf("ModifyRow %s: %w", m.Label, err)
	}
	if bad := unknownColumn(tb, m.Cells, m.Outs); bad != "" {
		return skipped(fmt.Sprintf("unknown column %q", bad)), nil
	}
	rowIndex := tb.RowIndex(row)
	if err := assignCells(ctx, tb, row, rowIndex, m.Cells, ""); err != nil {
		return Outcome{}, fmt.Errorf("ModifyRow %s: %w", m.Label, err)
	}
	if err := writeOuts(ctx, tb, row, rowIndex, m.Outs); err != nil {
		return Outcome{}, fmt.Errorf("ModifyRow %s: %w", m.Label, err)
	}
	return applied(), nil
}
