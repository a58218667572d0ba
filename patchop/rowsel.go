package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/twoda"
)

// RowSelector picks exactly one existing row. Selecting zero rows is an
// error; callers treat it as fatal because a missing row means the patch
// and the target table disagree.
type RowSelector interface {
	Select(tb *twoda.Table) (*twoda.Row, error)
	String() string
}

// ByIndex selects the row at a 0-based index.
type ByIndex int

func (s ByIndex) Select(tb *twoda.Table) (*twoda.Row, error) {
	if int(s) < 0 || int(s) >= len(tb.Rows) {
		return nil, fmt.Errorf("row index %d out of range (table has %d rows)", int(s), len(tb.Rows))
	}
	return tb.Rows[int(s)], nil
}

func (s ByIndex) String() string {
	return fmt.Sprintf("RowIndex=%d", int(s))
}

// ByLabel selects the first row with the given row label.
type ByLabel string

func (s ByLabel) Select(tb *twoda.Table) (*twoda.Row, error) {
	row := tb.RowByLabel(string(s))
	if row == nil {
		return nil, fmt.Errorf("no row labeled %q", string(s))
	}
	return row, nil
}

func (s ByLabel) String() string {
	return fmt.Sprintf("RowLabel=%q", string(s))
}

// ByColumnValue selects the first row whose named column equals Value
// ("LabelIndex" semantics).
type ByColumnValue struct {
	Column string
	Value  string
}

func (s ByColumnValue) Select(tb *twoda.Table) (*twoda.Row, error) {
	row, err := tb.RowByColumnValue(s.Column, s.Value)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("no row with %s=%q", s.Column, s.Value)
	}
	return row, nil
}

func (s ByColumnValue) String() string {
	return fmt.Sprintf("%s=%q", s.Column, s.Value)
}
