package patchop

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/memory"
	"github.com/kotormods/kpatch/twoda"
)

// Value is a value source, resolved left to right at apply time. A
// resolved value is visible to later sources in the same instruction.
type Value interface {
	Resolve(rc *Resolution) (string, error)
	String() string
}

// Resolution is the environment a Value resolves against. Table, Column,
// RowIndex and ListIndex are set only where the enclosing instruction
// provides them.
type Resolution struct {
	Mem       *memory.Memory
	Table     *twoda.Table
	Column    string
	RowIndex  int
	ListIndex int
	Cells     map[string]string
}

func NewResolution(mem *memory.Memory) *Resolution {
	return &Resolution{Mem: mem, RowIndex: -1, ListIndex: -1}
}

// Literal resolves to itself.
type Literal string

func (v Literal) Resolve(*Resolution) (string, error) {
	return string(v), nil
}

func (v Literal) String() string {
	return strconv.Quote(string(v))
}

// StrRefToken resolves to the string reference stored in a StrRef slot.
type StrRefToken int

func (v StrRefToken) Resolve(rc *Resolution) (string, error) {
	ref, err := rc.Mem.StrRef(int(v))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(ref), 10), nil
}

func (v StrRefToken) String() string {
	return fmt.Sprintf("StrRef%d", int(v))
}

// TableToken resolves to the value stored in a 2DAMEMORY slot.
type TableToken int

func (v TableToken) Resolve(rc *Resolution) (string, error) {
	return rc.Mem.Token(int(v))
}

func (v TableToken) String() string {
	return fmt.Sprintf("2DAMEMORY%d", int(v))
}

// High resolves to the named column's high-water mark: one past its
// maximum numeric value, 0 when the column holds no numbers. An empty
// column name means the column currently being assigned.
type High string

func (v High) Resolve(rc *Resolution) (string, error) {
	if rc.Table == nil {
		return "", fmt.Errorf("high() used outside a table instruction")
	}
	column := string(v)
	if column == "" {
		column = rc.Column
	}
	hw, err := rc.Table.HighWaterMark(column)
	if err != nil {
		return "", err
	}
	if debug.Value() {
		debug.Logf("high(%s) -> %d\n", column, hw)
	}
	return strconv.FormatInt(hw, 10), nil
}

func (v High) String() string {
	return fmt.Sprintf("high(%s)", string(v))
}

// RowIndex resolves to the index of the row the instruction is producing.
type RowIndex struct{}

func (RowIndex) Resolve(rc *Resolution) (string, error) {
	if rc.RowIndex < 0 {
		return "", fmt.Errorf("RowIndex used outside a row instruction")
	}
	return strconv.Itoa(rc.RowIndex), nil
}

func (RowIndex) String() string {
	return "RowIndex"
}

// ListIndex resolves to the list position of the struct being produced.
type ListIndex struct{}

func (ListIndex) Resolve(rc *Resolution) (string, error) {
	if rc.ListIndex < 0 {
		return "", fmt.Errorf("ListIndex used outside a list insertion")
	}
	return strconv.Itoa(rc.ListIndex), nil
}

func (ListIndex) String() string {
	return "ListIndex"
}

// Expr is a computed value source. The expression sees the cells resolved
// so far as `cells`, the produced row index as `row`, and the token
// namespaces as the functions strref(slot) and token(slot).
type Expr string

func (v Expr) Resolve(rc *Resolution) (string, error) {
	env := map[string]any{
		"cells": rc.Cells,
		"row":   rc.RowIndex,
		"strref": func(slot int) (int, error) {
			ref, err := rc.Mem.StrRef(slot)
			return int(ref), err
		},
		"token": func(slot int) (string, error) {
			return rc.Mem.Token(slot)
		},
	}
	prog, err := expr.Compile(string(v))
	if err != nil {
		return "", fmt.Errorf("expr %q: %w", string(v), err)
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return "", fmt.Errorf("expr %q: %w", string(v), err)
	}
	switch x := out.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("expr %q: unsupported result type %T", string(v), out)
	}
}

func (v Expr) String() string {
	return fmt.Sprintf("expr(%s)", string(v))
}
