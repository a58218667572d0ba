// Package memory provides the token store shared by patch instructions
// within a single run.
//
// Slots are written by earlier instructions and read by later ones. A slot
// must be written before it is read; reading an unset slot is an authoring
// error surfaced as *UnresolvedTokenError. Re-writing a slot is legal and
// replaces the previous value. The store lives exactly as long as one run
// and is never persisted.
package memory

import (
	"errors"
	"fmt"
)

// Namespace distinguishes the two token families: string references
// produced by TLK appends, and row/cell/path values produced by table and
// tree instructions.
type Namespace int

const (
	StrRef Namespace = iota
	TableMemory
)

func (n Namespace) String() string {
	switch n {
	case StrRef:
		return "StrRef"
	case TableMemory:
		return "2DAMEMORY"
	default:
		return "<unknown namespace>"
	}
}

// UnresolvedTokenError reports a read of a slot that no earlier instruction
// wrote. It is always a whole-run abort.
type UnresolvedTokenError struct {
	Namespace Namespace
	Slot      int
}

func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("unresolved token %s%d: slot was never set in this run", e.Namespace, e.Slot)
}

// Is makes errors.Is(err, memory.ErrUnresolved) work for any slot.
func (e *UnresolvedTokenError) Is(target error) bool {
	return target == ErrUnresolved
}

var ErrUnresolved = errors.New("unresolved token")

// Memory is the per-run token store. The zero value is not usable, call New.
type Memory struct {
	strRefs map[int]int32
	tokens  map[int]string
}

func New() *Memory {
	return &Memory{
		strRefs: map[int]int32{},
		tokens:  map[int]string{},
	}
}

// SetStrRef binds a StrRef slot. Last write wins.
func (m *Memory) SetStrRef(slot int, ref int32) {
	m.strRefs[slot] = ref
}

// StrRef reads a StrRef slot.
func (m *Memory) StrRef(slot int) (int32, error) {
	ref, ok := m.strRefs[slot]
	if !ok {
		return 0, &UnresolvedTokenError{Namespace: StrRef, Slot: slot}
	}
	return ref, nil
}

// SetToken binds a 2DAMEMORY slot. Values are strings: row indices and cell
// values store their decimal form, tree path outputs store the path itself.
func (m *Memory) SetToken(slot int, value string) {
	m.tokens[slot] = value
}

// Token reads a 2DAMEMORY slot.
func (m *Memory) Token(slot int) (string, error) {
	v, ok := m.tokens[slot]
	if !ok {
		return "", &UnresolvedTokenError{Namespace: TableMemory, Slot: slot}
	}
	return v, nil
}
