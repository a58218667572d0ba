package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/tlk"
)

// StringsOp is one TLK instruction.
type StringsOp interface {
	OpLabel() string
	ApplyStrings(ctx *Context, target *tlk.Table) (Outcome, error)
}

// AppendStrings appends entries from a patch-local auxiliary string table
// to the target's master table, binding each resulting string reference to
// a StrRef token slot. Entries are only ever appended, never inserted or
// reordered.
//
// AuxF, when present, is the feminine-variant table and must have exactly
// as many entries as Aux; the mismatch is checked before any append.
type AppendStrings struct {
	Label   string
	Aux     *tlk.Table
	AuxF    *tlk.Table
	Entries []StringRef
}

// StringRef binds one auxiliary entry to a token slot: the entry at
// AuxIndex is appended and its new string reference stored in StrRef slot
// Slot. By convention the slot number is the entry's auxiliary position.
type StringRef struct {
	Slot     int
	AuxIndex int
}

func (a *AppendStrings) OpLabel() string {
	return a.Label
}

func (a *AppendStrings) ApplyStrings(ctx *Context, target *tlk.Table) (Outcome, error) {
	if a.Aux == nil {
		return Outcome{}, fmt.Errorf("AppendStrings %s: no auxiliary table", a.Label)
	}
	if a.AuxF != nil && a.AuxF.Len() != a.Aux.Len() {
		return Outcome{}, fmt.Errorf("AppendStrings %s: feminine table has %d entries, primary has %d",
			a.Label, a.AuxF.Len(), a.Aux.Len())
	}
	for _, e := range a.Entries {
		if e.AuxIndex < 0 || e.AuxIndex >= a.Aux.Len() {
			return Outcome{}, fmt.Errorf("AppendStrings %s: entry %d out of range (auxiliary table has %d)",
				a.Label, e.AuxIndex, a.Aux.Len())
		}
		entry := a.Aux.Entries[e.AuxIndex]
		if a.AuxF != nil {
			entry.Feminine = a.AuxF.Entries[e.AuxIndex].Text
		}
		ref := target.Append(entry)
		ctx.Mem.SetStrRef(e.Slot, ref)
		ctx.Log.Verbosef("AppendStrings %s: StrRef%d = %d", a.Label, e.Slot, ref)
	}
	return applied(), nil
}
