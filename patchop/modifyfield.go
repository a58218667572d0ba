package patchop

import (
	"fmt"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/gff"
)

// TreeOp is one GFF instruction.
type TreeOp interface {
	OpLabel() string
	ApplyTree(ctx *Context, root *gff.Node) (Outcome, error)
}

// FieldRef addresses a field: a literal path, or a 2DAMEMORY slot holding
// a path stored by an earlier AddField. The token form is what makes
// forward references into freshly built subtrees possible.
type FieldRef struct {
	Path string
	Slot int
	Tok  bool
}

func PathRef(path string) FieldRef {
	return FieldRef{Path: path}
}

func TokenRef(slot int) FieldRef {
	return FieldRef{Slot: slot, Tok: true}
}

func (r FieldRef) resolve(ctx *Context) (string, error) {
	if !r.Tok {
		return r.Path, nil
	}
	return ctx.Mem.Token(r.Slot)
}

func (r FieldRef) String() string {
	if r.Tok {
		return fmt.Sprintf("2DAMEMORY%d", r.Slot)
	}
	return r.Path
}

// ModifyField sets the value of one existing field.
//
// For localized strings, Sub selects which part is assigned: the string
// reference itself (Sub unset) or one language/gender substring (Sub set
// to its id, Value resolving to the text). Orientation and position
// fields take all three components pipe-delimited in one assignment.
// Struct and list fields carry no value; addressing one is fatal.
type ModifyField struct {
	Label string
	Field FieldRef
	Value Value
	Sub   *int
}

func (m *ModifyField) OpLabel() string {
	return m.Label
}

func (m *ModifyField) ApplyTree(ctx *Context, root *gff.Node) (Outcome, error) {
	path, err := m.Field.resolve(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("ModifyField %s: %w", m.Label, err)
	}
	node, err := root.WalkPath(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("ModifyField %s: %w", m.Label, err)
	}
	if !node.Type.HasValue() {
		return Outcome{}, fmt.Errorf("ModifyField %s: %s field %q has no settable value",
			m.Label, node.Type, path)
	}
	rc := NewResolution(ctx.Mem)
	v, err := m.Value.Resolve(rc)
	if err != nil {
		return Outcome{}, fmt.Errorf("ModifyField %s: %w", m.Label, err)
	}
	if m.Sub != nil {
		if node.Type != gff.LocStringType {
			return Outcome{}, fmt.Errorf("ModifyField %s: substring directive on %s field %q",
				m.Label, node.Type, path)
		}
		if node.Loc == nil {
			node.Loc = &gff.LocString{}
		}
		node.Loc.SetSub(*m.Sub, v)
	} else if err := node.SetFromString(v); err != nil {
		return Outcome{}, fmt.Errorf("ModifyField %s: %w", m.Label, err)
	}
	if debug.Field() {
		debug.Logf("ModifyField %s: %s = %q\n", m.Label, path, v)
	}
	return applied(), nil
}
