package patchop

import (
	"fmt"
	"strconv"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/gff"
)

// AddField inserts a new field under an existing struct or list.
//
// Lists accept only struct-typed fields, which enter anonymously at the
// end of the list. StructID sets a struct field's type id; with
// IDFromListIndex set instead, a struct appended to a list takes its new
// list position as its id.
//
// If a field with the same label and type already exists at the target,
// the add silently becomes a value modify of the existing field, and
// nested Children still apply into it. This is deliberate compatibility
// behavior, not duplicate detection gone wrong.
//
// ListIndexOut and PathOut expose the insertion to later instructions:
// the new struct's list position, and the new field's full path so that a
// later ModifyField can address it through a token even though the path
// did not exist when the patch was authored.
type AddField struct {
	Label           string
	FieldType       gff.Type
	FieldLabel      string
	Parent          FieldRef
	Value           Value
	Subs            []gff.Substring
	StructID        uint32
	IDFromListIndex bool
	Children        []*AddField
	ListIndexOut    *int
	PathOut         *int
}

func (a *AddField) OpLabel() string {
	return a.Label
}

func (a *AddField) ApplyTree(ctx *Context, root *gff.Node) (Outcome, error) {
	parentPath, err := a.Parent.resolve(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("AddField %s: %w", a.Label, err)
	}
	parent, err := root.WalkPath(parentPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("AddField %s: %w", a.Label, err)
	}
	node, listIndex, err := a.insert(ctx, parent)
	if err != nil {
		return Outcome{}, fmt.Errorf("AddField %s: %w", a.Label, err)
	}
	if a.Value != nil {
		rc := NewResolution(ctx.Mem)
		rc.ListIndex = listIndex
		v, err := a.Value.Resolve(rc)
		if err != nil {
			return Outcome{}, fmt.Errorf("AddField %s: %w", a.Label, err)
		}
		if err := node.SetFromString(v); err != nil {
			return Outcome{}, fmt.Errorf("AddField %s: %w", a.Label, err)
		}
	}
	for _, sub := range a.Subs {
		if node.Type != gff.LocStringType {
			return Outcome{}, fmt.Errorf("AddField %s: substrings on %s field", a.Label, node.Type)
		}
		if node.Loc == nil {
			node.Loc = &gff.LocString{}
		}
		node.Loc.SetSub(sub.ID, sub.Text)
	}
	if a.ListIndexOut != nil {
		if listIndex < 0 {
			return Outcome{}, fmt.Errorf("AddField %s: list index output outside a list insertion", a.Label)
		}
		ctx.Mem.SetToken(*a.ListIndexOut, strconv.Itoa(listIndex))
	}
	if a.PathOut != nil {
		ctx.Mem.SetToken(*a.PathOut, node.Path())
	}
	if debug.Field() {
		debug.Logf("AddField %s: %s (%s)\n", a.Label, node.Path(), node.Type)
	}
	for _, child := range a.Children {
		sub := *child
		sub.Parent = PathRef(node.Path())
		if _, err := sub.ApplyTree(ctx, root); err != nil {
			return Outcome{}, err
		}
	}
	return applied(), nil
}

// insert places the new node under parent, honoring the list-only-structs
// rule and the existing-field collision fallback. It returns the node to
// assign values into and the node's list index (-1 outside lists).
func (a *AddField) insert(ctx *Context, parent *gff.Node) (*gff.Node, int, error) {
	switch parent.Type {
	case gff.ListType:
		if a.FieldType != gff.StructType {
			return nil, 0, fmt.Errorf("cannot insert %s directly under a list", a.FieldType)
		}
		node := gff.NewStruct(a.StructID)
		idx, err := parent.AppendStruct(node)
		if err != nil {
			return nil, 0, err
		}
		if a.IDFromListIndex {
			node.StructID = uint32(idx)
		}
		return node, idx, nil
	case gff.StructType:
		if a.FieldLabel == "" {
			return nil, 0, fmt.Errorf("struct fields require a label")
		}
		if existing := parent.Field(a.FieldLabel); existing != nil {
			if existing.Type != a.FieldType {
				return nil, 0, fmt.Errorf("field %q already exists with type %s, not %s",
					a.FieldLabel, existing.Type, a.FieldType)
			}
			ctx.Log.Verbosef("AddField %s: field %q already present, modifying value instead",
				a.Label, a.FieldLabel)
			return existing, -1, nil
		}
		node := &gff.Node{Type: a.FieldType, Label: a.FieldLabel}
		if a.FieldType == gff.StructType {
			node.StructID = a.StructID
		}
		if err := parent.AddField(node); err != nil {
			return nil, 0, err
		}
		return node, -1, nil
	default:
		return nil, 0, fmt.Errorf("parent %q is a %s, not a struct or list", parent.Path(), parent.Type)
	}
}
