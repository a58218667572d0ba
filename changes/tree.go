package changes

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/patchop"
)

func parseTreeList(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("GFFList")
	if err != nil {
		return nil
	}
	return listed(sec, func(prefix, value string) error {
		res, err := section(f, value)
		if err != nil {
			return err
		}
		tp := &install.TreePatch{
			Name:    value,
			Dest:    install.InFolder(install.Override),
			Replace: prefix == "Replace" || boolKey(res, keyReplaceFile),
		}
		if res.HasKey(keyDestination) {
			tp.Dest = parseDest(res.Key(keyDestination).String())
		}
		for _, k := range res.Keys() {
			name := k.Name()
			switch {
			case strings.HasPrefix(name, "!"):
			case isAddFieldKey(name):
				instr, err := section(f, k.String())
				if err != nil {
					return err
				}
				op, err := parseAddField(f, k.String(), instr)
				if err != nil {
					return fmt.Errorf("changes: [%s] %s: %w", value, k.String(), err)
				}
				tp.Ops = append(tp.Ops, op)
			default:
				op, err := parseModifyField(name, k.String())
				if err != nil {
					return fmt.Errorf("changes: [%s]: %w", value, err)
				}
				tp.Ops = append(tp.Ops, op)
			}
		}
		p.Trees = append(p.Trees, tp)
		return nil
	}, "File", "Replace")
}

func isAddFieldKey(name string) bool {
	rest, ok := strings.CutPrefix(name, "AddField")
	if !ok {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}

// parseModifyField reads one direct path=value assignment. The key is the
// field's path, or a 2DAMEMORY<n> token holding a path stored by an
// earlier insertion. A (id) suffix selects one localized substring
// instead of the field value.
func parseModifyField(name, value string) (patchop.TreeOp, error) {
	op := &patchop.ModifyField{Label: name, Value: parseValue(value)}
	path := name
	if open := strings.LastIndex(path, "("); open != -1 && strings.HasSuffix(path, ")") {
		id, err := strconv.Atoi(path[open+1 : len(path)-1])
		if err != nil {
			return nil, fmt.Errorf("bad substring id in %q", name)
		}
		op.Sub = &id
		path = path[:open]
	}
	if slot, ok := tokenSlot(path, "2DAMEMORY"); ok {
		op.Field = patchop.TokenRef(slot)
	} else {
		op.Field = patchop.PathRef(path)
	}
	return op, nil
}

func parseAddField(f *ini.File, label string, sec *ini.Section) (*patchop.AddField, error) {
	op := &patchop.AddField{Label: label}
	typeName := sec.Key("FieldType").String()
	if typeName == "" {
		return nil, fmt.Errorf("AddField requires FieldType")
	}
	t, err := gff.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	op.FieldType = t
	op.FieldLabel = sec.Key("Label").String()

	parent := sec.Key("Path").String()
	if slot, ok := tokenSlot(parent, "2DAMEMORY"); ok {
		op.Parent = patchop.TokenRef(slot)
	} else {
		op.Parent = patchop.PathRef(parent)
	}

	if sec.HasKey("Value") {
		op.Value = parseValue(sec.Key("Value").String())
	}
	if sec.HasKey("StructId") {
		raw := sec.Key("StructId").String()
		if raw == "ListIndex" {
			op.IDFromListIndex = true
		} else {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("StructId: %w", err)
			}
			op.StructID = uint32(id)
		}
	}
	for _, k := range sec.Keys() {
		name := k.Name()
		switch {
		case strings.HasPrefix(name, "lang"):
			id, err := strconv.Atoi(name[len("lang"):])
			if err != nil {
				return nil, fmt.Errorf("bad substring key %q", name)
			}
			op.Subs = append(op.Subs, gff.Substring{ID: id, Text: k.String()})
		case strings.HasPrefix(name, "2DAMEMORY"):
			slot, ok := tokenSlot(name, "2DAMEMORY")
			if !ok {
				return nil, fmt.Errorf("bad memory slot key %q", name)
			}
			s := slot
			switch k.String() {
			case "ListIndex":
				op.ListIndexOut = &s
			case keyFieldPath:
				op.PathOut = &s
			default:
				return nil, fmt.Errorf("memory key %s must be ListIndex or %s", name, keyFieldPath)
			}
		case isAddFieldKey(name):
			instr, err := section(f, k.String())
			if err != nil {
				return nil, err
			}
			child, err := parseAddField(f, k.String(), instr)
			if err != nil {
				return nil, err
			}
			op.Children = append(op.Children, child)
		}
	}
	return op, nil
}
