package changes

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/patchop"
)

func parseTableList(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("2DAList")
	if err != nil {
		return nil
	}
	return listed(sec, func(prefix, value string) error {
		res, err := section(f, value)
		if err != nil {
			return err
		}
		tp := &install.TablePatch{
			Name:    value,
			Dest:    install.InFolder(install.Override),
			Replace: prefix == "Replace" || boolKey(res, keyReplaceFile),
		}
		if res.HasKey(keyDestination) {
			tp.Dest = parseDest(res.Key(keyDestination).String())
		}
		err = listed(res, func(kind, name string) error {
			instr, err := section(f, name)
			if err != nil {
				return err
			}
			op, err := parseTableOp(kind, name, instr)
			if err != nil {
				return fmt.Errorf("changes: [%s] %s: %w", value, name, err)
			}
			tp.Ops = append(tp.Ops, op)
			return nil
		}, "AddRow", "ChangeRow", "CopyRow", "AddColumn")
		if err != nil {
			return err
		}
		p.Tables = append(p.Tables, tp)
		return nil
	}, "Table", "Replace")
}

func parseTableOp(kind, label string, sec *ini.Section) (patchop.TableOp, error) {
	switch kind {
	case "AddRow":
		return parseAddRow(label, sec)
	case "ChangeRow":
		return parseChangeRow(label, sec)
	case "CopyRow":
		return parseCopyRow(label, sec)
	case "AddColumn":
		return parseAddColumn(label, sec)
	}
	return nil, fmt.Errorf("unrecognized instruction kind %q", kind)
}

func parseAddRow(label string, sec *ini.Section) (patchop.TableOp, error) {
	op := &patchop.AddRow{
		Label:     label,
		Exclusive: sec.Key("ExclusiveColumn").String(),
		RowLabel:  sec.Key("RowLabel").String(),
	}
	var err error
	op.Cells, op.Outs, err = parseCells(sec, "ExclusiveColumn", "RowLabel")
	return op, err
}

func parseChangeRow(label string, sec *ini.Section) (patchop.TableOp, error) {
	selector, err := parseSelector(sec)
	if err != nil {
		return nil, err
	}
	op := &patchop.ModifyRow{Label: label, Selector: selector}
	op.Cells, op.Outs, err = parseCells(sec, "RowIndex", "RowLabel", "LabelIndex")
	return op, err
}

func parseCopyRow(label string, sec *ini.Section) (patchop.TableOp, error) {
	selector, err := parseSelector(sec)
	if err != nil {
		return nil, err
	}
	op := &patchop.CopyRow{
		Label:     label,
		Selector:  selector,
		Exclusive: sec.Key("ExclusiveColumn").String(),
		RowLabel:  sec.Key("NewRowLabel").String(),
	}
	op.Cells, op.Outs, err = parseCells(sec,
		"RowIndex", "RowLabel", "LabelIndex", "ExclusiveColumn", "NewRowLabel")
	return op, err
}

// parseAddColumn reads ColumnLabel and DefaultValue, then the per-row
// overrides: I<index>=value addresses a row by index, L<label>=value by
// row label.
func parseAddColumn(label string, sec *ini.Section) (patchop.TableOp, error) {
	op := &patchop.AddColumn{
		Label:  label,
		Column: sec.Key("ColumnLabel").String(),
	}
	if op.Column == "" {
		return nil, fmt.Errorf("AddColumn requires ColumnLabel")
	}
	if sec.HasKey("DefaultValue") {
		op.Default = parseValue(sec.Key("DefaultValue").String())
	}
	for _, k := range sec.Keys() {
		name := k.Name()
		switch {
		case name == "ColumnLabel" || name == "DefaultValue":
		case strings.HasPrefix(name, "2DAMEMORY"):
			out, err := parseOut(name, k.String())
			if err != nil {
				return nil, err
			}
			op.Outs = append(op.Outs, out)
		case strings.HasPrefix(name, "I"):
			idx, err := strconv.Atoi(name[1:])
			if err != nil {
				return nil, fmt.Errorf("bad row index key %q", name)
			}
			op.Overrides = append(op.Overrides, patchop.ColumnOverride{
				Selector: patchop.ByIndex(idx),
				Value:    parseValue(k.String()),
			})
		case strings.HasPrefix(name, "L"):
			op.Overrides = append(op.Overrides, patchop.ColumnOverride{
				Selector: patchop.ByLabel(name[1:]),
				Value:    parseValue(k.String()),
			})
		default:
			return nil, fmt.Errorf("unrecognized AddColumn key %q", name)
		}
	}
	return op, nil
}

// parseSelector reads the row selector of a ChangeRow or CopyRow: exactly
// one of RowIndex, RowLabel, or LabelIndex.
func parseSelector(sec *ini.Section) (patchop.RowSelector, error) {
	var sel patchop.RowSelector
	set := func(s patchop.RowSelector) error {
		if sel != nil {
			return fmt.Errorf("multiple row selectors")
		}
		sel = s
		return nil
	}
	if sec.HasKey("RowIndex") {
		idx, err := sec.Key("RowIndex").Int()
		if err != nil {
			return nil, fmt.Errorf("RowIndex: %w", err)
		}
		if err := set(patchop.ByIndex(idx)); err != nil {
			return nil, err
		}
	}
	if sec.HasKey("RowLabel") {
		if err := set(patchop.ByLabel(sec.Key("RowLabel").String())); err != nil {
			return nil, err
		}
	}
	if sec.HasKey("LabelIndex") {
		if err := set(patchop.ByColumnValue{Column: "label", Value: sec.Key("LabelIndex").String()}); err != nil {
			return nil, err
		}
	}
	if sel == nil {
		return nil, fmt.Errorf("no row selector (RowIndex, RowLabel, or LabelIndex)")
	}
	return sel, nil
}

// parseCells reads the column assignments and memory writes of a row
// instruction, preserving declaration order. Reserved names the enclosing
// instruction consumed are skipped.
func parseCells(sec *ini.Section, reserved ...string) ([]patchop.CellAssign, []patchop.MemoryOut, error) {
	var cells []patchop.CellAssign
	var outs []patchop.MemoryOut
	skip := map[string]bool{}
	for _, r := range reserved {
		skip[r] = true
	}
	for _, k := range sec.Keys() {
		name := k.Name()
		if skip[name] {
			continue
		}
		if strings.HasPrefix(name, "2DAMEMORY") {
			out, err := parseOut(name, k.String())
			if err != nil {
				return nil, nil, err
			}
			outs = append(outs, out)
			continue
		}
		cells = append(cells, patchop.CellAssign{
			Column: name,
			Value:  parseValue(k.String()),
		})
	}
	return cells, outs, nil
}
