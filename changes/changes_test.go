package changes

import (
	"context"
	"testing"

	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/patchlog"
	"github.com/kotormods/kpatch/patchop"
	"github.com/kotormods/kpatch/ssf"
	"github.com/kotormods/kpatch/tlk"
	"github.com/kotormods/kpatch/twoda"
)

const fixture = `
[Settings]
WindowCaption=Test Mod
LogLevel=4

[TLKList]
StrRef0=0
StrRef1=1

[InstallList]
install_folder0=Override
install_folder1=Modules\danm13.mod

[install_folder0]
File0=extra.tga
Replace0=icon.tga

[install_folder1]
File0=module.are

[2DAList]
Table0=appearance.2da

[appearance.2da]
AddRow0=appearance_add
ChangeRow0=appearance_fix

[appearance_add]
ExclusiveColumn=label
label=npc_new
race=high()
2DAMEMORY1=RowIndex

[appearance_fix]
LabelIndex=npc_new
modela=P_FEM

[GFFList]
File0=npc.utc

[npc.utc]
Appearance_Type=2DAMEMORY1
FirstName=StrRef0
FirstName(0)=Atton
AddField0=npc_class

[npc_class]
FieldType=Struct
Path=ClassList
StructId=ListIndex
2DAMEMORY2=!FieldPath
AddField0=npc_class_level

[npc_class_level]
FieldType=Short
Label=ClassLevel
Value=3

[CompileList]
File0=k_script.nss

[SSFList]
File0=npc.ssf

[npc.ssf]
Battlecry 1=StrRef0
`

func parseFixture(t *testing.T) *install.Patch {
	t.Helper()
	aux := tlk.New()
	aux.Append(tlk.Entry{Text: "Hello"})
	aux.Append(tlk.Entry{Text: "World"})
	p, err := Parse([]byte(fixture), Options{Aux: aux})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseSettings(t *testing.T) {
	p := parseFixture(t)
	if p.Settings.Name != "Test Mod" {
		t.Fatalf("name = %q", p.Settings.Name)
	}
	if p.Settings.LogLevel != patchlog.Debug {
		t.Fatalf("level = %v", p.Settings.LogLevel)
	}
}

func TestParseTLKList(t *testing.T) {
	p := parseFixture(t)
	if p.StringTable == nil || p.StringTable.Name != "dialog.tlk" {
		t.Fatalf("string table: %+v", p.StringTable)
	}
	op := p.StringTable.Ops[0].(*patchop.AppendStrings)
	if len(op.Entries) != 2 {
		t.Fatalf("got %d entries", len(op.Entries))
	}
	if op.Entries[1].Slot != 1 || op.Entries[1].AuxIndex != 1 {
		t.Fatalf("entry 1: %+v", op.Entries[1])
	}
}

func TestParseInstallList(t *testing.T) {
	p := parseFixture(t)
	if len(p.Installs) != 2 {
		t.Fatalf("got %d folders", len(p.Installs))
	}
	ov := p.Installs[0]
	if ov.Dest.Folder != "Override" || len(ov.Files) != 2 {
		t.Fatalf("folder 0: %+v", ov)
	}
	if ov.Files[0].Replace || !ov.Files[1].Replace {
		t.Fatalf("replace flags: %+v", ov.Files)
	}
	mod := p.Installs[1]
	if !mod.Dest.IsArchive() || mod.Dest.Archive != "Modules/danm13.mod" {
		t.Fatalf("archive destination: %+v", mod.Dest)
	}
}

func TestParseTableInstructions(t *testing.T) {
	p := parseFixture(t)
	if len(p.Tables) != 1 {
		t.Fatalf("got %d tables", len(p.Tables))
	}
	tp := p.Tables[0]
	if tp.Name != "appearance.2da" || tp.Dest.Folder != install.Override {
		t.Fatalf("table: %+v", tp)
	}
	add := tp.Ops[0].(*patchop.AddRow)
	if add.Exclusive != "label" {
		t.Fatalf("exclusive = %q", add.Exclusive)
	}
	if len(add.Cells) != 2 || add.Cells[0].Column != "label" {
		t.Fatalf("cells: %+v", add.Cells)
	}
	if _, ok := add.Cells[1].Value.(patchop.High); !ok {
		t.Fatalf("race value: %T", add.Cells[1].Value)
	}
	if len(add.Outs) != 1 || add.Outs[0].Slot != 1 || add.Outs[0].Column != "" {
		t.Fatalf("outs: %+v", add.Outs)
	}
	mod := tp.Ops[1].(*patchop.ModifyRow)
	sel, ok := mod.Selector.(patchop.ByColumnValue)
	if !ok || sel.Column != "label" || sel.Value != "npc_new" {
		t.Fatalf("selector: %+v", mod.Selector)
	}
}

func TestParseTreeInstructions(t *testing.T) {
	p := parseFixture(t)
	tp := p.Trees[0]
	if tp.Name != "npc.utc" || len(tp.Ops) != 4 {
		t.Fatalf("tree: %+v", tp)
	}
	app := tp.Ops[0].(*patchop.ModifyField)
	if app.Field.String() != "2DAMEMORY1" {
		t.Fatalf("field ref: %v", app.Field)
	}
	name := tp.Ops[1].(*patchop.ModifyField)
	if name.Field.String() != "FirstName" || name.Sub != nil {
		t.Fatalf("name op: %+v", name)
	}
	sub := tp.Ops[2].(*patchop.ModifyField)
	if sub.Sub == nil || *sub.Sub != 0 {
		t.Fatalf("substring op: %+v", sub)
	}
	add := tp.Ops[3].(*patchop.AddField)
	if !add.IDFromListIndex || add.PathOut == nil || *add.PathOut != 2 {
		t.Fatalf("add field: %+v", add)
	}
	if len(add.Children) != 1 || add.Children[0].FieldLabel != "ClassLevel" {
		t.Fatalf("children: %+v", add.Children)
	}
}

func TestParseSSFList(t *testing.T) {
	p := parseFixture(t)
	sp := p.Soundsets[0]
	if sp.Name != "npc.ssf" || len(sp.Ops) != 1 {
		t.Fatalf("soundset: %+v", sp)
	}
	op := sp.Ops[0].(*patchop.SetSound)
	if op.Index != 0 {
		t.Fatalf("slot index = %d", op.Index)
	}
}

func utcFixture() *gff.Node {
	root := gff.NewStruct(0xFFFFFFFF)
	root.AddField(&gff.Node{Type: gff.DWordType, Label: "Appearance_Type", Uint64: 0})
	root.AddField(&gff.Node{Type: gff.LocStringType, Label: "FirstName",
		Loc: &gff.LocString{StrRef: -1}})
	list := gff.NewList()
	list.Label = "ClassList"
	root.AddField(list)
	return root
}

func soundsetFixture() *ssf.Soundset {
	return ssf.New()
}

// The parsed patch runs end to end against in-memory stores.
func TestParsedPatchRuns(t *testing.T) {
	p := parseFixture(t)
	p.Scripts = nil
	p.Installs = nil

	target := install.NewMemStore()
	payload := install.NewMemStore()
	target.SaveStrings("dialog.tlk", install.Destination{}, tlk.New())

	tb := twoda.New("label", "race", "modela")
	_, row := tb.AddRow("old")
	tb.SetCell(row, "label", "old")
	tb.SetCell(row, "race", "5")
	target.SaveTable("appearance.2da", install.InFolder(install.Override), tb)

	target.SaveTree("npc.utc", install.InFolder(install.Override), utcFixture())
	payload.SaveSoundset("npc.ssf", install.Destination{}, soundsetFixture())

	r := &install.Runner{Target: target, Payload: payload}
	rp, err := r.Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if rp.Failed != 0 {
		t.Fatalf("report: %+v", rp)
	}
	got, _, _ := target.Table("appearance.2da", install.InFolder(install.Override))
	if len(got.Rows) != 2 {
		t.Fatalf("got %d rows", len(got.Rows))
	}
	if v, _ := got.Cell(got.Rows[1], "race"); v != "6" {
		t.Fatalf("race = %q, want 6", v)
	}
	if v, _ := got.Cell(got.Rows[1], "modela"); v != "P_FEM" {
		t.Fatalf("modela = %q", v)
	}
	root, _, _ := target.Tree("npc.utc", install.InFolder(install.Override))
	if n, _ := root.WalkPath("Appearance_Type"); n.Uint64 != 1 {
		t.Fatalf("Appearance_Type = %d, want 1", n.Uint64)
	}
	if n, _ := root.WalkPath("ClassList/0/ClassLevel"); n == nil || n.Int64 != 3 {
		t.Fatalf("nested field not built: %+v", n)
	}
}
