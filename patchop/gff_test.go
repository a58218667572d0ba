package patchop

import (
	"errors"
	"testing"

	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/memory"
)

func utcTree() *gff.Node {
	root := gff.NewStruct(0xFFFFFFFF)
	root.AddField(&gff.Node{Type: gff.StringType, Label: "Tag", String: "npc"})
	root.AddField(&gff.Node{Type: gff.DWordType, Label: "Appearance_Type", Uint64: 1})
	root.AddField(&gff.Node{Type: gff.LocStringType, Label: "FirstName",
		Loc: &gff.LocString{StrRef: -1}})
	list := gff.NewList()
	list.Label = "ClassList"
	root.AddField(list)
	return root
}

func TestModifyFieldValue(t *testing.T) {
	ctx := testCtx()
	ctx.Mem.SetToken(1, "3")
	root := utcTree()
	op := &ModifyField{
		Label: "set_app",
		Field: PathRef("Appearance_Type"),
		Value: TableToken(1),
	}
	if _, err := op.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	n, _ := root.WalkPath("Appearance_Type")
	if n.Uint64 != 3 {
		t.Fatalf("got %d, want 3", n.Uint64)
	}
}

func TestModifyFieldLocString(t *testing.T) {
	ctx := testCtx()
	ctx.Mem.SetStrRef(0, 136600)
	root := utcTree()
	// set the string reference
	op := &ModifyField{
		Label: "set_name",
		Field: PathRef("FirstName"),
		Value: StrRefToken(0),
	}
	if _, err := op.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	n, _ := root.WalkPath("FirstName")
	if n.Loc.StrRef != 136600 {
		t.Fatalf("strref = %d", n.Loc.StrRef)
	}
	// set an embedded substring
	sub := 0
	op = &ModifyField{
		Label: "set_name_en",
		Field: PathRef("FirstName"),
		Value: Literal("Atton"),
		Sub:   &sub,
	}
	if _, err := op.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	if text, ok := n.Loc.Sub(0); !ok || text != "Atton" {
		t.Fatalf("sub = %q, %v", text, ok)
	}
}

func TestModifyFieldContainerFatal(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	op := &ModifyField{
		Label: "set_list",
		Field: PathRef("ClassList"),
		Value: Literal("1"),
	}
	if _, err := op.ApplyTree(ctx, root); err == nil {
		t.Fatal("expected fatal error setting a container field")
	}
}

func TestAddFieldIntoListWithOutputs(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	liOut, pathOut := 5, 6
	op := &AddField{
		Label:           "add_class",
		FieldType:       gff.StructType,
		Parent:          PathRef("ClassList"),
		IDFromListIndex: true,
		ListIndexOut:    &liOut,
		PathOut:         &pathOut,
		Children: []*AddField{
			{
				Label:      "add_class_id",
				FieldType:  gff.IntType,
				FieldLabel: "Class",
				Value:      Literal("5"),
			},
		},
	}
	if _, err := op.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	if v, _ := ctx.Mem.Token(5); v != "0" {
		t.Fatalf("list index token = %q", v)
	}
	if v, _ := ctx.Mem.Token(6); v != "ClassList/0" {
		t.Fatalf("path token = %q", v)
	}
	n, err := root.WalkPath("ClassList/0/Class")
	if err != nil {
		t.Fatal(err)
	}
	if n.Int64 != 5 {
		t.Fatalf("Class = %d", n.Int64)
	}
	st, _ := root.WalkPath("ClassList/0")
	if st.StructID != 0 {
		t.Fatalf("struct id = %d, want list index 0", st.StructID)
	}
}

func TestPathTokenForwardReference(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	pathOut := 5
	add := &AddField{
		Label:      "add_struct",
		FieldType:  gff.StructType,
		FieldLabel: "SkillPoints",
		Parent:     PathRef(""),
		PathOut:    &pathOut,
	}
	mod := &ModifyField{
		Label: "set_inner",
		Field: TokenRef(5),
		Value: Literal("2"),
	}
	// running the modify first must fail with an unresolved token
	if _, err := mod.ApplyTree(ctx, root.Clone()); !errors.Is(err, memory.ErrUnresolved) {
		t.Fatalf("expected unresolved token error, got %v", err)
	}
	if _, err := add.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	// the token now names the new struct; add a leaf under it and set it
	inner := &AddField{
		Label:      "add_inner",
		FieldType:  gff.ByteType,
		FieldLabel: "Computer",
		Parent:     TokenRef(5),
		Value:      Literal("0"),
	}
	if _, err := inner.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	mod = &ModifyField{
		Label: "set_inner",
		Field: PathRef("SkillPoints/Computer"),
		Value: Literal("2"),
	}
	if _, err := mod.ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	n, err := root.WalkPath("SkillPoints/Computer")
	if err != nil {
		t.Fatal(err)
	}
	if n.Uint64 != 2 {
		t.Fatalf("got %d", n.Uint64)
	}
}

func TestAddFieldCollisionConvergence(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	mk := func(v string) *AddField {
		return &AddField{
			Label:      "add_hp",
			FieldType:  gff.ShortType,
			FieldLabel: "HitPoints",
			Parent:     PathRef(""),
			Value:      Literal(v),
		}
	}
	if _, err := mk("20").ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	if _, err := mk("30").ApplyTree(ctx, root); err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, f := range root.Fields {
		if f.Label == "HitPoints" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d HitPoints fields, want 1", count)
	}
	n, _ := root.WalkPath("HitPoints")
	if n.Int64 != 30 {
		t.Fatalf("got %d, want the second add's value", n.Int64)
	}
}

func TestAddFieldTypeMismatchFatal(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	op := &AddField{
		Label:      "add_tag",
		FieldType:  gff.IntType,
		FieldLabel: "Tag",
		Parent:     PathRef(""),
		Value:      Literal("1"),
	}
	if _, err := op.ApplyTree(ctx, root); err == nil {
		t.Fatal("expected error for same label, different type")
	}
}

func TestAddFieldNonStructIntoListFatal(t *testing.T) {
	ctx := testCtx()
	root := utcTree()
	op := &AddField{
		Label:     "add_bad",
		FieldType: gff.IntType,
		Parent:    PathRef("ClassList"),
		Value:     Literal("1"),
	}
	if _, err := op.ApplyTree(ctx, root); err == nil {
		t.Fatal("expected error inserting a non-struct under a list")
	}
}
