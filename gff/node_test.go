package gff

import (
	"testing"
)

func testTree() *Node {
	root := NewStruct(0xFFFFFFFF)
	root.AddField(&Node{Type: StringType, Label: "Tag", String: "npc_tag"})
	root.AddField(&Node{Type: DWordType, Label: "Appearance_Type", Uint64: 12})
	list := NewList()
	list.Label = "ClassList"
	root.AddField(list)
	cls := NewStruct(2)
	cls.AddField(&Node{Type: IntType, Label: "Class", Int64: 3})
	list.AppendStruct(cls)
	return root
}

func TestWalkPath(t *testing.T) {
	root := testTree()
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "Tag", want: "npc_tag"},
		{path: "Appearance_Type", want: "12"},
		{path: "ClassList/0/Class", want: "3"},
		{path: `ClassList\0\Class`, want: "3"},
		{path: "ClassList/1/Class", wantErr: true},
		{path: "Nope", wantErr: true},
		{path: "Tag/Sub", wantErr: true},
		{path: "ClassList/Class", wantErr: true},
	}
	for _, tc := range tests {
		got, err := root.WalkPath(tc.path)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tc.path, err)
			continue
		}
		if got.ValueString() != tc.want {
			t.Errorf("%s: got %q, want %q", tc.path, got.ValueString(), tc.want)
		}
	}
}

func TestNodePath(t *testing.T) {
	root := testTree()
	n, err := root.WalkPath("ClassList/0/Class")
	if err != nil {
		t.Fatal(err)
	}
	if n.Path() != "ClassList/0/Class" {
		t.Fatalf("got %q", n.Path())
	}
	if root.Path() != "" {
		t.Fatalf("root path should be empty, got %q", root.Path())
	}
}

func TestSetFromString(t *testing.T) {
	tests := []struct {
		typ     Type
		in      string
		out     string
		wantErr bool
	}{
		{typ: DWordType, in: "42", out: "42"},
		{typ: IntType, in: "-7", out: "-7"},
		{typ: FloatType, in: "1.5", out: "1.5"},
		{typ: StringType, in: "hello", out: "hello"},
		{typ: ResRefType, in: "n_npc001", out: "n_npc001"},
		{typ: PositionType, in: "1.0|2.5|-3.0", out: "1|2.5|-3"},
		{typ: OrientationType, in: "0|0|1", out: "0|0|1"},
		{typ: LocStringType, in: "12345", out: "12345"},
		{typ: DWordType, in: "-1", wantErr: true},
		{typ: PositionType, in: "1|2", wantErr: true},
		{typ: StructType, in: "x", wantErr: true},
		{typ: ListType, in: "x", wantErr: true},
	}
	for _, tc := range tests {
		n := &Node{Type: tc.typ}
		err := n.SetFromString(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s %q: expected error", tc.typ, tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s %q: %v", tc.typ, tc.in, err)
			continue
		}
		if n.ValueString() != tc.out {
			t.Errorf("%s %q: got %q, want %q", tc.typ, tc.in, n.ValueString(), tc.out)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := testTree()
	cp := root.Clone()
	n, err := cp.WalkPath("ClassList/0/Class")
	if err != nil {
		t.Fatal(err)
	}
	n.Int64 = 99
	orig, err := root.WalkPath("ClassList/0/Class")
	if err != nil {
		t.Fatal(err)
	}
	if orig.Int64 != 3 {
		t.Fatalf("clone mutation leaked into original: %d", orig.Int64)
	}
}

func TestListOnlyStructs(t *testing.T) {
	list := NewList()
	if _, err := list.AppendStruct(FromString("x")); err == nil {
		t.Fatal("expected error appending non-struct to list")
	}
}
