package twoda

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddRowDefaults(t *testing.T) {
	tb := New("label", "appearance")
	idx, row := tb.AddRow("")
	if idx != 0 {
		t.Fatalf("got index %d", idx)
	}
	if row.Label != "0" {
		t.Fatalf("label should default to index, got %q", row.Label)
	}
	want := []string{Blank, Blank}
	if diff := cmp.Diff(want, row.Cells); diff != "" {
		t.Fatalf("cells (-want +got):\n%s", diff)
	}
}

func TestAddColumn(t *testing.T) {
	tb := New("label")
	tb.AddRow("a")
	tb.AddRow("b")
	if err := tb.AddColumn("forcepoints", "0"); err != nil {
		t.Fatal(err)
	}
	for _, row := range tb.Rows {
		v, err := tb.Cell(row, "forcepoints")
		if err != nil {
			t.Fatal(err)
		}
		if v != "0" {
			t.Fatalf("got %q", v)
		}
	}
	if err := tb.AddColumn("forcepoints", "0"); err == nil {
		t.Fatal("expected duplicate column error")
	}
	if err := tb.AddColumn("averyverylongcolumnname", "0"); err == nil {
		t.Fatal("expected length error")
	}
}

func TestHighWaterMark(t *testing.T) {
	tb := New("id", "name")
	_, r0 := tb.AddRow("a")
	tb.SetCell(r0, "id", "5")
	tb.SetCell(r0, "name", "x")
	_, r1 := tb.AddRow("b")
	tb.SetCell(r1, "id", "12")
	_, r2 := tb.AddRow("c")
	tb.SetCell(r2, "id", Blank)

	hw, err := tb.HighWaterMark("id")
	if err != nil {
		t.Fatal(err)
	}
	if hw != 13 {
		t.Fatalf("got %d, want 13", hw)
	}
	// no numeric values at all
	hw, err = tb.HighWaterMark("name")
	if err != nil {
		t.Fatal(err)
	}
	if hw != 0 {
		t.Fatalf("got %d, want 0", hw)
	}
	if _, err := tb.HighWaterMark("nope"); err == nil {
		t.Fatal("expected unknown column error")
	}
}

func TestHighWaterMarkEmptyTable(t *testing.T) {
	tb := New("id")
	hw, err := tb.HighWaterMark("id")
	if err != nil {
		t.Fatal(err)
	}
	if hw != 0 {
		t.Fatalf("got %d, want 0", hw)
	}
}

func TestRowLookup(t *testing.T) {
	tb := New("label", "race")
	_, r0 := tb.AddRow("human")
	tb.SetCell(r0, "race", "6")
	tb.AddRow("twilek")

	if tb.RowByLabel("twilek") != tb.Rows[1] {
		t.Fatal("RowByLabel failed")
	}
	if tb.RowByLabel("gone") != nil {
		t.Fatal("expected nil for missing label")
	}
	row, err := tb.RowByColumnValue("race", "6")
	if err != nil {
		t.Fatal(err)
	}
	if row != tb.Rows[0] {
		t.Fatal("RowByColumnValue failed")
	}
}
