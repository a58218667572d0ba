package patchop

import (
	"testing"

	"github.com/kotormods/kpatch/tlk"
)

func TestAppendStrings(t *testing.T) {
	ctx := testCtx()
	target := tlk.New()
	for i := 0; i < 10; i++ {
		target.Append(tlk.Entry{Text: "existing"})
	}
	aux := tlk.New()
	aux.Append(tlk.Entry{Text: "Hello"})
	aux.Append(tlk.Entry{Text: "World"})
	op := &AppendStrings{
		Label: "tlk",
		Aux:   aux,
		Entries: []StringRef{
			{Slot: 0, AuxIndex: 0},
			{Slot: 1, AuxIndex: 1},
		},
	}
	if _, err := op.ApplyStrings(ctx, target); err != nil {
		t.Fatal(err)
	}
	if target.Len() != 12 {
		t.Fatalf("got %d entries, want 12", target.Len())
	}
	r0, err := ctx.Mem.StrRef(0)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := ctx.Mem.StrRef(1)
	if err != nil {
		t.Fatal(err)
	}
	if r0 != 10 || r1 != 11 {
		t.Fatalf("StrRef0=%d StrRef1=%d, want 10 and 11", r0, r1)
	}
	if target.Entries[10].Text != "Hello" || target.Entries[11].Text != "World" {
		t.Fatalf("appended texts wrong: %+v", target.Entries[10:])
	}
}

func TestAppendStringsFeminineMismatch(t *testing.T) {
	ctx := testCtx()
	target := tlk.New()
	aux := tlk.New()
	aux.Append(tlk.Entry{Text: "a"})
	aux.Append(tlk.Entry{Text: "b"})
	auxF := tlk.New()
	auxF.Append(tlk.Entry{Text: "a-fem"})
	op := &AppendStrings{
		Label:   "tlk",
		Aux:     aux,
		AuxF:    auxF,
		Entries: []StringRef{{Slot: 0, AuxIndex: 0}},
	}
	if _, err := op.ApplyStrings(ctx, target); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if target.Len() != 0 {
		t.Fatal("mismatch must be detected before any append")
	}
}

func TestAppendStringsFeminine(t *testing.T) {
	ctx := testCtx()
	target := tlk.New()
	aux := tlk.New()
	aux.Append(tlk.Entry{Text: "Greetings"})
	auxF := tlk.New()
	auxF.Append(tlk.Entry{Text: "Greetings (f)"})
	op := &AppendStrings{
		Label:   "tlk",
		Aux:     aux,
		AuxF:    auxF,
		Entries: []StringRef{{Slot: 3, AuxIndex: 0}},
	}
	if _, err := op.ApplyStrings(ctx, target); err != nil {
		t.Fatal(err)
	}
	if target.Entries[0].Feminine != "Greetings (f)" {
		t.Fatalf("feminine = %q", target.Entries[0].Feminine)
	}
}
