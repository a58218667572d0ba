package patchop

import (
	"testing"

	"github.com/kotormods/kpatch/ssf"
)

func TestSetSound(t *testing.T) {
	ctx := testCtx()
	ctx.Mem.SetStrRef(2, 123456)
	s := ssf.New()

	op := &SetSound{Label: "battlecry", Index: 0, Value: Literal("1000")}
	if _, err := op.ApplySound(ctx, s); err != nil {
		t.Fatal(err)
	}
	if s.Entries[0] != 1000 {
		t.Fatalf("entry 0 = %d", s.Entries[0])
	}

	op = &SetSound{Label: "death", Index: 15, Value: StrRefToken(2)}
	if _, err := op.ApplySound(ctx, s); err != nil {
		t.Fatal(err)
	}
	if s.Entries[15] != 123456 {
		t.Fatalf("entry 15 = %d", s.Entries[15])
	}

	op = &SetSound{Label: "bad", Index: 99, Value: Literal("1")}
	if _, err := op.ApplySound(ctx, s); err == nil {
		t.Fatal("expected out of range error")
	}

	op = &SetSound{Label: "unset", Index: 1, Value: StrRefToken(9)}
	if _, err := op.ApplySound(ctx, s); err == nil {
		t.Fatal("expected unresolved token error")
	}
}
