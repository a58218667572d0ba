package memory

import (
	"errors"
	"testing"
)

func TestReadBeforeWrite(t *testing.T) {
	m := New()
	if _, err := m.StrRef(3); err == nil {
		t.Fatal("expected error reading unset StrRef slot")
	}
	if _, err := m.Token(3); err == nil {
		t.Fatal("expected error reading unset 2DAMEMORY slot")
	}
	_, err := m.Token(7)
	var ute *UnresolvedTokenError
	if !errors.As(err, &ute) {
		t.Fatalf("expected *UnresolvedTokenError, got %T", err)
	}
	if ute.Namespace != TableMemory || ute.Slot != 7 {
		t.Fatalf("got %v", ute)
	}
	if !errors.Is(err, ErrUnresolved) {
		t.Fatal("expected errors.Is(err, ErrUnresolved)")
	}
}

func TestLastWriteWins(t *testing.T) {
	m := New()
	m.SetStrRef(1, 100)
	m.SetStrRef(1, 200)
	ref, err := m.StrRef(1)
	if err != nil {
		t.Fatal(err)
	}
	if ref != 200 {
		t.Fatalf("got %d, want 200", ref)
	}

	m.SetToken(5, "12")
	m.SetToken(5, "ClassList/0/Class")
	v, err := m.Token(5)
	if err != nil {
		t.Fatal(err)
	}
	if v != "ClassList/0/Class" {
		t.Fatalf("got %q", v)
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	m := New()
	m.SetStrRef(1, 42)
	if _, err := m.Token(1); err == nil {
		t.Fatal("2DAMEMORY1 should be unset even though StrRef1 is set")
	}
}
