package patchlog

import "testing"

func TestLoggerFiltersByLevel(t *testing.T) {
	rec := &Recorder{}
	lg := New(Warning, rec)
	lg.Errorf("e")
	lg.Warnf("w")
	lg.Infof("i")
	lg.Debugf("d")
	if len(rec.Messages) != 2 {
		t.Fatalf("got %d messages: %+v", len(rec.Messages), rec.Messages)
	}
	if rec.Messages[0].Level != Error || rec.Messages[1].Level != Warning {
		t.Fatalf("levels: %+v", rec.Messages)
	}
}

func TestParseLevel(t *testing.T) {
	for n, want := range map[int]Level{
		0: Silent, 1: Error, 2: Warning, 3: Info, 4: Debug,
	} {
		got, err := ParseLevel(n)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%d) = %v, %v", n, got, err)
		}
	}
	if _, err := ParseLevel(5); err == nil {
		t.Fatal("expected error for out of range level")
	}
}
