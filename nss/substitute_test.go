package nss

import (
	"errors"
	"strings"
	"testing"

	"github.com/kotormods/kpatch/memory"
)

func TestSubstitute(t *testing.T) {
	mem := memory.New()
	mem.SetStrRef(3, 136600)
	mem.SetToken(5, "42")

	tests := []struct {
		name string
		in   string
		out  string
		err  bool
	}{
		{
			name: "both namespaces",
			in:   "int n = #2DAMEMORY5#; SpeakString(#StrRef3#);",
			out:  "int n = 42; SpeakString(136600);",
		},
		{
			name: "no placeholders",
			in:   "void main() {}",
			out:  "void main() {}",
		},
		{
			name: "non-token between sentinels passes through",
			in:   `// #include "k_inc_debug"#`,
			out:  `// #include "k_inc_debug"#`,
		},
		{
			name: "unterminated sentinel passes through",
			in:   "#StrRef3",
			out:  "#StrRef3",
		},
		{
			name: "unset slot is fatal",
			in:   "#2DAMEMORY9#",
			err:  true,
		},
		{
			name: "unset strref is fatal",
			in:   "#StrRef8#",
			err:  true,
		},
		{
			name: "adjacent literals then token",
			in:   "##StrRef3# x #StrRef3#",
			out:  "#136600 x 136600",
		},
	}
	for _, tc := range tests {
		got, err := Substitute(tc.in, mem)
		if tc.err {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			} else if !errors.Is(err, memory.ErrUnresolved) {
				t.Errorf("%s: expected unresolved token error, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.out {
			t.Errorf("%s:\n got %q\nwant %q", tc.name, got, tc.out)
		}
	}
}

func TestSubstituteLargeSource(t *testing.T) {
	mem := memory.New()
	mem.SetToken(1, "7")
	var b strings.Builder
	for i := 0; i < 1000; i++ {
		b.WriteString("int x = #2DAMEMORY1#;\n")
	}
	got, err := Substitute(b.String(), mem)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "int x = 7;") != 1000 {
		t.Fatal("not all placeholders substituted")
	}
}
