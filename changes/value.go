package changes

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/patchop"
)

// parseValue maps one INI value onto its value source. Unrecognized text
// is a literal; only exact token spellings are special.
func parseValue(s string) patchop.Value {
	if n, ok := tokenSlot(s, "StrRef"); ok {
		return patchop.StrRefToken(n)
	}
	if n, ok := tokenSlot(s, "2DAMEMORY"); ok {
		return patchop.TableToken(n)
	}
	if inner, ok := callArg(s, "high"); ok {
		return patchop.High(inner)
	}
	if inner, ok := callArg(s, "expr"); ok {
		return patchop.Expr(inner)
	}
	switch s {
	case "RowIndex":
		return patchop.RowIndex{}
	case "ListIndex":
		return patchop.ListIndex{}
	}
	return patchop.Literal(s)
}

// tokenSlot matches prefix immediately followed by a decimal slot number
// and nothing else.
func tokenSlot(s, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func callArg(s, fn string) (string, bool) {
	rest, ok := strings.CutPrefix(s, fn+"(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return "", false
	}
	return strings.TrimSuffix(rest, ")"), true
}

// parseOut maps a 2DAMEMORY<n> key inside a table instruction onto its
// memory write: the produced row index, or a named column of the
// produced row.
func parseOut(keyName, value string) (patchop.MemoryOut, error) {
	slot, ok := tokenSlot(keyName, "2DAMEMORY")
	if !ok {
		return patchop.MemoryOut{}, fmt.Errorf("bad memory slot key %q", keyName)
	}
	if value == "RowIndex" {
		return patchop.MemoryOut{Slot: slot}, nil
	}
	return patchop.MemoryOut{Slot: slot, Column: value}, nil
}

// archiveExts are the container formats a destination path can name.
var archiveExts = map[string]bool{
	".mod": true,
	".erf": true,
	".rim": true,
	".sav": true,
}

// parseDest reads a destination path: empty means the installation root,
// a path with a container extension means inside that archive, anything
// else is a plain folder.
func parseDest(s string) install.Destination {
	if s == "" {
		return install.Destination{}
	}
	s = strings.ReplaceAll(s, `\`, "/")
	if archiveExts[strings.ToLower(path.Ext(s))] {
		return install.InArchive(s)
	}
	return install.InFolder(s)
}
