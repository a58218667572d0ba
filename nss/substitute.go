// Package nss rewrites token placeholders in NWScript source and hands
// the result to an external compiler.
//
// Placeholders are token names wrapped in '#' sentinels, e.g. #2DAMEMORY5#
// or #StrRef3#. A placeholder naming a slot no earlier instruction wrote is
// fatal; text between sentinels that is not a token name passes through
// unchanged.
package nss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/memory"
)

// Sentinel wraps placeholder tokens in script source.
const Sentinel = '#'

// Substitute replaces #StrRef<N># and #2DAMEMORY<N># placeholders with
// their token memory values.
func Substitute(source string, mem *memory.Memory) (string, error) {
	var b strings.Builder
	rest := source
	for {
		i := strings.IndexByte(rest, Sentinel)
		if i == -1 {
			b.WriteString(rest)
			break
		}
		j := strings.IndexByte(rest[i+1:], Sentinel)
		if j == -1 {
			b.WriteString(rest)
			break
		}
		name := rest[i+1 : i+1+j]
		repl, ok, err := resolveToken(name, mem)
		if err != nil {
			return "", err
		}
		if !ok {
			// not a token name: emit up to and including the opening
			// sentinel, rescan from the second one
			b.WriteString(rest[:i+1])
			rest = rest[i+1:]
			continue
		}
		b.WriteString(rest[:i])
		b.WriteString(repl)
		rest = rest[i+j+2:]
	}
	res := b.String()
	if debug.Compile() && res != source {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(source, res, false)
		debug.Logf("script substitution:\n%s\n", dmp.DiffPrettyText(diffs))
	}
	return res, nil
}

func resolveToken(name string, mem *memory.Memory) (string, bool, error) {
	if slot, ok := strings.CutPrefix(name, "StrRef"); ok {
		n, err := strconv.Atoi(slot)
		if err != nil || n < 0 {
			return "", false, nil
		}
		ref, err := mem.StrRef(n)
		if err != nil {
			return "", false, fmt.Errorf("script placeholder #%s#: %w", name, err)
		}
		return strconv.FormatInt(int64(ref), 10), true, nil
	}
	if slot, ok := strings.CutPrefix(name, "2DAMEMORY"); ok {
		n, err := strconv.Atoi(slot)
		if err != nil || n < 0 {
			return "", false, nil
		}
		v, err := mem.Token(n)
		if err != nil {
			return "", false, fmt.Errorf("script placeholder #%s#: %w", name, err)
		}
		return v, true, nil
	}
	return "", false, nil
}
