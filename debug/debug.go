// Package debug provides env-flag gated developer tracing, separate from
// the user-facing run log.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Value   bool
	Row     bool
	Field   bool
	Install bool
	Compile bool
	Changes bool
}

var d *debug

func init() {
	d = &debug{}
	d.Value = boolEnv("KPATCH_DEBUG_VALUE")
	d.Row = boolEnv("KPATCH_DEBUG_ROW")
	d.Field = boolEnv("KPATCH_DEBUG_FIELD")
	d.Install = boolEnv("KPATCH_DEBUG_INSTALL")
	d.Compile = boolEnv("KPATCH_DEBUG_COMPILE")
	d.Changes = boolEnv("KPATCH_DEBUG_CHANGES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Value() bool {
	return d.Value
}
func Row() bool {
	return d.Row
}
func Field() bool {
	return d.Field
}
func Install() bool {
	return d.Install
}
func Compile() bool {
	return d.Compile
}
func Changes() bool {
	return d.Changes
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
