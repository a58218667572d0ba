package install

import (
	"github.com/kotormods/kpatch/patchlog"
	"github.com/kotormods/kpatch/patchop"
)

// Patch is one complete, ordered patch description: everything a run
// needs besides the stores and the compiler. Front ends (the changes
// package, builder code, test fixtures) produce it; the Runner consumes
// it.
type Patch struct {
	Settings Settings

	StringTable *StringsPatch
	Installs    []*FolderInstall
	Tables      []*TablePatch
	Trees       []*TreePatch
	Scripts     *ScriptsPatch
	Soundsets   []*SoundsetPatch
}

// Settings are the run-level options of a patch.
type Settings struct {
	Name     string
	LogLevel patchlog.Level
}

// StringsPatch appends to the central string table.
type StringsPatch struct {
	Name string
	Dest Destination
	Ops  []patchop.StringsOp
}

// FolderInstall copies opaque payload files into one destination.
type FolderInstall struct {
	Dest  Destination
	Files []InstallFile
}

// InstallFile is one verbatim file copy. Rename, when set, names the file
// at the destination. With Replace unset an existing destination file
// leaves the copy skipped with a warning.
type InstallFile struct {
	Source  string
	Rename  string
	Replace bool
}

func (f InstallFile) DestName() string {
	if f.Rename != "" {
		return f.Rename
	}
	return f.Source
}

// TablePatch is the ordered instruction list for one 2DA resource.
// Replace forces seeding from the payload even when the destination
// already has the resource.
type TablePatch struct {
	Name    string
	Dest    Destination
	Replace bool
	Ops     []patchop.TableOp
}

// TreePatch is the ordered instruction list for one GFF resource.
type TreePatch struct {
	Name    string
	Dest    Destination
	Replace bool
	Ops     []patchop.TreeOp
}

// ScriptsPatch compiles payload scripts after token substitution. Dest is
// the batch default; entries may override it.
type ScriptsPatch struct {
	Dest    Destination
	Scripts []ScriptCompile
}

// ScriptCompile is one source script: substituted, compiled, and placed
// at the destination under the compiled name.
type ScriptCompile struct {
	Name    string
	Dest    *Destination
	Replace bool
}

// SoundsetPatch is the ordered instruction list for one SSF resource.
type SoundsetPatch struct {
	Name    string
	Dest    Destination
	Replace bool
	Ops     []patchop.SoundOp
}
