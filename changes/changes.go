package changes

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/patchlog"
	"github.com/kotormods/kpatch/patchop"
	"github.com/kotormods/kpatch/ssf"
	"github.com/kotormods/kpatch/tlk"
)

// Options carries the inputs Parse cannot read from the INI text itself.
// Aux is the patch-local auxiliary string table the TLK list appends
// from; AuxF is its feminine variant.
type Options struct {
	Aux  *tlk.Table
	AuxF *tlk.Table
}

const (
	keyDestination = "!Destination"
	keyReplaceFile = "!ReplaceFile"
	keyFieldPath   = "!FieldPath"

	dialogTable = "dialog.tlk"
)

// Parse reads a changes.ini document into a patch description.
func Parse(src []byte, opts Options) (*install.Patch, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections: true,
		IgnoreInlineComment: true,
		KeyValueDelimiters:  "=",
	}, src)
	if err != nil {
		return nil, fmt.Errorf("changes: %w", err)
	}
	p := &install.Patch{}
	if err := parseSettings(f, p); err != nil {
		return nil, err
	}
	if err := parseTLKList(f, p, opts); err != nil {
		return nil, err
	}
	if err := parseInstallList(f, p); err != nil {
		return nil, err
	}
	if err := parseTableList(f, p); err != nil {
		return nil, err
	}
	if err := parseTreeList(f, p); err != nil {
		return nil, err
	}
	if err := parseCompileList(f, p); err != nil {
		return nil, err
	}
	if err := parseSSFList(f, p); err != nil {
		return nil, err
	}
	if debug.Changes() {
		debug.Logf("changes: %d install folders, %d tables, %d trees, %d soundsets\n",
			len(p.Installs), len(p.Tables), len(p.Trees), len(p.Soundsets))
	}
	return p, nil
}

// section fetches a named section, erroring instead of auto-creating.
func section(f *ini.File, name string) (*ini.Section, error) {
	sec, err := f.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("changes: no section [%s]", name)
	}
	return sec, nil
}

// listed walks a list section's keys in declaration order, calling visit
// with each key whose name starts with one of the given prefixes.
func listed(sec *ini.Section, visit func(prefix, value string) error, prefixes ...string) error {
	for _, k := range sec.Keys() {
		for _, pfx := range prefixes {
			if rest, ok := strings.CutPrefix(k.Name(), pfx); ok {
				if _, err := strconv.Atoi(rest); err != nil {
					continue
				}
				if err := visit(pfx, k.String()); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func boolKey(sec *ini.Section, name string) bool {
	if !sec.HasKey(name) {
		return false
	}
	v := sec.Key(name).String()
	return v == "1" || strings.EqualFold(v, "true")
}

func parseSettings(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("Settings")
	if err != nil {
		return nil
	}
	p.Settings.Name = sec.Key("WindowCaption").String()
	p.Settings.LogLevel = patchlog.Info
	if sec.HasKey("LogLevel") {
		n, err := sec.Key("LogLevel").Int()
		if err != nil {
			return fmt.Errorf("changes: LogLevel: %w", err)
		}
		lvl, err := patchlog.ParseLevel(n)
		if err != nil {
			return fmt.Errorf("changes: %w", err)
		}
		p.Settings.LogLevel = lvl
	}
	return nil
}

// parseTLKList reads the StrRef<slot>=<auxiliary index> bindings. The
// target is always the master dialog table at the installation root.
func parseTLKList(f *ini.File, p *install.Patch, opts Options) error {
	sec, err := f.GetSection("TLKList")
	if err != nil {
		return nil
	}
	op := &patchop.AppendStrings{
		Label: "TLKList",
		Aux:   opts.Aux,
		AuxF:  opts.AuxF,
	}
	for _, k := range sec.Keys() {
		slot, ok := tokenSlot(k.Name(), "StrRef")
		if !ok {
			continue
		}
		idx, err := k.Int()
		if err != nil {
			return fmt.Errorf("changes: TLKList %s: %w", k.Name(), err)
		}
		op.Entries = append(op.Entries, patchop.StringRef{Slot: slot, AuxIndex: idx})
	}
	if len(op.Entries) == 0 {
		return nil
	}
	// a nil auxiliary table is caught at apply time, so that plans can be
	// inspected without loading the mod's resources
	p.StringTable = &install.StringsPatch{
		Name: dialogTable,
		Ops:  []patchop.StringsOp{op},
	}
	return nil
}

func parseInstallList(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("InstallList")
	if err != nil {
		return nil
	}
	for _, k := range sec.Keys() {
		if _, ok := strings.CutPrefix(k.Name(), "install_folder"); !ok {
			continue
		}
		folder, err := section(f, k.Name())
		if err != nil {
			return err
		}
		fi := &install.FolderInstall{Dest: parseDest(k.String())}
		err = listed(folder, func(prefix, value string) error {
			fi.Files = append(fi.Files, install.InstallFile{
				Source:  value,
				Replace: prefix == "Replace",
			})
			return nil
		}, "File", "Replace")
		if err != nil {
			return err
		}
		p.Installs = append(p.Installs, fi)
	}
	return nil
}

func parseCompileList(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("CompileList")
	if err != nil {
		return nil
	}
	sp := &install.ScriptsPatch{Dest: install.InFolder(install.Override)}
	if sec.HasKey(keyDestination) {
		sp.Dest = parseDest(sec.Key(keyDestination).String())
	}
	err = listed(sec, func(prefix, value string) error {
		sp.Scripts = append(sp.Scripts, install.ScriptCompile{
			Name:    value,
			Replace: prefix == "Replace",
		})
		return nil
	}, "File", "Replace")
	if err != nil {
		return err
	}
	if len(sp.Scripts) > 0 {
		p.Scripts = sp
	}
	return nil
}

func parseSSFList(f *ini.File, p *install.Patch) error {
	sec, err := f.GetSection("SSFList")
	if err != nil {
		return nil
	}
	return listed(sec, func(prefix, value string) error {
		res, err := section(f, value)
		if err != nil {
			return err
		}
		sp := &install.SoundsetPatch{
			Name:    value,
			Dest:    install.InFolder(install.Override),
			Replace: prefix == "Replace" || boolKey(res, keyReplaceFile),
		}
		if res.HasKey(keyDestination) {
			sp.Dest = parseDest(res.Key(keyDestination).String())
		}
		for _, k := range res.Keys() {
			if strings.HasPrefix(k.Name(), "!") {
				continue
			}
			idx, err := ssf.SlotIndex(k.Name())
			if err != nil {
				return fmt.Errorf("changes: [%s]: %w", value, err)
			}
			sp.Ops = append(sp.Ops, &patchop.SetSound{
				Label: k.Name(),
				Index: idx,
				Value: parseValue(k.String()),
			})
		}
		p.Soundsets = append(p.Soundsets, sp)
		return nil
	}, "File", "Replace")
}
