package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/kotormods/kpatch"
	"github.com/kotormods/kpatch/install"
)

func runDump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: dump takes no arguments", cli.ErrUsage)
	}
	kcfg, err := cfg.kpatchConfig()
	if err != nil {
		return err
	}
	p, err := kpatch.Load(kcfg)
	if err != nil {
		return err
	}
	describe(cc.Out, p)
	return nil
}

// describe prints the plan phase by phase, in the order a run would
// execute it.
func describe(w io.Writer, p *install.Patch) {
	if p.Settings.Name != "" {
		fmt.Fprintf(w, "patch: %s\n", p.Settings.Name)
	}
	if sp := p.StringTable; sp != nil {
		fmt.Fprintf(w, "strings: %s\n", sp.Name)
		for _, op := range sp.Ops {
			fmt.Fprintf(w, "  %s\n", op.OpLabel())
		}
	}
	for _, fi := range p.Installs {
		fmt.Fprintf(w, "install: %s\n", fi.Dest)
		for _, f := range fi.Files {
			note := ""
			if f.Replace {
				note = " (replace)"
			}
			fmt.Fprintf(w, "  %s -> %s%s\n", f.Source, f.DestName(), note)
		}
	}
	for _, tp := range p.Tables {
		fmt.Fprintf(w, "table: %s @ %s\n", tp.Name, tp.Dest)
		for _, op := range tp.Ops {
			fmt.Fprintf(w, "  %s\n", op.OpLabel())
		}
	}
	for _, tp := range p.Trees {
		fmt.Fprintf(w, "tree: %s @ %s\n", tp.Name, tp.Dest)
		for _, op := range tp.Ops {
			fmt.Fprintf(w, "  %s\n", op.OpLabel())
		}
	}
	if sp := p.Scripts; sp != nil {
		fmt.Fprintf(w, "compile: %s\n", sp.Dest)
		for _, sc := range sp.Scripts {
			fmt.Fprintf(w, "  %s\n", sc.Name)
		}
	}
	for _, sp := range p.Soundsets {
		fmt.Fprintf(w, "soundset: %s @ %s\n", sp.Name, sp.Dest)
		for _, op := range sp.Ops {
			fmt.Fprintf(w, "  %s\n", op.OpLabel())
		}
	}
}
