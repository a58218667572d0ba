package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/kotormods/kpatch"
	"github.com/kotormods/kpatch/install"
)

func runApply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: apply takes no arguments", cli.ErrUsage)
	}
	kcfg, err := cfg.kpatchConfig()
	if err != nil {
		return err
	}
	if cfg.Game == "" {
		return fmt.Errorf("%w: -game is required", cli.ErrUsage)
	}
	kcfg.BackupDir = cfg.Backup
	kcfg.Compiler = cfg.compiler()

	rp, err := kpatch.Apply(context.Background(), kcfg)
	if rp != nil {
		if werr := writeReport(cfg, cc, rp); werr != nil && err == nil {
			err = werr
		}
		fmt.Fprintf(cc.Out, "%s: %d applied, %d skipped, %d failed\n",
			rp.Status, rp.Applied, rp.Skipped, rp.Failed)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "apply: %v\n", err)
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writeReport(cfg *ApplyConfig, cc *cli.Context, rp *install.Report) error {
	switch cfg.Report {
	case "":
		return nil
	case "-":
		return rp.EncodeYAML(cc.Out)
	}
	f, err := os.OpenFile(cfg.Report, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return rp.EncodeYAML(f)
}
