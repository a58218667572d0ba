package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "kpatch").
		WithSynopsis("kpatch [opts] command [opts]").
		WithDescription("kpatch applies declarative game-data patches to an installation.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return kpatchMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			DumpCommand(cfg))
}

func kpatchMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a").
		WithSynopsis("apply -mod <dir> -game <dir> [opts]").
		WithDescription("Run a mod's changes.ini against an installation directory.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runApply(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d", "plan").
		WithSynopsis("dump -mod <dir>").
		WithDescription("Parse a mod's changes.ini and print the resulting plan.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDump(cfg, cc, args)
		})
}
