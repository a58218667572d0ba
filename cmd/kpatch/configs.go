package main

import (
	"fmt"
	"os"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/kotormods/kpatch"
	"github.com/kotormods/kpatch/nss"
	"github.com/kotormods/kpatch/patchlog"
)

type MainConfig struct {
	Game    string `cli:"name=game desc='installation directory to patch'"`
	Mod     string `cli:"name=mod desc='mod directory holding changes.ini and its payload'"`
	Quiet   bool   `cli:"name=q aliases=quiet desc='silence run output'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log everything, overriding the LogLevel setting'"`

	Main *cli.Command
}

func (cfg *MainConfig) kpatchConfig() (kpatch.Config, error) {
	if cfg.Mod == "" {
		return kpatch.Config{}, fmt.Errorf("%w: -mod is required", cli.ErrUsage)
	}
	return kpatch.Config{
		GameDir: cfg.Game,
		ModDir:  cfg.Mod,
		Log:     cfg.logOverride(),
	}, nil
}

// logOverride maps -q and -v onto a logger; nil defers to the patch's own
// LogLevel setting.
func (cfg *MainConfig) logOverride() *patchlog.Logger {
	switch {
	case cfg.Quiet:
		return patchlog.Discard()
	case cfg.Verbose:
		return patchlog.New(patchlog.Debug, patchlog.NewConsole(os.Stderr))
	default:
		return nil
	}
}

type ApplyConfig struct {
	*MainConfig

	Backup   string `cli:"name=backup desc='copy modified files here before first overwrite'"`
	Report   string `cli:"name=report desc='write the YAML run report to this file (- for stdout)'"`
	Compiler string `cli:"name=compiler desc='external script compiler executable'"`
	Timeout  int    `cli:"name=timeout desc='per-script compile timeout in seconds'"`

	Apply *cli.Command
}

func (cfg *ApplyConfig) compiler() nss.Compiler {
	if cfg.Compiler == "" {
		return nil
	}
	ext := &nss.External{Path: cfg.Compiler}
	if cfg.Timeout > 0 {
		ext.Timeout = time.Duration(cfg.Timeout) * time.Second
	}
	return ext
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}
