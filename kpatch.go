// Package kpatch applies declarative game-data patches: a changes.ini
// document plus a payload directory of resources, run against an
// installation directory.
//
// The heavy lifting lives in the subpackages; this package ties them
// together for the common case. Binary resource codecs and archive
// handling are collaborator concerns supplied through Config.
package kpatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kotormods/kpatch/changes"
	"github.com/kotormods/kpatch/install"
	"github.com/kotormods/kpatch/nss"
	"github.com/kotormods/kpatch/patchlog"
	"github.com/kotormods/kpatch/tlk"
)

// ChangesFile is the canonical instruction file name inside a mod
// directory.
const ChangesFile = "changes.ini"

// AuxStringsFile is the auxiliary string table the TLK list appends
// from, with AuxStringsFileF its feminine variant.
const (
	AuxStringsFile  = "append.tlk"
	AuxStringsFileF = "appendf.tlk"
)

// Config describes one patch application.
type Config struct {
	// GameDir is the installation being patched.
	GameDir string
	// ModDir holds changes.ini, the auxiliary string tables, and every
	// payload resource the patch references.
	ModDir string

	// Codecs decode and encode the binary resource formats. Leaving a
	// codec nil makes patches against that resource kind fail.
	Codecs install.Codecs
	// Archives opens container destinations. Optional.
	Archives install.ArchiveOpener
	// Compiler builds substituted scripts. Required only when the patch
	// has a compile list.
	Compiler nss.Compiler

	// BackupDir, when set, receives the previous content of every
	// modified file before its first overwrite.
	BackupDir string

	// Log receives run output. Nil means a logger is built from the
	// patch's LogLevel setting writing to stderr.
	Log *patchlog.Logger
}

// Load parses the mod directory's changes.ini into a patch description.
func Load(cfg Config) (*install.Patch, error) {
	src, err := os.ReadFile(filepath.Join(cfg.ModDir, ChangesFile))
	if err != nil {
		return nil, fmt.Errorf("kpatch: %w", err)
	}
	opts := changes.Options{}
	opts.Aux, err = loadAux(cfg, AuxStringsFile)
	if err != nil {
		return nil, err
	}
	opts.AuxF, err = loadAux(cfg, AuxStringsFileF)
	if err != nil {
		return nil, err
	}
	return changes.Parse(src, opts)
}

func loadAux(cfg Config, name string) (*tlk.Table, error) {
	data, err := os.ReadFile(filepath.Join(cfg.ModDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("kpatch: %w", err)
	}
	if cfg.Codecs.DecodeStrings == nil {
		return nil, fmt.Errorf("kpatch: %s present but no TLK codec configured", name)
	}
	tb, err := cfg.Codecs.DecodeStrings(data)
	if err != nil {
		return nil, fmt.Errorf("kpatch: decode %s: %w", name, err)
	}
	return tb, nil
}

// Apply loads the mod's patch description and runs it against the
// installation. The returned report is non-nil even on failure and says
// how far the run got.
func Apply(ctx context.Context, cfg Config) (*install.Report, error) {
	p, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	return Run(ctx, cfg, p)
}

// Run executes an already-loaded patch description.
func Run(ctx context.Context, cfg Config, p *install.Patch) (*install.Report, error) {
	log := cfg.Log
	if log == nil {
		log = patchlog.New(p.Settings.LogLevel, patchlog.NewConsole(os.Stderr))
	}
	target := install.NewFSStore(cfg.GameDir, cfg.Codecs)
	target.Archives = cfg.Archives
	target.BackupDir = cfg.BackupDir
	defer target.Close()
	payload := install.NewFSStore(cfg.ModDir, cfg.Codecs)

	r := &install.Runner{
		Target:   target,
		Payload:  payload,
		Compiler: cfg.Compiler,
		Log:      log,
	}
	return r.Run(ctx, p)
}
