package install

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/kotormods/kpatch/debug"
	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/memory"
	"github.com/kotormods/kpatch/nss"
	"github.com/kotormods/kpatch/patchlog"
	"github.com/kotormods/kpatch/patchop"
	"github.com/kotormods/kpatch/ssf"
	"github.com/kotormods/kpatch/tlk"
	"github.com/kotormods/kpatch/twoda"
)

// Runner executes one patch against a target installation.
//
// Phases run in a fixed order: string table, file installs, tables, trees,
// script compilation, soundsets. Later phases may consume tokens and row
// indices produced by earlier ones, so the order is part of the engine's
// contract, as is strict declaration order within each phase.
//
// Token memory lives exactly as long as one Run call. Mutations are not
// rolled back on a fatal error; the report says how far the run got.
type Runner struct {
	Target   Store
	Payload  Store
	Compiler nss.Compiler
	Log      *patchlog.Logger
}

func (r *Runner) Run(ctx context.Context, p *Patch) (*Report, error) {
	log := r.Log
	if log == nil {
		log = patchlog.Discard()
	}
	mem := memory.New()
	opCtx := patchop.NewContext(mem, log)
	rp := &Report{Status: StatusSuccess}

	phases := []func(context.Context, *patchop.Context, *Patch, *Report) error{
		r.runStrings,
		r.runInstalls,
		r.runTables,
		r.runTrees,
		r.runScripts,
		r.runSoundsets,
	}
	for _, phase := range phases {
		if err := phase(ctx, opCtx, p, rp); err != nil {
			rp.Status = StatusAborted
			log.Errorf("run aborted: %v", err)
			return rp, err
		}
	}
	log.Infof("run complete: %d applied, %d skipped, %d failed",
		rp.Applied, rp.Skipped, rp.Failed)
	return rp, nil
}

func (r *Runner) runStrings(_ context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	sp := p.StringTable
	if sp == nil {
		return nil
	}
	target, ok, err := r.Target.Strings(sp.Name, sp.Dest)
	if err != nil {
		return err
	}
	if !ok {
		target, ok, err = r.Payload.Strings(sp.Name, Destination{})
		if err != nil {
			return err
		}
		if !ok {
			target = tlk.New()
		}
		opCtx.Log.Verbosef("%s: not present at %s, starting from payload", sp.Name, sp.Dest)
	}
	for _, op := range sp.Ops {
		out, err := op.ApplyStrings(opCtx, target)
		if err != nil {
			rp.failed(sp.Name, op.OpLabel(), err)
			return err
		}
		rp.record(sp.Name, op.OpLabel(), out)
	}
	return r.Target.SaveStrings(sp.Name, sp.Dest, target)
}

func (r *Runner) runInstalls(_ context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	for _, fi := range p.Installs {
		for _, f := range fi.Files {
			resource := path.Join(fi.Dest.String(), f.DestName())
			data, ok, err := r.Payload.Raw(f.Source, Destination{})
			if err != nil {
				return err
			}
			if !ok {
				err := fmt.Errorf("install %s: payload has no file %q", fi.Dest, f.Source)
				rp.failed(resource, f.Source, err)
				return err
			}
			if !f.Replace {
				if _, exists, err := r.Target.Raw(f.DestName(), fi.Dest); err != nil {
					return err
				} else if exists {
					warning := "destination file already exists"
					opCtx.Log.Warnf("install %s: %s", resource, warning)
					rp.skipped(resource, f.Source, warning)
					continue
				}
			}
			if err := r.Target.SaveRaw(f.DestName(), fi.Dest, data); err != nil {
				return err
			}
			if debug.Install() {
				debug.Logf("installed %s (%d bytes)\n", resource, len(data))
			}
			rp.applied(resource, f.Source)
		}
	}
	return nil
}

func (r *Runner) runTables(_ context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	for _, tp := range p.Tables {
		tb, err := r.seedTable(opCtx, tp)
		if err != nil {
			return err
		}
		for _, op := range tp.Ops {
			out, err := op.ApplyTable(opCtx, tb)
			if err != nil {
				rp.failed(tp.Name, op.OpLabel(), err)
				return err
			}
			if out.Status == patchop.Skipped {
				opCtx.Log.Warnf("%s %s: %s", tp.Name, op.OpLabel(), out.Warning)
			}
			rp.record(tp.Name, op.OpLabel(), out)
		}
		if err := r.Target.SaveTable(tp.Name, tp.Dest, tb); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runTrees(_ context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	for _, tp := range p.Trees {
		root, err := r.seedTree(opCtx, tp)
		if err != nil {
			return err
		}
		for _, op := range tp.Ops {
			out, err := op.ApplyTree(opCtx, root)
			if err != nil {
				rp.failed(tp.Name, op.OpLabel(), err)
				return err
			}
			if out.Status == patchop.Skipped {
				opCtx.Log.Warnf("%s %s: %s", tp.Name, op.OpLabel(), out.Warning)
			}
			rp.record(tp.Name, op.OpLabel(), out)
		}
		if err := r.Target.SaveTree(tp.Name, tp.Dest, root); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runScripts(ctx context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	sp := p.Scripts
	if sp == nil || len(sp.Scripts) == 0 {
		return nil
	}
	if r.Compiler == nil {
		return fmt.Errorf("patch compiles scripts but no compiler is configured")
	}
	for _, sc := range sp.Scripts {
		dest := sp.Dest
		if sc.Dest != nil {
			dest = *sc.Dest
		}
		compiled := compiledName(sc.Name)
		source, ok, err := r.Payload.Raw(sc.Name, Destination{})
		if err != nil {
			return err
		}
		if !ok {
			err := fmt.Errorf("compile: payload has no script %q", sc.Name)
			rp.failed(sc.Name, sc.Name, err)
			return err
		}
		if !sc.Replace {
			if _, exists, err := r.Target.Raw(compiled, dest); err != nil {
				return err
			} else if exists {
				warning := "destination file already exists"
				opCtx.Log.Warnf("compile %s: %s", sc.Name, warning)
				rp.skipped(sc.Name, sc.Name, warning)
				continue
			}
		}
		substituted, err := nss.Substitute(string(source), opCtx.Mem)
		if err != nil {
			rp.failed(sc.Name, sc.Name, err)
			return err
		}
		ncs, err := r.Compiler.Compile(ctx, sc.Name, []byte(substituted))
		if err != nil {
			// one script failing to compile does not stop the run
			opCtx.Log.Warnf("compile %s: %v", sc.Name, err)
			rp.skipped(sc.Name, sc.Name, err.Error())
			continue
		}
		if err := r.Target.SaveRaw(compiled, dest, ncs); err != nil {
			return err
		}
		rp.applied(sc.Name, sc.Name)
	}
	return nil
}

func (r *Runner) runSoundsets(_ context.Context, opCtx *patchop.Context, p *Patch, rp *Report) error {
	for _, sp := range p.Soundsets {
		s, err := r.seedSoundset(opCtx, sp)
		if err != nil {
			return err
		}
		for _, op := range sp.Ops {
			out, err := op.ApplySound(opCtx, s)
			if err != nil {
				rp.failed(sp.Name, op.OpLabel(), err)
				return err
			}
			rp.record(sp.Name, op.OpLabel(), out)
		}
		if err := r.Target.SaveSoundset(sp.Name, sp.Dest, s); err != nil {
			return err
		}
	}
	return nil
}

// seedTable resolves the working copy of a table: the destination's
// current copy, or a pristine payload copy when absent or when the patch
// forces replacement. Payload copies are cloned so the payload stays
// untouched.
func (r *Runner) seedTable(opCtx *patchop.Context, tp *TablePatch) (*twoda.Table, error) {
	return seedResource(opCtx, tp.Name, tp.Dest, tp.Replace,
		r.Target.Table, r.Payload.Table, (*twoda.Table).Clone)
}

func (r *Runner) seedTree(opCtx *patchop.Context, tp *TreePatch) (*gff.Node, error) {
	return seedResource(opCtx, tp.Name, tp.Dest, tp.Replace,
		r.Target.Tree, r.Payload.Tree, (*gff.Node).Clone)
}

func (r *Runner) seedSoundset(opCtx *patchop.Context, sp *SoundsetPatch) (*ssf.Soundset, error) {
	return seedResource(opCtx, sp.Name, sp.Dest, sp.Replace,
		r.Target.Soundset, r.Payload.Soundset, (*ssf.Soundset).Clone)
}

func seedResource[T any](opCtx *patchop.Context, name string, dst Destination, replace bool,
	fromTarget, fromPayload func(string, Destination) (T, bool, error),
	clone func(T) T) (T, error) {
	var zero T
	if !replace {
		v, ok, err := fromTarget(name, dst)
		if err != nil {
			return zero, err
		}
		if ok {
			return v, nil
		}
		opCtx.Log.Verbosef("%s: not present at %s, seeding from payload", name, dst)
	} else {
		opCtx.Log.Verbosef("%s: replace requested, seeding from payload", name)
	}
	v, ok, err := fromPayload(name, Destination{})
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("%s: payload has no pristine copy", name)
	}
	return clone(v), nil
}

// compiledName maps a script source name to its compiled artifact name.
func compiledName(source string) string {
	base := source
	if ext := path.Ext(base); strings.EqualFold(ext, ".nss") {
		base = base[:len(base)-len(ext)]
	}
	return base + ".ncs"
}
