package nss

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultTimeout bounds one external compiler invocation.
const DefaultTimeout = 30 * time.Second

// Compiler turns substituted script source into compiled bytes. The
// returned error carries the compiler's diagnostics.
type Compiler interface {
	Compile(ctx context.Context, name string, source []byte) ([]byte, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(ctx context.Context, name string, source []byte) ([]byte, error)

func (f CompilerFunc) Compile(ctx context.Context, name string, source []byte) ([]byte, error) {
	return f(ctx, name, source)
}

// External runs a compiler executable. The source is written to a
// temporary directory, the command is invoked as
//
//	<path> <args...> <src.nss> <out.ncs>
//
// and the output file is read back. Each invocation is bounded by Timeout
// so a hung compiler fails that one script instead of the whole run.
type External struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

func (e *External) Compile(ctx context.Context, name string, source []byte) ([]byte, error) {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "kpatch-nss-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	base := name
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	srcPath := filepath.Join(dir, base+".nss")
	outPath := filepath.Join(dir, base+".ncs")
	if err := os.WriteFile(srcPath, source, 0644); err != nil {
		return nil, err
	}

	args := append(append([]string(nil), e.Args...), srcPath, outPath)
	cmd := exec.CommandContext(ctx, e.Path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("compiler timed out after %s on %s", timeout, name)
		}
		return nil, fmt.Errorf("compiler failed on %s: %w\n%s", name, err, out.String())
	}
	compiled, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("compiler produced no output for %s: %w\n%s", name, err, out.String())
	}
	return compiled, nil
}
