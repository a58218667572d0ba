package patchop

import (
	"github.com/kotormods/kpatch/memory"
	"github.com/kotormods/kpatch/patchlog"
)

// Context carries the run-scoped collaborators every instruction needs.
type Context struct {
	Mem *memory.Memory
	Log *patchlog.Logger
}

func NewContext(mem *memory.Memory, log *patchlog.Logger) *Context {
	if log == nil {
		log = patchlog.Discard()
	}
	return &Context{Mem: mem, Log: log}
}

type Status int

const (
	Applied Status = iota
	Skipped
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	default:
		return "<unknown status>"
	}
}

// Outcome is the per-instruction result for the non-fatal cases. Fatal
// problems are returned as errors and abort the run.
type Outcome struct {
	Status  Status
	Warning string
}

func applied() Outcome {
	return Outcome{Status: Applied}
}

func skipped(reason string) Outcome {
	return Outcome{Status: Skipped, Warning: reason}
}

// MemoryOut declares a token memory write performed after an instruction's
// mutation: the produced row index (Column empty) or the target row's value
// in Column is stored into 2DAMEMORY slot Slot.
type MemoryOut struct {
	Slot   int
	Column string
}
