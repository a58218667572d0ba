package patchop

import (
	"fmt"
	"strconv"

	"github.com/kotormods/kpatch/ssf"
)

// SoundOp is one SSF instruction.
type SoundOp interface {
	OpLabel() string
	ApplySound(ctx *Context, s *ssf.Soundset) (Outcome, error)
}

// SetSound assigns a string reference to one soundset entry. The value
// resolves with the same token rules as everywhere else.
type SetSound struct {
	Label string
	Index int
	Value Value
}

func (s *SetSound) OpLabel() string {
	return s.Label
}

func (s *SetSound) ApplySound(ctx *Context, target *ssf.Soundset) (Outcome, error) {
	rc := NewResolution(ctx.Mem)
	v, err := s.Value.Resolve(rc)
	if err != nil {
		return Outcome{}, fmt.Errorf("SetSound %s: %w", s.Label, err)
	}
	ref, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return Outcome{}, fmt.Errorf("SetSound %s: entry %d value %q is not a string reference",
			s.Label, s.Index, v)
	}
	if err := target.Set(s.Index, int32(ref)); err != nil {
		return Outcome{}, fmt.Errorf("SetSound %s: %w", s.Label, err)
	}
	return applied(), nil
}
