package gff

import (
	"fmt"
	"strconv"
	"strings"
)

// Path returns the node's full path from the root, segments joined by '/'.
// Struct children contribute their label, list children their index. The
// root itself has the empty path.
func (y *Node) Path() string {
	if y.Parent == nil {
		return ""
	}
	var seg string
	switch y.Parent.Type {
	case StructType:
		seg = y.Label
	case ListType:
		seg = strconv.Itoa(y.ParentIndex)
	default:
		panic("parent but not in container")
	}
	prefix := y.Parent.Path()
	if prefix == "" {
		return seg
	}
	return prefix + "/" + seg
}

// Segment is one step of a parsed path: a field label or a list index.
type Segment struct {
	Field string
	Index int
}

func (s Segment) IsIndex() bool {
	return s.Field == ""
}

func (s Segment) String() string {
	if s.IsIndex() {
		return strconv.Itoa(s.Index)
	}
	return s.Field
}

// ParsePath splits a '/'-separated path into segments. Purely numeric
// segments address list elements, everything else addresses struct fields.
// The empty path addresses the root.
func ParsePath(p string) ([]Segment, error) {
	p = strings.Trim(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return nil, nil
	}
	parts := strings.Split(p, "/")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("path %q has an empty segment", p)
		}
		if i, err := strconv.Atoi(part); err == nil {
			if i < 0 {
				return nil, fmt.Errorf("path %q has a negative index", p)
			}
			segs = append(segs, Segment{Index: i})
			continue
		}
		segs = append(segs, Segment{Field: part})
	}
	return segs, nil
}

// Walk resolves a parsed path against this node and returns the addressed
// node, or an error naming the first segment that does not resolve.
func (y *Node) Walk(segs []Segment) (*Node, error) {
	cur := y
	for i, seg := range segs {
		switch cur.Type {
		case StructType:
			if seg.IsIndex() {
				return nil, fmt.Errorf("path segment %d: struct %q needs a field label, got index %d",
					i, cur.Path(), seg.Index)
			}
			next := cur.Field(seg.Field)
			if next == nil {
				return nil, fmt.Errorf("path segment %d: no field %q in struct %q", i, seg.Field, cur.Path())
			}
			cur = next
		case ListType:
			if !seg.IsIndex() {
				return nil, fmt.Errorf("path segment %d: list %q needs an index, got %q",
					i, cur.Path(), seg.Field)
			}
			if seg.Index >= len(cur.Values) {
				return nil, fmt.Errorf("path segment %d: index %d out of range in list %q (len %d)",
					i, seg.Index, cur.Path(), len(cur.Values))
			}
			cur = cur.Values[seg.Index]
		default:
			return nil, fmt.Errorf("path segment %d: %s node %q has no children", i, cur.Type, cur.Path())
		}
	}
	return cur, nil
}

// WalkPath parses and resolves a path string in one call.
func (y *Node) WalkPath(p string) (*Node, error) {
	segs, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return y.Walk(segs)
}
