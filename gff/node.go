package gff

import (
	"fmt"
	"strconv"
	"strings"
)

// Node represents a single field in a GFF tree.
//
// The value fields form a tagged union selected by Type. Struct nodes use
// Fields, list nodes use Values; the remaining kinds use exactly one of
// String, Int64, Uint64, Float64, Loc, Data or Vec. Parent, ParentIndex and
// Label place the node in its tree.
type Node struct {
	Type        Type
	Label       string
	Parent      *Node
	ParentIndex int

	StructID uint32
	Fields   []*Node
	Values   []*Node

	String  string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Loc     *LocString
	Data    []byte
	Vec     [3]float64
}

func NewStruct(id uint32) *Node {
	return &Node{Type: StructType, StructID: id}
}

func NewList() *Node {
	return &Node{Type: ListType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromResRef(v string) *Node {
	return &Node{Type: ResRefType, String: v}
}

func FromInt(t Type, v int64) *Node {
	return &Node{Type: t, Int64: v}
}

func FromUint(t Type, v uint64) *Node {
	return &Node{Type: t, Uint64: v}
}

func FromFloat(t Type, v float64) *Node {
	return &Node{Type: t, Float64: v}
}

func FromLocString(ls *LocString) *Node {
	return &Node{Type: LocStringType, Loc: ls}
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Label = y.Label
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.StructID = y.StructID
	dst.Fields = make([]*Node, len(y.Fields))
	for i, f := range y.Fields {
		dstF := &Node{}
		f.CloneTo(dstF)
		dstF.Parent = dst
		dstF.ParentIndex = i
		dst.Fields[i] = dstF
	}
	dst.Values = make([]*Node, len(y.Values))
	for i, v := range y.Values {
		dstV := &Node{}
		v.CloneTo(dstV)
		dstV.Parent = dst
		dstV.ParentIndex = i
		dst.Values[i] = dstV
	}
	dst.String = y.String
	dst.Int64 = y.Int64
	dst.Uint64 = y.Uint64
	dst.Float64 = y.Float64
	dst.Loc = y.Loc.Clone()
	if y.Data != nil {
		dst.Data = append([]byte(nil), y.Data...)
	}
	dst.Vec = y.Vec
	return dst
}

// Field returns the child field with the given label of a struct node, or
// nil if absent.
func (y *Node) Field(label string) *Node {
	if y.Type != StructType {
		return nil
	}
	for _, f := range y.Fields {
		if f.Label == label {
			return f
		}
	}
	return nil
}

// AddField appends a child field to a struct node. The child's label must
// be nonempty and not collide with an existing field; collision handling
// with modify-conversion lives in the patch layer, not here.
func (y *Node) AddField(child *Node) error {
	if y.Type != StructType {
		return fmt.Errorf("cannot add field to %s node", y.Type)
	}
	if child.Label == "" {
		return fmt.Errorf("struct fields require a label")
	}
	if y.Field(child.Label) != nil {
		return fmt.Errorf("field %q already exists", child.Label)
	}
	child.Parent = y
	child.ParentIndex = len(y.Fields)
	y.Fields = append(y.Fields, child)
	return nil
}

// AppendStruct appends an anonymous struct to a list node and returns its
// index within the list. Lists contain only structs.
func (y *Node) AppendStruct(child *Node) (int, error) {
	if y.Type != ListType {
		return 0, fmt.Errorf("cannot append to %s node", y.Type)
	}
	if child.Type != StructType {
		return 0, fmt.Errorf("lists contain only structs, got %s", child.Type)
	}
	child.Label = ""
	child.Parent = y
	child.ParentIndex = len(y.Values)
	y.Values = append(y.Values, child)
	return child.ParentIndex, nil
}

// SetFromString assigns a leaf node's value from its string form. Numeric
// kinds parse the string, vector kinds expect three pipe-delimited floats,
// localized strings set the string reference.
func (y *Node) SetFromString(s string) error {
	switch {
	case y.Type.Unsigned():
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s value %q: %w", y.Type, s, err)
		}
		y.Uint64 = u
	case y.Type.Signed():
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s value %q: %w", y.Type, s, err)
		}
		y.Int64 = i
	case y.Type.FloatKind():
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%s value %q: %w", y.Type, s, err)
		}
		y.Float64 = f
	case y.Type.VectorKind():
		vec, err := ParseVec(s)
		if err != nil {
			return fmt.Errorf("%s value %q: %w", y.Type, s, err)
		}
		y.Vec = vec
	case y.Type == StringType, y.Type == ResRefType:
		y.String = s
	case y.Type == LocStringType:
		ref, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("%s strref %q: %w", y.Type, s, err)
		}
		if y.Loc == nil {
			y.Loc = &LocString{}
		}
		y.Loc.StrRef = int32(ref)
	case y.Type == VoidType:
		y.Data = []byte(s)
	default:
		return fmt.Errorf("cannot set value on %s node", y.Type)
	}
	return nil
}

// ValueString returns a leaf node's value in string form, the inverse of
// SetFromString where one exists.
func (y *Node) ValueString() string {
	switch {
	case y.Type.Unsigned():
		return strconv.FormatUint(y.Uint64, 10)
	case y.Type.Signed():
		return strconv.FormatInt(y.Int64, 10)
	case y.Type.FloatKind():
		return strconv.FormatFloat(y.Float64, 'g', -1, 64)
	case y.Type.VectorKind():
		parts := make([]string, 3)
		for i, f := range y.Vec {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, "|")
	case y.Type == StringType, y.Type == ResRefType:
		return y.String
	case y.Type == LocStringType:
		if y.Loc == nil {
			return "0"
		}
		return strconv.FormatInt(int64(y.Loc.StrRef), 10)
	case y.Type == VoidType:
		return string(y.Data)
	default:
		return ""
	}
}

// ParseVec parses a pipe-delimited float triple ("x|y|z").
func ParseVec(s string) ([3]float64, error) {
	var vec [3]float64
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return vec, fmt.Errorf("expected 3 pipe-delimited components, got %d", len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vec, err
		}
		vec[i] = f
	}
	return vec, nil
}
