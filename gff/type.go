package gff

import "fmt"

type Type int

const (
	ByteType Type = iota
	CharType
	WordType
	ShortType
	DWordType
	IntType
	DWord64Type
	Int64Type
	FloatType
	DoubleType
	StringType
	ResRefType
	LocStringType
	VoidType
	StructType
	ListType
	OrientationType
	PositionType
)

var typeNames = map[Type]string{
	ByteType:        "Byte",
	CharType:        "Char",
	WordType:        "Word",
	ShortType:       "Short",
	DWordType:       "DWORD",
	IntType:         "Int",
	DWord64Type:     "DWORD64",
	Int64Type:       "Int64",
	FloatType:       "Float",
	DoubleType:      "Double",
	StringType:      "ExoString",
	ResRefType:      "ResRef",
	LocStringType:   "ExoLocString",
	VoidType:        "Binary",
	StructType:      "Struct",
	ListType:        "List",
	OrientationType: "Orientation",
	PositionType:    "Position",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// ParseType maps a field type name to its Type. Names follow the
// conventional GFF spelling ("ExoString", "DWORD", ...).
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unrecognized field type %q", s)
}

func Types() []Type {
	res := make([]Type, 0, len(typeNames))
	for t := ByteType; t <= PositionType; t++ {
		res = append(res, t)
	}
	return res
}

// HasValue reports whether fields of this type carry a directly settable
// value. Structs and lists are containers and do not.
func (t Type) HasValue() bool {
	switch t {
	case StructType, ListType:
		return false
	default:
		return true
	}
}

// Unsigned reports whether the type stores its number in Node.Uint64.
func (t Type) Unsigned() bool {
	switch t {
	case ByteType, WordType, DWordType, DWord64Type:
		return true
	default:
		return false
	}
}

// Signed reports whether the type stores its number in Node.Int64.
func (t Type) Signed() bool {
	switch t {
	case CharType, ShortType, IntType, Int64Type:
		return true
	default:
		return false
	}
}

// FloatKind reports whether the type stores its number in Node.Float64.
func (t Type) FloatKind() bool {
	return t == FloatType || t == DoubleType
}

// VectorKind reports whether the type stores three floats in Node.Vec.
func (t Type) VectorKind() bool {
	return t == OrientationType || t == PositionType
}
