package ast

import "golang.org/x/exp/slices"

type Kind int

const (
	KindPrimitive Kind = iota
	KindLiteral
	KindGroup
	KindInlineGroup
	KindArray
	KindRange
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindLiteral:
		return "literal"
	case KindGroup:
		return "group"
	case KindInlineGroup:
		return "inline group"
	case KindArray:
		return "array"
	case KindRange:
		return "range"
	case KindTag:
		return "tag"
	}

	return "<unknown>"
}

// Modifiers are the bits every type reference can carry regardless of its kind.
type Modifiers struct {
	// Unwrapped is set on references prefixed with "~".
	Unwrapped bool
	Operator  *Operator
}

func (m *Modifiers) Mods() *Modifiers {
	return m
}

// Type is a single alternative of a type choice: *Primitive, *Literal,
// *GroupRef, *Group, *Array, *Range or *Tag.
type Type interface {
	Node
	Kind() Kind
	Mods() *Modifiers
}

// Primitive is one of the names from the standard prelude, like "tstr" or
// "uint".
type Primitive struct {
	Pos
	Modifiers

	Name string
}

func (*Primitive) Kind() Kind { return KindPrimitive }

type LiteralType int

const (
	LiteralString LiteralType = iota
	LiteralInt
	LiteralFloat
	LiteralBool
)

func (t LiteralType) String() string {
	switch t {
	case LiteralString:
		return "string"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralBool:
		return "bool"
	}

	return "<unknown>"
}

type Literal struct {
	Pos
	Modifiers

	Type LiteralType

	// Raw is the literal as written, without quotes for strings. Hex and binary
	// integers keep their prefix here.
	Raw string

	Int   int64
	Float float64
	Bool  bool

	// Overflow is set for integers that don't fit in Int, which is then zero.
	// Raw still holds the exact value.
	Overflow bool
}

func (*Literal) Kind() Kind { return KindLiteral }

func (l *Literal) IsNumeric() bool {
	return l.Type == LiteralInt || l.Type == LiteralFloat
}

// GroupRef references another assignment by name.
type GroupRef struct {
	Pos
	Modifiers

	Name string
}

func (*GroupRef) Kind() Kind { return KindGroup }

// Range bounds are either numeric *Literal or *GroupRef values.
type Range struct {
	Pos
	Modifiers

	Min, Max  Type
	Inclusive bool
}

func (*Range) Kind() Kind { return KindRange }

// Tag is a CBOR tag like #6.32(tstr), where 6 is the major type and 32 is the
// numeric part.
type Tag struct {
	Pos
	Modifiers

	Major          uint64
	NumericPart    uint64
	HasNumericPart bool

	// TypePart is nil when the tag has no parenthesized type.
	TypePart Type
}

func (*Tag) Kind() Kind { return KindTag }

var primitives = []string{
	"any",
	"uint", "nint", "int",
	"bstr", "bytes", "tstr", "text",
	"tdate", "time", "number",
	"biguint", "bignint", "bigint", "integer", "unsigned",
	"decfrac", "bigfloat",
	"eb64url", "eb64legacy", "eb16", "encoded-cbor",
	"uri", "b64url", "b64legacy", "regexp", "mime-message", "cbor-any",
	"float16", "float32", "float64", "float16-32", "float32-64", "float",
	"false", "true", "bool",
	"nil", "null", "undefined",
}

// IsPrimitive reports whether name is defined by the standard prelude.
func IsPrimitive(name string) bool {
	return slices.Contains(primitives, name)
}

// Primitives returns the names of the standard prelude.
func Primitives() []string {
	return slices.Clone(primitives)
}
