package ast

import (
	"github.com/pipe01/cddl/internal/lexer"
)

type Pos lexer.Location

func (p Pos) Position() lexer.Location {
	return lexer.Location(p)
}

type Node interface {
	Position() lexer.Location
}

// Assignment is a top level item in a file: a *Group, *Array, *Variable or a
// standalone *Comment.
type Assignment interface {
	Node
	assignment()
}

type Comment struct {
	Pos

	Content string

	// Leading comments come before the node they're attached to, the rest
	// follow it on the same line.
	Leading bool
}

func (*Comment) assignment() {}

type Comments []*Comment

func (c *Comments) AttachComments(comments ...*Comment) {
	*c = append(*c, comments...)
}

// Group is a map-like record. It is both a top level assignment and, when
// written inline, a type.
type Group struct {
	Pos
	Modifiers

	Name             string
	IsChoiceAddition bool
	Properties       []Entry
	Comments
}

func (*Group) assignment() {}

func (*Group) Kind() Kind { return KindInlineGroup }

type Array struct {
	Pos
	Modifiers

	Name             string
	IsChoiceAddition bool
	Values           []Entry
	Comments
}

func (*Array) assignment() {}

func (*Array) Kind() Kind { return KindArray }

// Variable is a type alias.
type Variable struct {
	Pos

	Name             string
	IsChoiceAddition bool
	PropertyType     []Type
	Operator         *Operator
	Comments
}

func (*Variable) assignment() {}

// Entry is a member of a group or array body.
type Entry interface {
	Node
	entry()
}

// Property is a named field.
type Property struct {
	Pos

	HasCut     bool
	Occurrence Occurrence
	Name       string
	Type       []Type
	Operator   *Operator
	Comments
}

func (*Property) entry() {}

// Inclusion pulls another group or a bare type into the enclosing body without
// giving it a name.
type Inclusion struct {
	Pos

	Occurrence Occurrence
	Type       []Type
	Operator   *Operator
	Comments
}

func (*Inclusion) entry() {}

// Choice holds the alternatives of a "//" group choice. Every alternative is a
// *Property or an *Inclusion.
type Choice struct {
	Pos

	Alternatives []Entry
}

func (*Choice) entry() {}

// AssignmentName returns the name an assignment defines, or an empty string for
// standalone comments.
func AssignmentName(a Assignment) string {
	switch a := a.(type) {
	case *Group:
		return a.Name
	case *Array:
		return a.Name
	case *Variable:
		return a.Name
	}

	return ""
}
