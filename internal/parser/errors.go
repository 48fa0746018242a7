package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
)

var ErrSingleType = errors.New("expected a single type, found a type choice")

type ParserError struct {
	Inner    error
	Location lexer.Location

	// Excerpt is the offending source line with a caret under the error column.
	Excerpt string
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location
}

type UnexpectedTokenError struct {
	Got      lexer.Token
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	if e.Got.Type == lexer.TokenEOF {
		return fmt.Sprintf("expected %s, found end of file", e.Expected)
	}

	return fmt.Sprintf("expected %s, found %q (%s)", e.Expected, e.Got.Contents, e.Got.Type)
}

type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown control operator %q", "."+e.Name)
}

// OperatorValueError is returned when an operator is given a value of a kind it
// doesn't accept, like ".regexp uint".
type OperatorValueError struct {
	Operator ast.OperatorType
	Got      ast.Kind
}

func (e *OperatorValueError) Error() string {
	expected := make([]string, 0, len(e.Operator.ValueKinds()))
	for _, k := range e.Operator.ValueKinds() {
		expected = append(expected, k.String())
	}

	return fmt.Sprintf("operator .%s expects a value of kind %s, found %s", e.Operator, strings.Join(expected, " or "), e.Got)
}

type OccurrenceError struct {
	Min, Max uint32
}

func (e *OccurrenceError) Error() string {
	return fmt.Sprintf("occurrence minimum %d is larger than its maximum %d", e.Min, e.Max)
}

type RangeBoundError struct {
	Got ast.Kind
}

func (e *RangeBoundError) Error() string {
	return fmt.Sprintf("range bounds must be numbers or names, found %s", e.Got)
}
