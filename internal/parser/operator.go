package parser

import (
	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
	"golang.org/x/exp/slices"
)

// isOperator reports whether a control operator like ".size" starts at the
// current token. Two dots in a row are a range instead.
func (p *Parser) isOperator() bool {
	return p.cur.Type == lexer.TokenDot && p.peek.Type == lexer.TokenIdentifier
}

func (p *Parser) parseOperator() (*ast.Operator, error) {
	dotTk := p.cur
	p.next()

	nameTk := p.cur

	typ, ok := ast.LookupOperator(nameTk.Contents)
	if !ok {
		return nil, p.errorAt(nameTk, &UnknownOperatorError{Name: nameTk.Contents})
	}
	p.next()

	valueTk := p.cur

	types, err := p.parsePropertyType()
	if err != nil {
		return nil, err
	}
	if len(types) != 1 {
		return nil, p.errorAt(valueTk, ErrSingleType)
	}

	val := types[0]

	if !slices.Contains(typ.ValueKinds(), val.Kind()) {
		return nil, p.errorAt(valueTk, &OperatorValueError{
			Operator: typ,
			Got:      val.Kind(),
		})
	}

	return &ast.Operator{
		Pos:   p.pos(dotTk),
		Type:  typ,
		Value: val,
	}, nil
}
