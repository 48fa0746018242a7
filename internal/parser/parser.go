package parser

import (
	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cddl.parser")

type commentable interface {
	AttachComments(comments ...*ast.Comment)
}

type commentedAssignment interface {
	ast.Assignment
	commentable
}

type entryNode interface {
	ast.Entry
	commentable
}

// Parser is a recursive descent parser over the tokens of a single file. It
// looks at most one token ahead and stops at the first error, after which it
// must be thrown away.
type Parser struct {
	lex *lexer.Lexer

	cur, peek lexer.Token
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		lex: l,
	}
	p.cur = l.Next()
	p.peek = l.Next()

	return p
}

// Parse parses the CDDL source in src. fileName is only used for error
// locations.
//
// Comments at the top level always become standalone *ast.Comment assignments,
// even when they sit directly above a rule. Comments on the same line as the
// end of a rule are attached to it instead.
func Parse(fileName string, src []byte) ([]ast.Assignment, error) {
	return New(lexer.New(src, fileName)).Parse()
}

func (p *Parser) Parse() ([]ast.Assignment, error) {
	assignments := []ast.Assignment{}

	for p.cur.Type != lexer.TokenEOF {
		if p.cur.Type == lexer.TokenComment {
			assignments = append(assignments, p.comment(true))
			continue
		}

		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		assignments = append(assignments, a)
	}

	log.Debugf("parsed %d assignments from %s", len(assignments), p.lex.FileName())

	return assignments, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) pos(tk lexer.Token) ast.Pos {
	return ast.Pos(p.lex.Locate(tk.Offset))
}

func (p *Parser) errorAt(tk lexer.Token, err error) *ParserError {
	return &ParserError{
		Inner:    err,
		Location: p.lex.Locate(tk.Offset),
		Excerpt:  p.lex.Excerpt(tk.Offset),
	}
}

func (p *Parser) unexpected(expected string) *ParserError {
	return p.errorAt(p.cur, &UnexpectedTokenError{
		Got:      p.cur,
		Expected: expected,
	})
}

func (p *Parser) expect(typ lexer.TokenType, expected string) (lexer.Token, error) {
	tk := p.cur
	if tk.Type != typ {
		return tk, p.unexpected(expected)
	}

	p.next()
	return tk, nil
}

func (p *Parser) comment(leading bool) *ast.Comment {
	c := &ast.Comment{
		Pos:     p.pos(p.cur),
		Content: p.cur.Contents,
		Leading: leading,
	}
	p.next()

	return c
}

func (p *Parser) parseLeadingComments() (comments []*ast.Comment) {
	for p.cur.Type == lexer.TokenComment {
		comments = append(comments, p.comment(true))
	}

	return
}

// parseTrailingComments reads a comment that sits on the same line as the
// previous token.
func (p *Parser) parseTrailingComments() (comments []*ast.Comment) {
	for p.cur.Type == lexer.TokenComment && p.cur.NewlinesBefore == 0 {
		comments = append(comments, p.comment(false))
	}

	return
}

func (p *Parser) parseAssignment() (ast.Assignment, error) {
	nameTk, err := p.expect(lexer.TokenIdentifier, "an identifier")
	if err != nil {
		return nil, err
	}

	isChoiceAddition := false

	switch {
	case p.cur.Type == lexer.TokenEquals:
		p.next()

	case p.cur.Type == lexer.TokenSlash && p.peek.Type == lexer.TokenEquals:
		p.next()
		p.next()
		isChoiceAddition = true

	case p.cur.Type == lexer.TokenSlash && p.peek.Type == lexer.TokenSlash:
		p.next()
		p.next()
		if _, err := p.expect(lexer.TokenEquals, `"="`); err != nil {
			return nil, err
		}
		isChoiceAddition = true

	default:
		return nil, p.unexpected(`"=", "/=" or "//="`)
	}

	valueTk := p.cur

	val, err := p.parseAssignmentValue()
	if err != nil {
		return nil, err
	}

	if p.isGroupChoice() {
		val, err = p.parseGroupChoice(valueTk, val)
		if err != nil {
			return nil, err
		}
	}

	a := val.bind(nameTk.Contents, p.pos(nameTk), isChoiceAddition)
	a.AttachComments(p.parseTrailingComments()...)

	return a, nil
}

// value is whatever sits on the right hand side of an assignment or a property
// key: one or more types plus an operator that applies to the whole value.
type value struct {
	types    []ast.Type
	operator *ast.Operator
}

// bind turns a value into the assignment called name. Blocks become groups and
// arrays of their own, everything else is a type alias.
func (v value) bind(name string, pos ast.Pos, isChoiceAddition bool) commentedAssignment {
	if len(v.types) == 1 && v.operator == nil {
		switch t := v.types[0].(type) {
		case *ast.Group:
			if t.Modifiers == (ast.Modifiers{}) && t.Name == "" {
				t.Pos = pos
				t.Name = name
				t.IsChoiceAddition = isChoiceAddition
				return t
			}

		case *ast.Array:
			if t.Modifiers == (ast.Modifiers{}) && t.Name == "" {
				t.Pos = pos
				t.Name = name
				t.IsChoiceAddition = isChoiceAddition
				return t
			}
		}
	}

	return &ast.Variable{
		Pos:              pos,
		Name:             name,
		IsChoiceAddition: isChoiceAddition,
		PropertyType:     v.types,
		Operator:         v.operator,
	}
}

func (p *Parser) parseAssignmentValue() (value, error) {
	types, op, err := p.parsePropertyTypes()
	if err != nil {
		return value{}, err
	}

	return value{types, op}, nil
}
