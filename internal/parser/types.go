package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
)

// parsePropertyTypes parses a "/" separated type choice. An operator following
// the only alternative is returned separately so it can be applied to the whole
// value, in a real choice it belongs to the alternative it follows.
func (p *Parser) parsePropertyTypes() ([]ast.Type, *ast.Operator, error) {
	var types []ast.Type
	var operator *ast.Operator

	isChoice := false

	for {
		alt, err := p.parsePropertyType()
		if err != nil {
			return nil, nil, err
		}

		if p.isOperator() {
			opTk := p.cur

			op, err := p.parseOperator()
			if err != nil {
				return nil, nil, err
			}

			if isChoice || p.isTypeChoice() {
				if err := attachOperator(alt[len(alt)-1], op); err != nil {
					return nil, nil, p.errorAt(opTk, err)
				}
			} else {
				operator = op
			}
		}

		types = append(types, alt...)

		if !p.isTypeChoice() {
			break
		}

		isChoice = true
		p.next()
	}

	return types, operator, nil
}

func (p *Parser) isTypeChoice() bool {
	return p.cur.Type == lexer.TokenSlash && p.peek.Type != lexer.TokenSlash
}

func attachOperator(t ast.Type, op *ast.Operator) error {
	mods := t.Mods()
	if mods.Operator != nil {
		return fmt.Errorf("type already has a .%s operator", mods.Operator.Type)
	}

	mods.Operator = op
	return nil
}

// parsePropertyType parses a single alternative of a type choice. Blocks may
// expand to several types, like "(int / tstr)".
func (p *Parser) parsePropertyType() ([]ast.Type, error) {
	unwrapped := false
	if p.cur.Type == lexer.TokenTilde {
		unwrapped = true
		p.next()
	}

	start := p.cur

	var types []ast.Type

	switch start.Type {
	case lexer.TokenParenOpen, lexer.TokenBraceOpen, lexer.TokenBracketOpen:
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		types = seg

	case lexer.TokenHashtag:
		tag, err := p.parseTag()
		if err != nil {
			return nil, err
		}
		types = []ast.Type{tag}

	case lexer.TokenIdentifier, lexer.TokenQuotedString, lexer.TokenNumber, lexer.TokenFloat:
		t, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		types = []ast.Type{t}

	default:
		return nil, p.unexpected("a type")
	}

	if unwrapped {
		for _, t := range types {
			t.Mods().Unwrapped = true
		}
	}

	if len(types) == 1 && p.cur.Type == lexer.TokenDot && p.peek.Type == lexer.TokenDot {
		r, err := p.parseRange(start, types[0])
		if err != nil {
			return nil, err
		}
		types[0] = r
	}

	return types, nil
}

// parseAtom parses a type made up of a single token.
func (p *Parser) parseAtom() (ast.Type, error) {
	tk := p.cur
	pos := p.pos(tk)

	switch tk.Type {
	case lexer.TokenIdentifier:
		p.next()

		switch {
		case tk.Contents == "true" || tk.Contents == "false":
			return &ast.Literal{
				Pos:  pos,
				Type: ast.LiteralBool,
				Raw:  tk.Contents,
				Bool: tk.Contents == "true",
			}, nil

		case ast.IsPrimitive(tk.Contents):
			return &ast.Primitive{Pos: pos, Name: tk.Contents}, nil
		}

		return &ast.GroupRef{Pos: pos, Name: tk.Contents}, nil

	case lexer.TokenQuotedString:
		p.next()

		return &ast.Literal{
			Pos:  pos,
			Type: ast.LiteralString,
			Raw:  tk.Contents,
		}, nil

	case lexer.TokenNumber:
		n, err := parseInt(tk.Contents)
		overflow := errors.Is(err, strconv.ErrRange)
		if err != nil && !overflow {
			return nil, p.errorAt(tk, fmt.Errorf("invalid integer: %w", err))
		}
		if overflow {
			n = 0
		}
		p.next()

		return &ast.Literal{
			Pos:      pos,
			Type:     ast.LiteralInt,
			Raw:      tk.Contents,
			Int:      n,
			Overflow: overflow,
		}, nil

	case lexer.TokenFloat:
		f, err := strconv.ParseFloat(tk.Contents, 64)
		if err != nil {
			return nil, p.errorAt(tk, fmt.Errorf("invalid float: %w", err))
		}
		p.next()

		return &ast.Literal{
			Pos:   pos,
			Type:  ast.LiteralFloat,
			Raw:   tk.Contents,
			Float: f,
		}, nil
	}

	return nil, p.unexpected("a type")
}

// parseInt parses decimal, hexadecimal (0x) and binary (0b) integers. Leading
// zeros don't switch to octal.
func parseInt(raw string) (int64, error) {
	digits := strings.TrimPrefix(raw, "-")

	base := 10
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXbB", rune(digits[1])) {
		base = 0
	}

	return strconv.ParseInt(raw, base, 64)
}

// parseRange parses the ".." or "..." that follows lower, along with the upper
// bound.
func (p *Parser) parseRange(lowerTk lexer.Token, lower ast.Type) (*ast.Range, error) {
	if !isRangeBound(lower) {
		return nil, p.errorAt(lowerTk, &RangeBoundError{Got: lower.Kind()})
	}

	p.next()
	p.next()

	inclusive := true
	if p.cur.Type == lexer.TokenDot {
		inclusive = false
		p.next()
	}

	upperTk := p.cur

	var upper []ast.Type

	switch upperTk.Type {
	case lexer.TokenParenOpen:
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		upper = seg

	case lexer.TokenIdentifier, lexer.TokenNumber, lexer.TokenFloat:
		t, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		upper = []ast.Type{t}

	default:
		return nil, p.unexpected("a range bound")
	}

	if len(upper) != 1 {
		return nil, p.errorAt(upperTk, ErrSingleType)
	}
	if !isRangeBound(upper[0]) {
		return nil, p.errorAt(upperTk, &RangeBoundError{Got: upper[0].Kind()})
	}

	return &ast.Range{
		Pos:       ast.Pos(lower.Position()),
		Min:       lower,
		Max:       upper[0],
		Inclusive: inclusive,
	}, nil
}

func isRangeBound(t ast.Type) bool {
	switch t := t.(type) {
	case *ast.Literal:
		return t.IsNumeric()
	case *ast.GroupRef:
		return true
	}

	return false
}

// parseTag parses tags in the form #M, #M.N and #M.N(type).
func (p *Parser) parseTag() (*ast.Tag, error) {
	tag := &ast.Tag{
		Pos: p.pos(p.cur),
	}
	p.next() // #

	numTk := p.cur

	var major, numeric string

	switch numTk.Type {
	case lexer.TokenNumber:
		major = numTk.Contents

	case lexer.TokenFloat:
		major, numeric, _ = strings.Cut(numTk.Contents, ".")
		tag.HasNumericPart = true

	default:
		return nil, p.unexpected("a tag number")
	}

	var err error

	tag.Major, err = strconv.ParseUint(major, 10, 64)
	if err == nil && tag.Major > 7 {
		err = errors.New("major type must be between 0 and 7")
	}
	if err == nil && tag.HasNumericPart {
		tag.NumericPart, err = strconv.ParseUint(numeric, 10, 64)
	}
	if err != nil {
		return nil, p.errorAt(numTk, fmt.Errorf("invalid tag %q: %w", numTk.Contents, err))
	}

	p.next()

	if p.cur.Type != lexer.TokenParenOpen {
		return tag, nil
	}
	p.next()

	typeTk := p.cur

	types, op, err := p.parsePropertyTypes()
	if err != nil {
		return nil, err
	}
	if len(types) != 1 {
		return nil, p.errorAt(typeTk, ErrSingleType)
	}
	if op != nil {
		if err := attachOperator(types[0], op); err != nil {
			return nil, p.errorAt(typeTk, err)
		}
	}

	if _, err := p.expect(lexer.TokenParenClose, `")"`); err != nil {
		return nil, err
	}

	tag.TypePart = types[0]

	return tag, nil
}
