package parser

import (
	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
)

var closerNames = map[lexer.TokenType]string{
	lexer.TokenParenClose:   `")"`,
	lexer.TokenBraceClose:   `"}"`,
	lexer.TokenBracketClose: `"]"`,
}

// openSegment consumes the opening of a block and returns the tokens that
// close it, innermost first. It returns nil if there is no block.
func (p *Parser) openSegment() []lexer.TokenType {
	switch p.cur.Type {
	case lexer.TokenBraceOpen:
		p.next()

		if p.cur.Type == lexer.TokenParenOpen {
			p.next()
			return []lexer.TokenType{lexer.TokenParenClose, lexer.TokenBraceClose}
		}
		return []lexer.TokenType{lexer.TokenBraceClose}

	case lexer.TokenParenOpen:
		p.next()
		return []lexer.TokenType{lexer.TokenParenClose}

	case lexer.TokenBracketOpen:
		p.next()
		return []lexer.TokenType{lexer.TokenBracketClose}
	}

	return nil
}

// parseSegment parses a block delimited by braces, brackets or parentheses.
// Arrays and groups come out as a single type, parenthesized type choices like
// "(int / tstr)" as the types they contain.
func (p *Parser) parseSegment() ([]ast.Type, error) {
	open := p.cur
	inner := p.peek

	closing := p.openSegment()
	if closing == nil {
		return nil, p.unexpected(`"{", "(" or "["`)
	}

	entries, dangling, err := p.parseEntries(closing[0], nil)
	if err != nil {
		return nil, err
	}

	if len(closing) == 2 {
		p.next() // )

		// "{( ... )}" is a plain group, but more entries may follow the
		// parenthesized part, which then becomes an entry of its own
		if p.cur.Type != lexer.TokenBraceClose {
			first := &ast.Inclusion{
				Pos:        p.pos(inner),
				Occurrence: ast.ExactlyOnce,
				Type: []ast.Type{&ast.Group{
					Pos:        p.pos(inner),
					Properties: entries,
					Comments:   dangling,
				}},
			}

			entries, dangling, err = p.parseEntries(lexer.TokenBraceClose, first)
			if err != nil {
				return nil, err
			}
		}
	}

	p.next() // closing token

	pos := p.pos(open)

	switch closing[len(closing)-1] {
	case lexer.TokenBracketClose:
		return []ast.Type{&ast.Array{
			Pos:      pos,
			Values:   entries,
			Comments: dangling,
		}}, nil

	case lexer.TokenParenClose:
		if len(dangling) == 0 {
			if types, ok := collapseParens(entries); ok {
				return types, nil
			}
		}

	case lexer.TokenBraceClose:
		if len(dangling) == 0 {
			if t, ok := simplifyBody(entries); ok {
				return []ast.Type{t}, nil
			}
		}
	}

	return []ast.Type{&ast.Group{
		Pos:        pos,
		Properties: entries,
		Comments:   dangling,
	}}, nil
}

// parseEntries parses the members of a block up to, but not including, end.
// Comments after the last member are returned separately. If first is not nil
// it is taken as an entry that has already been parsed.
func (p *Parser) parseEntries(end lexer.TokenType, first entryNode) (entries []ast.Entry, dangling []*ast.Comment, err error) {
	var choice *ast.Choice

	for {
		entry := first
		first = nil

		if entry == nil {
			leading := p.parseLeadingComments()

			if p.cur.Type == end {
				return entries, leading, nil
			}

			entry, err = p.parseEntry()
			if err != nil {
				return nil, nil, err
			}

			entry.AttachComments(leading...)
		}

		entry.AttachComments(p.parseTrailingComments()...)

		if choice != nil {
			choice.Alternatives = append(choice.Alternatives, entry)
		} else {
			entries = append(entries, entry)
		}

		if p.isGroupChoice() {
			p.next()
			p.next()

			if choice == nil {
				choice = &ast.Choice{
					Pos:          ast.Pos(entry.Position()),
					Alternatives: []ast.Entry{entry},
				}
				entries[len(entries)-1] = choice
			}
			continue
		}
		choice = nil

		if err := p.parseSeparator(entry, end); err != nil {
			return nil, nil, err
		}
	}
}

func (p *Parser) isGroupChoice() bool {
	return p.cur.Type == lexer.TokenSlash && p.peek.Type == lexer.TokenSlash
}

// parseGroupChoice parses the remaining alternatives of a "//" choice written
// directly on the right hand side of an assignment, like "a = b // c".
func (p *Parser) parseGroupChoice(start lexer.Token, first value) (value, error) {
	pos := p.pos(start)

	choice := &ast.Choice{
		Pos: pos,
		Alternatives: []ast.Entry{&ast.Inclusion{
			Pos:        pos,
			Occurrence: ast.ExactlyOnce,
			Type:       first.types,
			Operator:   first.operator,
		}},
	}

	for p.isGroupChoice() {
		p.next()
		p.next()

		entry, err := p.parseEntry()
		if err != nil {
			return value{}, err
		}

		choice.Alternatives = append(choice.Alternatives, entry)
	}

	return value{
		types: []ast.Type{&ast.Group{
			Pos:        pos,
			Properties: []ast.Entry{choice},
		}},
	}, nil
}

// parseSeparator consumes the comma between two entries. The comma may be left
// out when the next entry starts on a new line, or when the previous entry is
// more than a lone name.
func (p *Parser) parseSeparator(prev entryNode, end lexer.TokenType) error {
	switch {
	case p.cur.Type == lexer.TokenComma:
		p.next()

		if prev != nil {
			prev.AttachComments(p.parseTrailingComments()...)
		}
		return nil

	case p.cur.Type == end:
		return nil

	case p.cur.NewlinesBefore > 0 && p.cur.Type != lexer.TokenEOF:
		return nil
	}

	if isBareName(prev) {
		switch p.cur.Type {
		case lexer.TokenIdentifier, lexer.TokenQuotedString, lexer.TokenNumber, lexer.TokenFloat:
			return p.unexpected(`":" or "=>"`)
		}
	} else if startsEntry(p.cur.Type) || startsOccurrence(p.cur.Type) {
		return nil
	}

	return p.unexpected(`"," or ` + closerNames[end])
}

// isBareName reports whether e is a lone name like "bar", which is most likely
// a property key missing its separator when more tokens follow it.
func isBareName(e entryNode) bool {
	inc, ok := e.(*ast.Inclusion)
	if !ok || inc.Occurrence != ast.ExactlyOnce || inc.Operator != nil || len(inc.Type) != 1 {
		return false
	}

	switch t := inc.Type[0].(type) {
	case *ast.GroupRef:
		return t.Modifiers == ast.Modifiers{}
	case *ast.Primitive:
		return t.Modifiers == ast.Modifiers{}
	}

	return false
}

func (p *Parser) parseEntry() (entryNode, error) {
	start := p.cur

	occ, err := p.parseOccurrence()
	if err != nil {
		return nil, err
	}

	if p.isPropertyKey() {
		return p.parseProperty(occ)
	}

	val, err := p.parseAssignmentValue()
	if err != nil {
		return nil, err
	}

	return &ast.Inclusion{
		Pos:        p.pos(start),
		Occurrence: occ,
		Type:       val.types,
		Operator:   val.operator,
	}, nil
}

func (p *Parser) isPropertyKey() bool {
	switch p.cur.Type {
	case lexer.TokenIdentifier, lexer.TokenQuotedString, lexer.TokenNumber, lexer.TokenFloat:
	default:
		return false
	}

	switch p.peek.Type {
	case lexer.TokenColon, lexer.TokenCaret, lexer.TokenEquals:
		return true
	}

	return false
}

// parseProperty parses "key: value", "key => value" and "key ^ => value".
func (p *Parser) parseProperty(occ ast.Occurrence) (*ast.Property, error) {
	nameTk := p.cur
	p.next()

	prop := &ast.Property{
		Pos:        p.pos(nameTk),
		Occurrence: occ,
		Name:       nameTk.Contents,
	}

	switch p.cur.Type {
	case lexer.TokenColon:
		prop.HasCut = true
		p.next()

	case lexer.TokenCaret:
		prop.HasCut = true
		p.next()

		if err := p.expectArrow(); err != nil {
			return nil, err
		}

	default:
		if err := p.expectArrow(); err != nil {
			return nil, err
		}
	}

	val, err := p.parseAssignmentValue()
	if err != nil {
		return nil, err
	}

	prop.Type = val.types
	prop.Operator = val.operator

	return prop, nil
}

func (p *Parser) expectArrow() error {
	if p.cur.Type != lexer.TokenEquals || p.peek.Type != lexer.TokenAngleClose {
		return p.unexpected(`"=>"`)
	}

	p.next()
	p.next()
	return nil
}

// collapseParens unwraps parenthesized bodies that hold nothing but types, like
// "(int / tstr)", "(a // b)" or "(float .ge 0.0)".
func collapseParens(entries []ast.Entry) ([]ast.Type, bool) {
	if len(entries) != 1 {
		return nil, false
	}

	switch e := entries[0].(type) {
	case *ast.Inclusion:
		if !isPlainInclusion(e) {
			return nil, false
		}

		if e.Operator != nil {
			if len(e.Type) != 1 || e.Type[0].Mods().Operator != nil {
				return nil, false
			}

			e.Type[0].Mods().Operator = e.Operator
		}

		return e.Type, true

	case *ast.Choice:
		var types []ast.Type

		for _, alt := range e.Alternatives {
			inc, ok := alt.(*ast.Inclusion)
			if !ok || !isPlainInclusion(inc) || inc.Operator != nil {
				return nil, false
			}

			types = append(types, inc.Type...)
		}

		return types, true
	}

	return nil, false
}

// simplifyBody turns a group whose only member is a primitive or literal, like
// "{ int }", into that type.
func simplifyBody(entries []ast.Entry) (ast.Type, bool) {
	if len(entries) != 1 {
		return nil, false
	}

	inc, ok := entries[0].(*ast.Inclusion)
	if !ok || !isPlainInclusion(inc) || inc.Operator != nil || len(inc.Type) != 1 {
		return nil, false
	}

	switch t := inc.Type[0].(type) {
	case *ast.Primitive, *ast.Literal:
		return t, true
	}

	return nil, false
}

func isPlainInclusion(inc *ast.Inclusion) bool {
	return inc.Occurrence == ast.ExactlyOnce && len(inc.Comments) == 0
}
