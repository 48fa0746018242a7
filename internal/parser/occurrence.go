package parser

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
)

// parseOccurrence parses the occurrence indicator in front of an entry:
//
//	?    {0, inf}
//	*    {0, inf}
//	*m   {0, m}
//	+    {1, inf}
//	+m   {1, m}
//	n*   {n, inf}
//	n*m  {n, m}
//
// Entries without an indicator occur exactly once.
func (p *Parser) parseOccurrence() (ast.Occurrence, error) {
	start := p.cur

	var occ ast.Occurrence

	switch {
	case p.cur.Type == lexer.TokenQuestionMark:
		p.next()
		return ast.Occurrence{Min: 0, Max: ast.Unbounded}, nil

	case p.cur.Type == lexer.TokenAsterisk:
		p.next()
		occ = ast.Occurrence{Min: 0, Max: ast.Unbounded}

	case p.cur.Type == lexer.TokenPlus:
		p.next()
		occ = ast.Occurrence{Min: 1, Max: ast.Unbounded}

	case p.cur.Type == lexer.TokenNumber && p.peek.Type == lexer.TokenAsterisk:
		lower, err := p.parseOccurrenceBound()
		if err != nil {
			return occ, err
		}
		p.next() // *

		occ = ast.Occurrence{Min: lower, Max: ast.Unbounded}

	default:
		return ast.ExactlyOnce, nil
	}

	// A number right after the indicator is the maximum, unless it is the entry
	// itself as in "* 1: int" or "[* 5]"
	if p.cur.Type == lexer.TokenNumber && startsEntry(p.peek.Type) {
		upper, err := p.parseOccurrenceBound()
		if err != nil {
			return occ, err
		}

		occ.Max = ast.Bounded(upper)
	}

	if occ.Max.Below(occ.Min) {
		return occ, p.errorAt(start, &OccurrenceError{Min: occ.Min, Max: occ.Max.N})
	}

	return occ, nil
}

func (p *Parser) parseOccurrenceBound() (uint32, error) {
	tk := p.cur

	n, err := parseInt(tk.Contents)
	if err == nil {
		var bound uint32

		bound, err = safecast.Conv[uint32](n)
		if err == nil {
			p.next()
			return bound, nil
		}
	}

	return 0, p.errorAt(tk, fmt.Errorf("invalid occurrence bound %q: %w", tk.Contents, err))
}

func startsEntry(typ lexer.TokenType) bool {
	switch typ {
	case lexer.TokenIdentifier, lexer.TokenQuotedString, lexer.TokenNumber, lexer.TokenFloat,
		lexer.TokenHashtag, lexer.TokenTilde,
		lexer.TokenParenOpen, lexer.TokenBraceOpen, lexer.TokenBracketOpen:
		return true
	}

	return false
}

func startsOccurrence(typ lexer.TokenType) bool {
	return typ == lexer.TokenQuestionMark || typ == lexer.TokenAsterisk || typ == lexer.TokenPlus
}
