package lexer

import (
	"strings"
	"unicode/utf8"
)

// Lexer turns CDDL source into tokens, one per call to Next. It never fails:
// characters it doesn't understand come out as TokenIllegal.
type Lexer struct {
	fileName string
	file     []byte

	pos int

	lineStarts []int
}

func New(file []byte, fileName string) *Lexer {
	return &Lexer{
		file:     file,
		fileName: fileName,
	}
}

func (l *Lexer) FileName() string {
	return l.fileName
}

// Next returns the next token in the file. Once the end of the file has been
// reached every call returns a TokenEOF.
func (l *Lexer) Next() Token {
	newlines := l.skipWhitespace()

	tk := Token{
		Offset:         l.pos,
		NewlinesBefore: newlines,
	}

	c, eof := l.peek(0)
	if eof {
		tk.Type = TokenEOF
		return tk
	}

	switch {
	case c == ';':
		tk.Type = TokenComment
		tk.Contents = l.lexComment()

	case c == '"':
		tk.Type, tk.Contents = l.lexString()

	case isDigit(c), c == '-' && l.peekIs(1, isDigit):
		tk.Type, tk.Contents = l.lexNumber()

	case isIdentifierStart(c):
		tk.Type = TokenIdentifier
		tk.Contents = l.lexIdentifier()

	default:
		if typ, ok := punctuation[c]; ok {
			l.pos++
			tk.Type = typ
			tk.Contents = string(c)
			break
		}

		r, size := utf8.DecodeRune(l.file[l.pos:])
		l.pos += size

		tk.Type = TokenIllegal
		tk.Contents = string(r)
	}

	return tk
}

// Collect reads every remaining token, including the final TokenEOF.
func (l *Lexer) Collect() []Token {
	tks := []Token{}

	for {
		tk := l.Next()
		tks = append(tks, tk)

		if tk.Type == TokenEOF {
			return tks
		}
	}
}

func (l *Lexer) peek(n int) (c byte, eof bool) {
	if l.pos+n >= len(l.file) {
		return 0, true
	}

	return l.file[l.pos+n], false
}

func (l *Lexer) peekIs(n int, fn func(byte) bool) bool {
	c, eof := l.peek(n)
	return !eof && fn(c)
}

func (l *Lexer) skipWhitespace() (newlines int) {
	for l.pos < len(l.file) {
		switch l.file[l.pos] {
		case '\n':
			newlines++
		case ' ', '\t', '\r':
		default:
			return
		}

		l.pos++
	}

	return
}

func (l *Lexer) lexComment() string {
	l.pos++ // ;

	start := l.pos
	for l.pos < len(l.file) && l.file[l.pos] != '\n' {
		l.pos++
	}

	return strings.TrimSpace(string(l.file[start:l.pos]))
}

func (l *Lexer) lexString() (TokenType, string) {
	open := l.pos
	l.pos++ // "

	start := l.pos
	for l.pos < len(l.file) {
		switch l.file[l.pos] {
		case '\\':
			l.pos += 2

		case '"':
			contents := string(l.file[start:l.pos])
			l.pos++

			return TokenQuotedString, strings.TrimSpace(contents)

		default:
			l.pos++
		}
	}

	// Unterminated, hand the whole tail to the parser as a single illegal token
	l.pos = len(l.file)

	return TokenIllegal, string(l.file[open:])
}

func (l *Lexer) lexNumber() (TokenType, string) {
	start := l.pos

	if l.file[l.pos] == '-' {
		l.pos++
	}

	if l.file[l.pos] == '0' {
		var digit func(byte) bool

		switch c, _ := l.peek(1); c {
		case 'x', 'X':
			digit = isHexDigit
		case 'b', 'B':
			digit = isBinaryDigit
		}

		if digit != nil && l.peekIs(2, digit) {
			l.pos += 2
			l.skipWhile(digit)

			return TokenNumber, string(l.file[start:l.pos])
		}
	}

	typ := TokenNumber
	l.skipWhile(isDigit)

	// A dot only belongs to the number when a digit follows it, which leaves
	// ".." and "..." alone for the range operators.
	if c, _ := l.peek(0); c == '.' && l.peekIs(1, isDigit) {
		typ = TokenFloat

		l.pos++
		l.skipWhile(isDigit)
	}

	if l.peekIs(0, isExponent) {
		n := 1
		if l.peekIs(1, isSign) {
			n = 2
		}

		if l.peekIs(n, isDigit) {
			typ = TokenFloat

			l.pos += n
			l.skipWhile(isDigit)
		}
	}

	return typ, string(l.file[start:l.pos])
}

func (l *Lexer) lexIdentifier() string {
	start := l.pos
	l.pos++

	for l.pos < len(l.file) {
		c := l.file[l.pos]

		if isIdentifierChar(c) {
			l.pos++
			continue
		}

		// "-" and "." are only allowed in the middle of an identifier, and a
		// doubled dot is always a range operator
		if !isJoiner(c) || !l.peekIs(1, isIdentifierChar) {
			break
		}

		l.pos++
	}

	return string(l.file[start:l.pos])
}

func (l *Lexer) skipWhile(fn func(byte) bool) {
	for l.peekIs(0, fn) {
		l.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinaryDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isSign(c byte) bool {
	return c == '+' || c == '-'
}

func isExponent(c byte) bool {
	return c == 'e' || c == 'E'
}

func isJoiner(c byte) bool {
	return c == '-' || c == '.'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierStart(c byte) bool {
	return isLetter(c) || c == '_' || c == '@' || c == '$'
}

func isIdentifierChar(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}
