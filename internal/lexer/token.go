package lexer

type TokenType int

const (
	TokenIllegal TokenType = iota
	TokenEOF

	TokenIdentifier
	TokenQuotedString
	TokenNumber
	TokenFloat
	TokenComment

	TokenEquals
	TokenParenOpen
	TokenParenClose
	TokenBraceOpen
	TokenBraceClose
	TokenBracketOpen
	TokenBracketClose
	TokenAngleOpen
	TokenAngleClose
	TokenPlus
	TokenComma
	TokenDot
	TokenColon
	TokenQuestionMark
	TokenSlash
	TokenAsterisk
	TokenCaret
	TokenHashtag
	TokenTilde
)

var punctuation = map[byte]TokenType{
	'=': TokenEquals,
	'(': TokenParenOpen,
	')': TokenParenClose,
	'{': TokenBraceOpen,
	'}': TokenBraceClose,
	'[': TokenBracketOpen,
	']': TokenBracketClose,
	'<': TokenAngleOpen,
	'>': TokenAngleClose,
	'+': TokenPlus,
	',': TokenComma,
	'.': TokenDot,
	':': TokenColon,
	'?': TokenQuestionMark,
	'/': TokenSlash,
	'*': TokenAsterisk,
	'^': TokenCaret,
	'#': TokenHashtag,
	'~': TokenTilde,
}

func (t TokenType) String() string {
	switch t {
	case TokenIllegal:
		return "Illegal"
	case TokenEOF:
		return "EOF"

	case TokenIdentifier:
		return "Identifier"
	case TokenQuotedString:
		return "Quoted string"
	case TokenNumber:
		return "Number"
	case TokenFloat:
		return "Float"
	case TokenComment:
		return "Comment"

	case TokenEquals:
		return "Equals"
	case TokenParenOpen:
		return "Parentheses open"
	case TokenParenClose:
		return "Parentheses close"
	case TokenBraceOpen:
		return "Brace open"
	case TokenBraceClose:
		return "Brace close"
	case TokenBracketOpen:
		return "Bracket open"
	case TokenBracketClose:
		return "Bracket close"
	case TokenAngleOpen:
		return "Angle open"
	case TokenAngleClose:
		return "Angle close"
	case TokenPlus:
		return "Plus"
	case TokenComma:
		return "Comma"
	case TokenDot:
		return "Dot"
	case TokenColon:
		return "Colon"
	case TokenQuestionMark:
		return "Question mark"
	case TokenSlash:
		return "Slash"
	case TokenAsterisk:
		return "Asterisk"
	case TokenCaret:
		return "Caret"
	case TokenHashtag:
		return "Hashtag"
	case TokenTilde:
		return "Tilde"
	}

	return "<unknown>"
}

type Token struct {
	Type     TokenType
	Contents string

	// Byte offset of the first character of the token in the source.
	Offset int

	// Number of line breaks skipped between the previous token and this one.
	NewlinesBefore int
}
