package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tk struct {
	Type     TokenType
	Contents string
}

func lexAll(src string) []tk {
	var out []tk

	for _, t := range New([]byte(src), "test.cddl").Collect() {
		if t.Type == TokenEOF {
			break
		}
		out = append(out, tk{t.Type, t.Contents})
	}

	return out
}

func TestLexer(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []tk
	}{
		{
			name: "assignment",
			src:  "person = { age: int }",
			want: []tk{
				{TokenIdentifier, "person"},
				{TokenEquals, "="},
				{TokenBraceOpen, "{"},
				{TokenIdentifier, "age"},
				{TokenColon, ":"},
				{TokenIdentifier, "int"},
				{TokenBraceClose, "}"},
			},
		},
		{
			name: "inclusive integer range",
			src:  "0..10",
			want: []tk{
				{TokenNumber, "0"},
				{TokenDot, "."},
				{TokenDot, "."},
				{TokenNumber, "10"},
			},
		},
		{
			name: "exclusive float range",
			src:  "1.5...10",
			want: []tk{
				{TokenFloat, "1.5"},
				{TokenDot, "."},
				{TokenDot, "."},
				{TokenDot, "."},
				{TokenNumber, "10"},
			},
		},
		{
			name: "named range",
			src:  "min..max",
			want: []tk{
				{TokenIdentifier, "min"},
				{TokenDot, "."},
				{TokenDot, "."},
				{TokenIdentifier, "max"},
			},
		},
		{
			name: "numbers",
			src:  "-1 0x1F 0b101 1e10 2.5E-3 -0.5",
			want: []tk{
				{TokenNumber, "-1"},
				{TokenNumber, "0x1F"},
				{TokenNumber, "0b101"},
				{TokenFloat, "1e10"},
				{TokenFloat, "2.5E-3"},
				{TokenFloat, "-0.5"},
			},
		},
		{
			name: "identifier characters",
			src:  "tcp-header @a $b_c v1.0",
			want: []tk{
				{TokenIdentifier, "tcp-header"},
				{TokenIdentifier, "@a"},
				{TokenIdentifier, "$b_c"},
				{TokenIdentifier, "v1.0"},
			},
		},
		{
			name: "operator",
			src:  "tstr .size 4",
			want: []tk{
				{TokenIdentifier, "tstr"},
				{TokenDot, "."},
				{TokenIdentifier, "size"},
				{TokenNumber, "4"},
			},
		},
		{
			name: "string is trimmed",
			src:  `"  bow tie " "say \"hi\""`,
			want: []tk{
				{TokenQuotedString, "bow tie"},
				{TokenQuotedString, `say \"hi\"`},
			},
		},
		{
			name: "comment",
			src:  "a ;  some text  \nb",
			want: []tk{
				{TokenIdentifier, "a"},
				{TokenComment, "some text"},
				{TokenIdentifier, "b"},
			},
		},
		{
			name: "choice addition and arrow",
			src:  "a //= b => c",
			want: []tk{
				{TokenIdentifier, "a"},
				{TokenSlash, "/"},
				{TokenSlash, "/"},
				{TokenEquals, "="},
				{TokenIdentifier, "b"},
				{TokenEquals, "="},
				{TokenAngleClose, ">"},
				{TokenIdentifier, "c"},
			},
		},
		{
			name: "tag",
			src:  "#6.32(tstr)",
			want: []tk{
				{TokenHashtag, "#"},
				{TokenFloat, "6.32"},
				{TokenParenOpen, "("},
				{TokenIdentifier, "tstr"},
				{TokenParenClose, ")"},
			},
		},
		{
			name: "illegal characters",
			src:  "a & é",
			want: []tk{
				{TokenIdentifier, "a"},
				{TokenIllegal, "&"},
				{TokenIllegal, "é"},
			},
		},
		{
			name: "unterminated string",
			src:  `a = "oops`,
			want: []tk{
				{TokenIdentifier, "a"},
				{TokenEquals, "="},
				{TokenIllegal, `"oops`},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, lexAll(c.src))
		})
	}
}

func TestLexerEOF(t *testing.T) {
	l := New([]byte("a"), "test.cddl")

	require.Equal(t, TokenIdentifier, l.Next().Type)

	for i := 0; i < 3; i++ {
		tk := l.Next()
		assert.Equal(t, TokenEOF, tk.Type)
		assert.Equal(t, 1, tk.Offset)
	}
}

func TestLexerNewlinesBefore(t *testing.T) {
	tks := New([]byte("a ; trailing\n\n; block\nb"), "test.cddl").Collect()
	require.Len(t, tks, 5)

	assert.Equal(t, 0, tks[0].NewlinesBefore)
	assert.Equal(t, 0, tks[1].NewlinesBefore)
	assert.Equal(t, 2, tks[2].NewlinesBefore)
	assert.Equal(t, 1, tks[3].NewlinesBefore)
	assert.Equal(t, TokenEOF, tks[4].Type)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "Identifier", TokenIdentifier.String())
	assert.Equal(t, "Tilde", TokenTilde.String())
	assert.Equal(t, "<unknown>", TokenType(-1).String())
}
