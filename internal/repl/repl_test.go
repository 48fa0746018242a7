package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Evaluate("foo = [* int]", &buf))

	expected := `1:1	Identifier	"foo"
1:5	Equals	"="
1:7	Bracket open	"["
1:8	Asterisk	"*"
1:10	Identifier	"int"
1:13	Bracket close	"]"
`
	assert.Equal(t, expected, buf.String())
}

func TestEvaluateRanges(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Evaluate("0...10", &buf))

	assert.Equal(t, "1:1\tNumber\t\"0\"\n1:2\tDot\t\".\"\n1:3\tDot\t\".\"\n1:4\tDot\t\".\"\n1:5\tNumber\t\"10\"\n", buf.String())
}

func TestEvaluateEmpty(t *testing.T) {
	assert.ErrorIs(t, Evaluate("   ", &bytes.Buffer{}), ErrNoInput)
}

func TestRun(t *testing.T) {
	var out bytes.Buffer

	in := strings.NewReader("a\n\nexit\nb\n")
	require.NoError(t, Run(in, &out))

	assert.Equal(t, "> 1:1\tIdentifier\t\"a\"\n> error: no input\n> ", out.String())
}

func TestRunEOF(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Run(strings.NewReader("?"), &out))
	assert.Equal(t, "> 1:1\tQuestion mark\t\"?\"\n> ", out.String())
}
