package dump

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pipe01/cddl/internal/parser"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) []ast.Assignment {
	t.Helper()

	as, err := parser.Parse("test.cddl", []byte(src))
	require.NoError(t, err)

	return as
}

func TestJSON(t *testing.T) {
	as := parse(t, "; hi\n\nperson = { ? age: uint .le 150 }")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, as, FormatJSON))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, "comment", out[0]["type"])
	assert.Equal(t, "hi", out[0]["content"])

	person := out[1]
	assert.Equal(t, "group", person["type"])
	assert.Equal(t, "person", person["name"])
	assert.Equal(t, "test.cddl:3:1", person["location"])

	props := person["properties"].([]any)
	require.Len(t, props, 1)

	age := props[0].(map[string]any)
	assert.Equal(t, "age", age["name"])
	assert.Equal(t, map[string]any{"min": float64(0), "max": "inf"}, age["occurrence"])
	assert.Equal(t, "le", age["operator"].(map[string]any)["type"])
}

func TestYAML(t *testing.T) {
	as := parse(t, "r = 0..10")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, as, FormatYAML))

	var out []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	types := out[0]["propertyType"].([]any)
	r := types[0].(map[string]any)
	assert.Equal(t, "range", r["type"])
	assert.Equal(t, true, r["inclusive"])
	assert.Equal(t, 10, r["max"].(map[string]any)["value"])
}

func TestLargeInteger(t *testing.T) {
	as := parse(t, "u64 = 0..18446744073709551615")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, as, FormatJSON))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	r := out[0]["propertyType"].([]any)[0].(map[string]any)
	assert.Equal(t, "18446744073709551615", r["max"].(map[string]any)["value"])
	assert.Equal(t, float64(0), r["min"].(map[string]any)["value"])
}

func TestMsgpack(t *testing.T) {
	as := parse(t, "tagged = #6.32(tstr)")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, as, FormatMsgpack))

	var out []map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	assert.Equal(t, "tagged", out[0]["name"])

	tag := out[0]["propertyType"].([]any)[0].(map[string]any)
	assert.Equal(t, "tag", tag["type"])
	assert.EqualValues(t, 6, tag["major"])
	assert.Equal(t, "tstr", tag["typePart"].(map[string]any)["name"])
}

func TestDeterministic(t *testing.T) {
	as := parse(t, "a = { b: int, c: [* tstr] }")

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, as, FormatMsgpack))
	require.NoError(t, Write(&second, as, FormatMsgpack))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
