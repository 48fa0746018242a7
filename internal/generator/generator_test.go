package generator

import (
	"bytes"
	"testing"

	"github.com/pipe01/cddl/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, src string, opts Options) string {
	t.Helper()

	as, err := parser.Parse("test.cddl", []byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Visit(&buf, as, opts))

	return buf.String()
}

func TestInterface(t *testing.T) {
	src := `; A person
person = {
  name: tstr,
  ? age: uint .default 1, ; years
  * tstr => any
}

point = [x: float, y: float]
attire = "bow tie" / "necktie"
attire /= "swimwear"
`

	expected := `// generated

// A person
export interface Person {
	name: string;
	/**
	 * years
	 *
	 * @default 1
	 */
	age?: number;
	[key: string]: any;
}

export type Point = number[];

export type Attire = "bow tie" | "necktie" | "swimwear";

`

	assert.Equal(t, expected, generate(t, src, Options{Header: "generated"}))
}

func TestGroupChoices(t *testing.T) {
	src := `shape = circle // square
circle = (radius: float)
message = {
  header,
  kind: "text" // kind: "binary",
}
`

	expected := `export type Shape = Circle | Square;

export interface Circle {
	radius: number;
}

export type Message = Header & ({ kind: "text" } | { kind: "binary" });

`

	assert.Equal(t, expected, generate(t, src, Options{Target: TargetTypeScript}))
}

func TestExtends(t *testing.T) {
	src := "base = { id: uint }\nchild = { base, ? note: tstr .size 10, tags: [* tstr / int] }"

	expected := `export interface Base {
	id: number;
}

export interface Child extends Base {
	note?: string;
	tags: (string | number)[];
}

`

	assert.Equal(t, expected, generate(t, src, Options{}))
}

func TestVariableDefault(t *testing.T) {
	src := "fallback = (float .ge 0.0) .default 1.5\nbytes-or-nil = bstr / nil\nid = #6.37(tstr)"

	expected := `/**
 * @default 1.5
 */
export type Fallback = number;

export type BytesOrNil = Uint8Array | null;

export type Id = string;

`

	assert.Equal(t, expected, generate(t, src, Options{}))
}

func TestLargeIntegerLiteral(t *testing.T) {
	expected := "export type Max = 18446744073709551615 | 255;\n\n"

	assert.Equal(t, expected, generate(t, "max = 18446744073709551615 / 0xff", Options{}))
}

func TestUnsupportedTarget(t *testing.T) {
	var buf bytes.Buffer

	err := Visit(&buf, nil, Options{Target: "rust", Header: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedTarget)
	assert.Zero(t, buf.Len())
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "replyTo", fieldName("reply-to"))
	assert.Equal(t, "name", fieldName("name"))
	assert.Equal(t, `"1"`, fieldName("1"))
}
