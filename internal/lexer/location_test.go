package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	src := "foo = {\n  bar int\n}\n"
	l := New([]byte(src), "foo.cddl")

	cases := []struct {
		offset int
		want   Location
	}{
		{0, Location{"foo.cddl", 1, 1}},
		{6, Location{"foo.cddl", 1, 7}},
		{8, Location{"foo.cddl", 2, 1}},
		{14, Location{"foo.cddl", 2, 7}},
		{len(src), Location{"foo.cddl", 4, 1}},
		{len(src) + 10, Location{"foo.cddl", 4, 1}},
		{-3, Location{"foo.cddl", 1, 1}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, l.Locate(c.offset), "offset %d", c.offset)
	}

	assert.Equal(t, "foo.cddl:2:7", l.Locate(14).String())
}

func TestLocateCountsRunes(t *testing.T) {
	l := New([]byte(`"héllo" x`), "a.cddl")

	// x is the 10th byte but the 9th rune
	assert.Equal(t, 9, l.Locate(9).Column)
}

func TestExcerpt(t *testing.T) {
	l := New([]byte("foo = {\r\n\tbar int\n}"), "foo.cddl")

	assert.Equal(t, "\tbar int\n\t    ^", l.Excerpt(14))
	assert.Equal(t, "foo = {\n^", l.Excerpt(0))
}

func TestExcerptWideRunes(t *testing.T) {
	l := New([]byte(`"日本" x`), "a.cddl")

	// Each CJK rune takes two columns on a terminal
	assert.Equal(t, "\"日本\" x\n       ^", l.Excerpt(9))
}
