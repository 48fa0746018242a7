package validate

import (
	"errors"
	"testing"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReservedNames(t *testing.T) {
	as, err := parser.Parse("test.cddl", []byte("person = { tstr: int, * tstr => any, name: tstr }\nuint = int"))
	require.NoError(t, err)

	err = CheckReservedNames(as)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReservedName)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)

	errs := joined.Unwrap()
	require.Len(t, errs, 2)

	var first *ReservedNameError
	require.True(t, errors.As(errs[0], &first))
	assert.Equal(t, "tstr", first.Name)
	assert.True(t, first.Property)
	assert.Equal(t, lexer.Location{File: "test.cddl", Line: 1, Column: 12}, first.At())

	var second *ReservedNameError
	require.True(t, errors.As(errs[1], &second))
	assert.Equal(t, "uint", second.Name)
	assert.False(t, second.Property)
	assert.Equal(t, `rule "uint" shadows a prelude type at test.cddl:2:1`, second.Error())
}

func TestCheckReservedNamesClean(t *testing.T) {
	as, err := parser.Parse("test.cddl", []byte("; comment\n\nperson = { name: tstr, * tstr => any }\nids = [* uint]"))
	require.NoError(t, err)

	assert.NoError(t, CheckReservedNames(as))
}
