package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipe01/cddl/internal/parser"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cddl", "a = { b: int }")

	ws := New(dir)

	as, err := ws.Load("a.cddl")
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "a", ast.AssignmentName(as[0]))
	assert.Equal(t, "a.cddl", as[0].Position().File)

	// Cached until forgotten
	writeFile(t, dir, "a.cddl", "changed = int")

	again, err := ws.Load("a.cddl")
	require.NoError(t, err)
	assert.Same(t, as[0], again[0])

	ws.Forget("a.cddl")

	again, err = ws.Load("a.cddl")
	require.NoError(t, err)
	assert.Equal(t, "changed", ast.AssignmentName(again[0]))
}

func TestLoadNotFound(t *testing.T) {
	_, err := New(t.TempDir()).Load("missing.cddl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.cddl", "a = {")

	_, err := New(dir).Load("bad.cddl")

	var perr *parser.ParserError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Location.Line)
}

func TestLoadWithContents(t *testing.T) {
	ws := New(t.TempDir())

	as, err := ws.LoadWithContents("open.cddl", []byte("x = tstr"))
	require.NoError(t, err)

	cached, err := ws.Load("open.cddl")
	require.NoError(t, err)
	assert.Equal(t, as, cached)

	_, err = ws.LoadWithContents("open.cddl", []byte("x = "))
	require.Error(t, err)

	_, err = ws.Load("open.cddl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.cddl", "one = int")
	writeFile(t, dir, "two.cddl", "two = [* tstr]")
	writeFile(t, dir, "bad.cddl", "bad")

	files, err := New(dir).LoadAll(context.Background(), []string{"one.cddl", "bad.cddl", "two.cddl", "nope.cddl"}, 2)
	require.NoError(t, err)
	require.Len(t, files, 4)

	assert.Equal(t, "one.cddl", files[0].Path)
	assert.NoError(t, files[0].Err)
	assert.Equal(t, "one", ast.AssignmentName(files[0].Assignments[0]))

	assert.Error(t, files[1].Err)

	assert.NoError(t, files[2].Err)
	assert.Equal(t, "two", ast.AssignmentName(files[2].Assignments[0]))

	assert.ErrorIs(t, files[3].Err, ErrNotFound)
}

func TestLoadAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(t.TempDir()).LoadAll(ctx, []string{"a.cddl"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
