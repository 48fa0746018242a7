package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pipe01/cddl/internal/generator"
	"github.com/pipe01/cddl/internal/parser"
	"github.com/pipe01/cddl/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestReportError(t *testing.T) {
	_, err := parser.Parse("foo.cddl", []byte("foo = { bar int }"))
	require.Error(t, err)

	var buf bytes.Buffer
	reportError(&buf, "foo.cddl", err)

	expected := "Invalid CDDL file (foo.cddl)\n" +
		"\t> expected \":\" or \"=>\", found \"int\" (Identifier) at foo.cddl:1:13\n" +
		"\t  foo = { bar int }\n" +
		"\t              ^\n"

	assert.Equal(t, expected, buf.String())
}

func TestReportJoinedErrors(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, "x.cddl", errors.Join(errors.New("one"), errors.New("two")))

	assert.Equal(t, "Invalid CDDL file (x.cddl)\n\t> one\n\t> two\n", buf.String())
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.cddl"), []byte("point = [x: float, y: float]"), 0o644))

	ws := workspace.New(dir)

	outPath, err := generateFile(ws, "point.cddl", generator.Options{}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "point.cddl.ts"), outPath)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "export type Point = number[];\n\n", string(out))

	_, err = generateFile(ws, "point.cddl", generator.Options{Target: "go"}, t.TempDir())
	assert.ErrorIs(t, err, generator.ErrUnsupportedTarget)
}

func TestWatcherRegenerates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cddl")
	require.NoError(t, os.WriteFile(src, []byte("a = int"), 0o644))

	w, err := NewWatcher(generator.Options{}, dir)
	require.NoError(t, err)
	defer w.Close()

	// Watch a different folder so only explicit calls regenerate src
	other := filepath.Join(t.TempDir(), "other.cddl")
	require.NoError(t, w.WatchFile(other))
	assert.True(t, w.isWatching(other))
	assert.False(t, w.isWatching(src))

	w.fileModified(src)

	out, err := os.ReadFile(filepath.Join(dir, "a.cddl.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export type A = number;\n\n", string(out))

	require.NoError(t, os.WriteFile(src, []byte("a = tstr"), 0o644))
	w.fileModified(src)

	out, err = os.ReadFile(filepath.Join(dir, "a.cddl.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export type A = string;\n\n", string(out))
}
