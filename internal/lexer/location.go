package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"
)

type Location struct {
	File string

	// 1-based
	Line, Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Locate converts a byte offset into a line and column, counting columns in
// runes.
func (l *Lexer) Locate(offset int) Location {
	offset = l.clamp(offset)
	line := l.lineOf(offset)

	return Location{
		File:   l.fileName,
		Line:   line + 1,
		Column: utf8.RuneCount(l.file[l.lineStarts[line]:offset]) + 1,
	}
}

// Excerpt renders the line containing offset followed by a caret pointing at
// the offset's column.
func (l *Lexer) Excerpt(offset int) string {
	offset = l.clamp(offset)
	line := l.lineOf(offset)

	start := l.lineStarts[line]
	end := len(l.file)
	if line+1 < len(l.lineStarts) {
		end = l.lineStarts[line+1] - 1
	}

	var caret strings.Builder

	for _, r := range string(l.file[start:offset]) {
		if r == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	caret.WriteByte('^')

	text := strings.TrimRight(string(l.file[start:end]), "\r")

	return text + "\n" + caret.String()
}

func (l *Lexer) clamp(offset int) int {
	return max(0, min(offset, len(l.file)))
}

func (l *Lexer) lineOf(offset int) int {
	if l.lineStarts == nil {
		l.lineStarts = []int{0}

		for i, c := range l.file {
			if c == '\n' {
				l.lineStarts = append(l.lineStarts, i+1)
			}
		}
	}

	idx, found := slices.BinarySearch(l.lineStarts, offset)
	if found {
		return idx
	}

	return idx - 1
}
