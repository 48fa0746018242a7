// Package repl implements an interactive shell that shows how lines of CDDL
// are split into tokens.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/tliron/commonlog"
	"golang.org/x/term"
)

var log = commonlog.GetLogger("cddl.repl")

var ErrNoInput = errors.New("no input")

const Prompt = "> "

// Evaluate writes every token in line to w along with its position.
func Evaluate(line string, w io.Writer) error {
	if strings.TrimSpace(line) == "" {
		return ErrNoInput
	}

	l := lexer.New([]byte(line), "repl")

	for {
		tk := l.Next()
		if tk.Type == lexer.TokenEOF {
			return nil
		}

		loc := l.Locate(tk.Offset)
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", loc.Line, loc.Column, tk.Type, tk.Contents)
	}
}

type lineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (r *scannerReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, Prompt)

	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return r.sc.Text(), nil
}

// Run reads lines from in until it ends or "exit" is entered.
func Run(in io.Reader, out io.Writer) error {
	return loop(&scannerReader{sc: bufio.NewScanner(in), out: out}, out)
}

// Start runs the shell on the standard streams, with line editing if stdin is a
// terminal.
func Start() error {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return Run(os.Stdin, os.Stdout)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, Prompt)

	return loop(t, t)
}

func loop(r lineReader, out io.Writer) error {
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "exit" {
			return nil
		}

		log.Debugf("evaluating %q", line)

		if err := Evaluate(line, out); err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}
	}
}
