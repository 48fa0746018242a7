package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pipe01/cddl/internal/parser"
)

// reportError prints why the file at path is invalid. Joined errors are printed
// one per line, parse errors along with the offending source line.
func reportError(w io.Writer, path string, err error) {
	failure.Fprintf(w, "Invalid CDDL file (%s)\n", path)

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	for _, err := range errs {
		fmt.Fprintf(w, "\t> %s\n", err)

		var perr *parser.ParserError
		if errors.As(err, &perr) && perr.Excerpt != "" {
			for _, line := range strings.Split(perr.Excerpt, "\n") {
				fmt.Fprintf(w, "\t  %s\n", line)
			}
		}
	}
}
