package generator

import (
	"fmt"
	"io"
	"strings"
)

type outputWriter struct {
	w           io.Writer
	indentation int
}

func (w *outputWriter) indent(delta int) {
	w.indentation += delta
}

func (w *outputWriter) writeIndentation() {
	fmt.Fprint(w.w, strings.Repeat("\t", w.indentation))
}

func (w *outputWriter) WriteFileHeader(header string) {
	fmt.Fprintf(w.w, "// %s\n\n", header)
}

func (w *outputWriter) WriteLineComments(comments []string) {
	for _, c := range comments {
		w.writeIndentation()
		fmt.Fprintf(w.w, "// %s\n", c)
	}
}

func (w *outputWriter) WriteDocComment(lines []string) {
	if len(lines) == 0 {
		return
	}

	w.writeIndentation()
	fmt.Fprint(w.w, "/**\n")

	for _, l := range lines {
		w.writeIndentation()

		if l == "" {
			fmt.Fprint(w.w, " *\n")
		} else {
			fmt.Fprintf(w.w, " * %s\n", l)
		}
	}

	w.writeIndentation()
	fmt.Fprint(w.w, " */\n")
}

func (w *outputWriter) WriteInterfaceStart(name string, extends []string) {
	w.writeIndentation()
	fmt.Fprintf(w.w, "export interface %s", name)

	if len(extends) > 0 {
		fmt.Fprintf(w.w, " extends %s", strings.Join(extends, ", "))
	}

	fmt.Fprint(w.w, " {\n")

	w.indent(1)
}

func (w *outputWriter) WriteField(name, typ string, optional bool) {
	w.writeIndentation()

	if optional {
		fmt.Fprintf(w.w, "%s?: %s;\n", name, typ)
	} else {
		fmt.Fprintf(w.w, "%s: %s;\n", name, typ)
	}
}

func (w *outputWriter) WriteIndexSignature(keyType, typ string) {
	w.writeIndentation()
	fmt.Fprintf(w.w, "[key: %s]: %s;\n", keyType, typ)
}

func (w *outputWriter) WriteBlockEnd() {
	w.indent(-1)
	w.writeIndentation()
	fmt.Fprint(w.w, "}\n\n")
}

func (w *outputWriter) WriteTypeAlias(name, typ string) {
	w.writeIndentation()
	fmt.Fprintf(w.w, "export type %s = %s;\n\n", name, typ)
}
