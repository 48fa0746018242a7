package generator

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/pipe01/cddl/internal/parser/ast"
	"golang.org/x/exp/slices"
)

var ErrUnsupportedTarget = errors.New("unsupported target")

type Target string

const TargetTypeScript Target = "ts"

type Options struct {
	// Target defaults to TypeScript.
	Target Target

	// Header is written as a comment on the first line, if set.
	Header string
}

type OutputWriter interface {
	WriteFileHeader(header string)
	WriteLineComments(comments []string)
	WriteDocComment(lines []string)
	WriteInterfaceStart(name string, extends []string)
	WriteField(name, typ string, optional bool)
	WriteIndexSignature(keyType, typ string)
	WriteBlockEnd()
	WriteTypeAlias(name, typ string)
}

// Visit writes type declarations for assignments to w. Rules that are extended
// with "/=" or "//=" are merged into a single declaration.
func Visit(w io.Writer, assignments []ast.Assignment, opts Options) error {
	switch opts.Target {
	case "", TargetTypeScript:
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedTarget, opts.Target)
	}

	ctx := context{
		w: &outputWriter{
			w: w,
		},
		rules: make(map[string][]ast.Assignment),
	}

	return ctx.visitFile(assignments, opts)
}

type context struct {
	w OutputWriter

	rules map[string][]ast.Assignment
}

func (c *context) visitFile(assignments []ast.Assignment, opts Options) error {
	if opts.Header != "" {
		c.w.WriteFileHeader(opts.Header)
	}

	for _, a := range assignments {
		if name := ast.AssignmentName(a); name != "" {
			c.rules[name] = append(c.rules[name], a)
		}
	}

	for _, a := range assignments {
		if err := c.visitAssignment(a); err != nil {
			return err
		}
	}

	return nil
}

func (c *context) visitAssignment(a ast.Assignment) error {
	if cm, ok := a.(*ast.Comment); ok {
		c.w.WriteLineComments([]string{cm.Content})
		return nil
	}

	name := ast.AssignmentName(a)

	defs := c.rules[name]
	if defs[0] != a {
		// Written along with the first definition
		return nil
	}

	for _, def := range defs {
		c.w.WriteLineComments(commentLines(def))
	}

	typeName := strcase.ToCamel(name)

	if len(defs) > 1 {
		alts := make([]string, 0, len(defs))
		for _, def := range defs {
			alts = append(alts, c.assignmentType(def))
		}

		c.w.WriteTypeAlias(typeName, union(alts))
		return nil
	}

	switch a := a.(type) {
	case *ast.Group:
		if extends, ok := interfaceParents(a.Properties); ok {
			c.w.WriteInterfaceStart(typeName, extends)
			c.visitFields(a.Properties)
			c.w.WriteBlockEnd()
			return nil
		}

	case *ast.Variable:
		if doc := defaultDoc(nil, a.Operator); len(doc) > 0 {
			c.w.WriteDocComment(doc)
		}
	}

	c.w.WriteTypeAlias(typeName, c.assignmentType(a))
	return nil
}

func commentLines(a ast.Assignment) []string {
	var comments ast.Comments

	switch a := a.(type) {
	case *ast.Group:
		comments = a.Comments
	case *ast.Array:
		comments = a.Comments
	case *ast.Variable:
		comments = a.Comments
	}

	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, c.Content)
	}

	return lines
}

// interfaceParents returns the groups that a group made only of properties and
// plain references extends. Anything else can't be written as an interface.
func interfaceParents(entries []ast.Entry) (extends []string, ok bool) {
	for _, e := range entries {
		switch e := e.(type) {
		case *ast.Property:

		case *ast.Inclusion:
			if len(e.Type) != 1 {
				return nil, false
			}

			ref, isRef := e.Type[0].(*ast.GroupRef)
			if !isRef {
				return nil, false
			}

			extends = append(extends, strcase.ToCamel(ref.Name))

		default:
			return nil, false
		}
	}

	return extends, true
}

func (c *context) visitFields(entries []ast.Entry) {
	for _, e := range entries {
		prop, ok := e.(*ast.Property)
		if !ok {
			continue
		}

		var doc []string
		for _, cm := range prop.Comments {
			doc = append(doc, cm.Content)
		}
		doc = defaultDoc(doc, prop.Operator)
		for _, t := range prop.Type {
			doc = defaultDoc(doc, t.Mods().Operator)
		}

		c.w.WriteDocComment(doc)

		if isTypeKey(prop) {
			c.w.WriteIndexSignature(indexKeyType(prop.Name), c.typeUnion(prop.Type))
		} else {
			c.w.WriteField(fieldName(prop.Name), c.typeUnion(prop.Type), prop.Occurrence.IsOptional())
		}
	}
}

func defaultDoc(doc []string, op *ast.Operator) []string {
	if op == nil || op.Type != ast.OperatorDefault {
		return doc
	}

	if len(doc) > 0 {
		doc = append(doc, "")
	}

	return append(doc, "@default "+defaultValue(op.Value))
}

func defaultValue(t ast.Type) string {
	switch t := t.(type) {
	case *ast.Literal:
		if t.Type == ast.LiteralString {
			return strconv.Quote(t.Raw)
		}
		return t.Raw

	case *ast.Primitive:
		return t.Name

	case *ast.GroupRef:
		return strcase.ToCamel(t.Name)
	}

	return ""
}

// isTypeKey reports whether the key of prop is a type, as in "* tstr => any".
func isTypeKey(prop *ast.Property) bool {
	return !prop.HasCut && ast.IsPrimitive(prop.Name)
}

func indexKeyType(name string) string {
	if primitiveType(name) == "number" {
		return "number"
	}

	return "string"
}

func fieldName(name string) string {
	camel := strcase.ToLowerCamel(name)

	for i, r := range camel {
		if !(unicode.IsLetter(r) || r == '_' || r == '$' || (i > 0 && unicode.IsDigit(r))) {
			return strconv.Quote(name)
		}
	}

	if camel == "" {
		return strconv.Quote(name)
	}

	return camel
}

func (c *context) assignmentType(a ast.Assignment) string {
	switch a := a.(type) {
	case *ast.Group:
		return c.groupType(a.Properties)
	case *ast.Array:
		return c.arrayType(a.Values)
	case *ast.Variable:
		return c.typeUnion(a.PropertyType)
	}

	return "unknown"
}

// groupType writes a group as an intersection of an object literal with its
// plain properties, its references and its choices.
func (c *context) groupType(entries []ast.Entry) string {
	var fields, parts []string

	for _, e := range entries {
		switch e := e.(type) {
		case *ast.Property:
			typ := c.typeUnion(e.Type)

			switch {
			case isTypeKey(e):
				fields = append(fields, fmt.Sprintf("[key: %s]: %s", indexKeyType(e.Name), typ))
			case e.Occurrence.IsOptional():
				fields = append(fields, fmt.Sprintf("%s?: %s", fieldName(e.Name), typ))
			default:
				fields = append(fields, fmt.Sprintf("%s: %s", fieldName(e.Name), typ))
			}

		case *ast.Inclusion:
			parts = append(parts, c.typeUnion(e.Type))

		case *ast.Choice:
			alts := make([]string, 0, len(e.Alternatives))
			for _, alt := range e.Alternatives {
				alts = append(alts, c.groupType([]ast.Entry{alt}))
			}
			parts = append(parts, union(alts))
		}
	}

	if len(fields) > 0 {
		parts = append([]string{"{ " + strings.Join(fields, "; ") + " }"}, parts...)
	}

	switch len(parts) {
	case 0:
		return "{}"
	case 1:
		return parts[0]
	}

	for i, p := range parts {
		parts[i] = parenthesize(p)
	}

	return strings.Join(parts, " & ")
}

func (c *context) arrayType(entries []ast.Entry) string {
	var elems []string

	var add func(e ast.Entry)
	add = func(e ast.Entry) {
		switch e := e.(type) {
		case *ast.Property:
			elems = append(elems, c.typeUnion(e.Type))
		case *ast.Inclusion:
			elems = append(elems, c.typeUnion(e.Type))
		case *ast.Choice:
			for _, alt := range e.Alternatives {
				add(alt)
			}
		}
	}

	for _, e := range entries {
		add(e)
	}

	if len(elems) == 0 {
		return "unknown[]"
	}

	return parenthesize(union(elems)) + "[]"
}

func (c *context) typeUnion(types []ast.Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, c.typeOf(t))
	}

	return union(names)
}

func (c *context) typeOf(t ast.Type) string {
	switch t := t.(type) {
	case *ast.Primitive:
		return primitiveType(t.Name)

	case *ast.Literal:
		if t.Type == ast.LiteralString {
			return strconv.Quote(t.Raw)
		}
		if t.Type == ast.LiteralInt && !t.Overflow {
			return strconv.FormatInt(t.Int, 10)
		}
		return t.Raw

	case *ast.GroupRef:
		return strcase.ToCamel(t.Name)

	case *ast.Group:
		return c.groupType(t.Properties)

	case *ast.Array:
		return c.arrayType(t.Values)

	case *ast.Range:
		return "number"

	case *ast.Tag:
		if t.TypePart != nil {
			return c.typeOf(t.TypePart)
		}
	}

	return "unknown"
}

// union joins the given types with "|", dropping duplicates.
func union(types []string) string {
	seen := make([]string, 0, len(types))

	for _, t := range types {
		if !slices.Contains(seen, t) {
			seen = append(seen, t)
		}
	}

	if len(seen) == 0 {
		return "unknown"
	}

	return strings.Join(seen, " | ")
}

func parenthesize(t string) string {
	if strings.Contains(t, " | ") || strings.Contains(t, " & ") {
		return "(" + t + ")"
	}

	return t
}

func primitiveType(name string) string {
	switch name {
	case "uint", "nint", "int", "integer", "unsigned", "number",
		"biguint", "bignint", "bigint", "decfrac", "bigfloat", "time",
		"float", "float16", "float32", "float64", "float16-32", "float32-64":
		return "number"

	case "tstr", "text", "tdate", "uri", "regexp", "mime-message",
		"b64url", "b64legacy", "eb64url", "eb64legacy", "eb16":
		return "string"

	case "bstr", "bytes", "encoded-cbor":
		return "Uint8Array"

	case "bool":
		return "boolean"

	case "nil", "null":
		return "null"

	case "undefined":
		return "undefined"

	case "any", "cbor-any":
		return "any"
	}

	return "unknown"
}
