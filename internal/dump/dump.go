// Package dump serializes parsed assignments for inspection by other tools.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown dump format")

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatMsgpack)}
}

// Write encodes assignments to w. Map keys are always sorted so the output only
// changes when the tree does.
func Write(w io.Writer, assignments []ast.Assignment, format Format) error {
	tree := Tree(assignments)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()

	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(tree)
	}

	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

type node = map[string]any

// Tree converts assignments into plain maps and slices.
func Tree(assignments []ast.Assignment) []any {
	out := make([]any, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignment(a))
	}

	return out
}

func assignment(a ast.Assignment) node {
	switch a := a.(type) {
	case *ast.Comment:
		return comment(a)

	case *ast.Group:
		n := located("group", a.Pos)
		n["name"] = a.Name
		n["isChoiceAddition"] = a.IsChoiceAddition
		n["properties"] = entries(a.Properties)
		withComments(n, a.Comments)
		return n

	case *ast.Array:
		n := located("array", a.Pos)
		n["name"] = a.Name
		n["isChoiceAddition"] = a.IsChoiceAddition
		n["values"] = entries(a.Values)
		withComments(n, a.Comments)
		return n

	case *ast.Variable:
		n := located("variable", a.Pos)
		n["name"] = a.Name
		n["isChoiceAddition"] = a.IsChoiceAddition
		n["propertyType"] = types(a.PropertyType)
		withOperator(n, a.Operator)
		withComments(n, a.Comments)
		return n
	}

	return nil
}

func located(kind string, pos ast.Pos) node {
	return node{
		"type":     kind,
		"location": pos.Position().String(),
	}
}

func comment(c *ast.Comment) node {
	n := located("comment", c.Pos)
	n["content"] = c.Content
	n["leading"] = c.Leading
	return n
}

func withComments(n node, comments ast.Comments) {
	if len(comments) == 0 {
		return
	}

	out := make([]any, 0, len(comments))
	for _, c := range comments {
		out = append(out, comment(c))
	}
	n["comments"] = out
}

func withOperator(n node, op *ast.Operator) {
	if op == nil {
		return
	}

	n["operator"] = node{
		"type":  string(op.Type),
		"value": typ(op.Value),
	}
}

func occurrence(o ast.Occurrence) node {
	n := node{"min": o.Min}
	if o.Max.Unbounded {
		n["max"] = "inf"
	} else {
		n["max"] = o.Max.N
	}

	return n
}

func entries(es []ast.Entry) []any {
	out := make([]any, 0, len(es))
	for _, e := range es {
		out = append(out, entry(e))
	}

	return out
}

func entry(e ast.Entry) node {
	switch e := e.(type) {
	case *ast.Property:
		n := located("property", e.Pos)
		n["name"] = e.Name
		n["hasCut"] = e.HasCut
		n["occurrence"] = occurrence(e.Occurrence)
		n["propertyType"] = types(e.Type)
		withOperator(n, e.Operator)
		withComments(n, e.Comments)
		return n

	case *ast.Inclusion:
		n := located("inclusion", e.Pos)
		n["occurrence"] = occurrence(e.Occurrence)
		n["propertyType"] = types(e.Type)
		withOperator(n, e.Operator)
		withComments(n, e.Comments)
		return n

	case *ast.Choice:
		n := located("choice", e.Pos)
		n["alternatives"] = entries(e.Alternatives)
		return n
	}

	return nil
}

func types(ts []ast.Type) []any {
	out := make([]any, 0, len(ts))
	for _, t := range ts {
		out = append(out, typ(t))
	}

	return out
}

func typ(t ast.Type) node {
	var n node

	switch t := t.(type) {
	case *ast.Primitive:
		n = located("primitive", t.Pos)
		n["name"] = t.Name

	case *ast.Literal:
		n = located("literal", t.Pos)
		n["literalType"] = t.Type.String()
		n["raw"] = t.Raw

		switch t.Type {
		case ast.LiteralInt:
			if t.Overflow {
				n["value"] = t.Raw
			} else {
				n["value"] = t.Int
			}
		case ast.LiteralFloat:
			n["value"] = t.Float
		case ast.LiteralBool:
			n["value"] = t.Bool
		default:
			n["value"] = t.Raw
		}

	case *ast.GroupRef:
		n = located("group", t.Pos)
		n["name"] = t.Name

	case *ast.Group:
		n = located("inline group", t.Pos)
		n["properties"] = entries(t.Properties)
		withComments(n, t.Comments)

	case *ast.Array:
		n = located("array", t.Pos)
		n["values"] = entries(t.Values)
		withComments(n, t.Comments)

	case *ast.Range:
		n = located("range", t.Pos)
		n["min"] = typ(t.Min)
		n["max"] = typ(t.Max)
		n["inclusive"] = t.Inclusive

	case *ast.Tag:
		n = located("tag", t.Pos)
		n["major"] = t.Major
		if t.HasNumericPart {
			n["numericPart"] = t.NumericPart
		}
		if t.TypePart != nil {
			n["typePart"] = typ(t.TypePart)
		}

	default:
		return nil
	}

	mods := t.Mods()
	if mods.Unwrapped {
		n["unwrapped"] = true
	}
	withOperator(n, mods.Operator)

	return n
}
