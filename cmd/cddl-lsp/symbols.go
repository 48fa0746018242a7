package main

import (
	"fortio.org/safecast"
	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// pos converts a 1-based location into a 0-based protocol position.
func pos(l lexer.Location) protocol.Position {
	line, err := safecast.Conv[uint32](l.Line - 1)
	if err != nil {
		line = 0
	}

	char, err := safecast.Conv[uint32](l.Column - 1)
	if err != nil {
		char = 0
	}

	return protocol.Position{
		Line:      line,
		Character: char,
	}
}

// nameRange spans name starting at l.
func nameRange(l lexer.Location, name string) protocol.Range {
	start := pos(l)
	end := start
	end.Character += uint32(len([]rune(name)))

	return protocol.Range{Start: start, End: end}
}

func documentSymbols(assignments []ast.Assignment) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}

	for _, a := range assignments {
		var kind protocol.SymbolKind
		var detail string
		var children []protocol.DocumentSymbol

		switch a := a.(type) {
		case *ast.Group:
			kind, detail = protocol.SymbolKindStruct, "group"
			children = fieldSymbols(a.Properties)

		case *ast.Array:
			kind, detail = protocol.SymbolKindArray, "array"
			children = fieldSymbols(a.Values)

		case *ast.Variable:
			kind, detail = protocol.SymbolKindTypeParameter, "type"

		default:
			continue
		}

		if isChoiceAddition(a) {
			detail += " (choice addition)"
		}

		name := ast.AssignmentName(a)
		r := nameRange(a.Position(), name)

		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
			Children:       children,
		})
	}

	return symbols
}

func isChoiceAddition(a ast.Assignment) bool {
	switch a := a.(type) {
	case *ast.Group:
		return a.IsChoiceAddition
	case *ast.Array:
		return a.IsChoiceAddition
	case *ast.Variable:
		return a.IsChoiceAddition
	}

	return false
}

func fieldSymbols(entries []ast.Entry) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol

	for _, e := range entries {
		switch e := e.(type) {
		case *ast.Property:
			r := nameRange(e.Position(), e.Name)

			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           e.Name,
				Kind:           protocol.SymbolKindField,
				Range:          r,
				SelectionRange: r,
			})

		case *ast.Choice:
			symbols = append(symbols, fieldSymbols(e.Alternatives)...)
		}
	}

	return symbols
}
