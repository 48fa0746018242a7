// Package validate holds checks that are stricter than the grammar and only run
// when asked for.
package validate

import (
	"errors"
	"fmt"

	"github.com/pipe01/cddl/internal/lexer"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cddl.validate")

var ErrReservedName = errors.New("name is reserved")

// ReservedNameError is returned for every definition that reuses the name of a
// prelude type.
type ReservedNameError struct {
	Name     string
	Location lexer.Location

	// Property is set when the name is a group member instead of a rule.
	Property bool
}

func (e *ReservedNameError) Error() string {
	what := "rule"
	if e.Property {
		what = "property"
	}

	return fmt.Sprintf("%s %q shadows a prelude type at %s", what, e.Name, e.Location)
}

func (e *ReservedNameError) Unwrap() error {
	return ErrReservedName
}

func (e *ReservedNameError) At() lexer.Location {
	return e.Location
}

// CheckReservedNames reports rules and bareword property keys named after
// prelude types such as "tstr". Keys written as "tstr => any" are type keys and
// are left alone. All violations are joined into the returned error.
func CheckReservedNames(assignments []ast.Assignment) error {
	var errs []error

	for _, a := range assignments {
		if _, ok := a.(*ast.Comment); ok {
			continue
		}

		if name := ast.AssignmentName(a); ast.IsPrimitive(name) {
			errs = append(errs, &ReservedNameError{
				Name:     name,
				Location: a.Position(),
			})
		}

		ast.Inspect(a, func(n ast.Node) bool {
			prop, ok := n.(*ast.Property)
			if ok && prop.HasCut && ast.IsPrimitive(prop.Name) {
				errs = append(errs, &ReservedNameError{
					Name:     prop.Name,
					Location: prop.Position(),
					Property: true,
				})
			}

			return true
		})
	}

	if len(errs) > 0 {
		log.Debugf("found %d reserved names", len(errs))
	}

	return errors.Join(errs...)
}
