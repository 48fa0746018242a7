package ast

type OperatorType string

const (
	OperatorDefault OperatorType = "default"
	OperatorSize    OperatorType = "size"
	OperatorRegexp  OperatorType = "regexp"
	OperatorBits    OperatorType = "bits"
	OperatorAnd     OperatorType = "and"
	OperatorWithin  OperatorType = "within"
	OperatorEq      OperatorType = "eq"
	OperatorNe      OperatorType = "ne"
	OperatorLt      OperatorType = "lt"
	OperatorLe      OperatorType = "le"
	OperatorGt      OperatorType = "gt"
	OperatorGe      OperatorType = "ge"
)

var operatorValueKinds = map[OperatorType][]Kind{
	OperatorDefault: {KindLiteral, KindGroup, KindPrimitive},
	OperatorSize:    {KindLiteral, KindRange, KindGroup},
	OperatorRegexp:  {KindLiteral},
	OperatorBits:    {KindGroup, KindInlineGroup},
	OperatorAnd:     {KindGroup, KindInlineGroup, KindArray, KindPrimitive},
	OperatorWithin:  {KindGroup, KindInlineGroup, KindArray, KindPrimitive},
	OperatorEq:      {KindLiteral, KindGroup},
	OperatorNe:      {KindLiteral, KindGroup},
	OperatorLt:      {KindLiteral, KindGroup},
	OperatorLe:      {KindLiteral, KindGroup},
	OperatorGt:      {KindLiteral, KindGroup},
	OperatorGe:      {KindLiteral, KindGroup},
}

// LookupOperator returns the operator called name, as written after the dot.
func LookupOperator(name string) (OperatorType, bool) {
	t := OperatorType(name)
	_, ok := operatorValueKinds[t]

	return t, ok
}

// ValueKinds lists the kinds of values the operator accepts.
func (t OperatorType) ValueKinds() []Kind {
	return operatorValueKinds[t]
}

// Operator is a control operator such as ".size 4" applied to a type.
type Operator struct {
	Pos

	Type  OperatorType
	Value Type
}
