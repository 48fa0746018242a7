package ast

import "fmt"

// Limit is the upper bound of an occurrence.
type Limit struct {
	N         uint32
	Unbounded bool
}

func Bounded(n uint32) Limit {
	return Limit{N: n}
}

var Unbounded = Limit{Unbounded: true}

func (l Limit) String() string {
	if l.Unbounded {
		return "inf"
	}

	return fmt.Sprint(l.N)
}

// Below reports whether the limit is lower than n.
func (l Limit) Below(n uint32) bool {
	return !l.Unbounded && l.N < n
}

type Occurrence struct {
	Min uint32
	Max Limit
}

// ExactlyOnce is the occurrence of entries without an indicator.
var ExactlyOnce = Occurrence{Min: 1, Max: Bounded(1)}

func (o Occurrence) IsOptional() bool {
	return o.Min == 0
}

// IsRepeated reports whether the entry may appear more than once.
func (o Occurrence) IsRepeated() bool {
	return o.Max.Unbounded || o.Max.N > 1
}

func (o Occurrence) String() string {
	return fmt.Sprintf("{%d, %s}", o.Min, o.Max)
}
