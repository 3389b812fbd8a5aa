package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a comparison operator usable in a Compare node.
type Op string

// Comparison operators. The names double as the catalog authoring keywords.
const (
	OpLt Op = "lt"
	OpLe Op = "le"
	OpEq Op = "eq"
	OpNe Op = "ne"
	OpGe Op = "ge"
	OpGt Op = "gt"
)

func (o Op) holds(a, b int32) bool {
	switch o {
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpGe:
		return a >= b
	case OpGt:
		return a > b
	}
	return false
}

// Constraint is a node of a boolean expression tree over a tag store.
// Evaluation is pure and total: a missing tag is absent/0, never an error.
type Constraint interface {
	// Eval reports whether the constraint holds for the given store.
	Eval(t Tags) bool
	// String renders the s-expression authoring form.
	String() string
}

// Check evaluates an optional constraint. A nil constraint is satisfied.
func Check(c Constraint, t Tags) bool {
	if c == nil {
		return true
	}
	return c.Eval(t)
}

// Has is satisfied when the named tag is present, whatever its weight.
type Has string

// Eval implements Constraint.
func (h Has) Eval(t Tags) bool { return t.Has(string(h)) }

func (h Has) String() string { return string(h) }

// Operand is one side of a comparison: either a literal integer or a
// reference to a tag resolved through the store (0 when absent).
type Operand struct {
	Tag     string
	Literal int32
}

// Lit returns a literal operand.
func Lit(v int32) Operand { return Operand{Literal: v} }

// Ref returns a tag-reference operand.
func Ref(name string) Operand { return Operand{Tag: name} }

func (o Operand) resolve(t Tags) int32 {
	if o.Tag != "" {
		return t.Value(o.Tag)
	}
	return o.Literal
}

func (o Operand) String() string {
	if o.Tag != "" {
		return o.Tag
	}
	return strconv.FormatInt(int64(o.Literal), 10)
}

// Compare chains its operator over every consecutive operand pair:
// (lt a 5 b) means a < 5 && 5 < b. A single operand holds trivially.
type Compare struct {
	Op       Op
	Operands []Operand
}

// Eval implements Constraint.
func (c Compare) Eval(t Tags) bool {
	for i := 1; i < len(c.Operands); i++ {
		if !c.Op.holds(c.Operands[i-1].resolve(t), c.Operands[i].resolve(t)) {
			return false
		}
	}
	return true
}

func (c Compare) String() string {
	parts := make([]string, 0, len(c.Operands)+1)
	parts = append(parts, string(c.Op))
	for _, op := range c.Operands {
		parts = append(parts, op.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// All is the conjunction of its children; an empty All holds.
type All []Constraint

// Eval implements Constraint.
func (a All) Eval(t Tags) bool {
	for _, c := range a {
		if !c.Eval(t) {
			return false
		}
	}
	return true
}

func (a All) String() string { return seqString("all", a) }

// Any is the disjunction of its children; an empty Any does not hold.
type Any []Constraint

// Eval implements Constraint.
func (a Any) Eval(t Tags) bool {
	for _, c := range a {
		if c.Eval(t) {
			return true
		}
	}
	return false
}

func (a Any) String() string { return seqString("any", a) }

// Not negates its child.
type Not struct {
	Inner Constraint
}

// Eval implements Constraint.
func (n Not) Eval(t Tags) bool { return !n.Inner.Eval(t) }

func (n Not) String() string {
	return fmt.Sprintf("(not %s)", n.Inner)
}

func seqString(op string, children []Constraint) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(op)
	for _, c := range children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
