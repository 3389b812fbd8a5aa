package tags

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Expr wraps a Constraint for YAML loading. The authoring syntax is a
// tagged variant: a bare string is a Has check, a sequence starts with an
// operator keyword followed by child expressions or comparison operands.
//
//	requires: quest/opened
//	requires: [all, gender/female, [any, block/nobles, role/nobles_maid]]
//	requires: [ge, reputation, 10]
type Expr struct {
	c Constraint
}

// Wrap builds an Expr around an existing constraint, mainly for tests.
func Wrap(c Constraint) *Expr {
	return &Expr{c: c}
}

// Constraint returns the wrapped constraint; nil when the Expr is nil.
func (e *Expr) Constraint() Constraint {
	if e == nil {
		return nil
	}
	return e.c
}

// Satisfied evaluates the wrapped constraint; an absent expression holds.
func (e *Expr) Satisfied(t Tags) bool {
	return Check(e.Constraint(), t)
}

func (e *Expr) String() string {
	if e == nil || e.c == nil {
		return ""
	}
	return e.c.String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	c, err := parseConstraint(node)
	if err != nil {
		return err
	}
	e.c = c
	return nil
}

func parseConstraint(node *yaml.Node) (Constraint, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var tag string
		if err := node.Decode(&tag); err != nil {
			return nil, err
		}
		return Has(tag), nil
	case yaml.SequenceNode:
		return parseSequence(node)
	default:
		return nil, fmt.Errorf("line %d: constraint must be a tag name or an operator sequence", node.Line)
	}
}

func parseSequence(node *yaml.Node) (Constraint, error) {
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("line %d: constraint sequence must start with an operator", node.Line)
	}
	var op string
	if err := node.Content[0].Decode(&op); err != nil {
		return nil, fmt.Errorf("line %d: constraint sequence must start with an operator: %w", node.Line, err)
	}
	rest := node.Content[1:]

	switch op {
	case "all", "any":
		children := make([]Constraint, 0, len(rest))
		for _, child := range rest {
			c, err := parseConstraint(child)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		if op == "all" {
			return All(children), nil
		}
		return Any(children), nil
	case "not":
		if len(rest) != 1 {
			return nil, fmt.Errorf("line %d: not must contain exactly one inner constraint", node.Line)
		}
		inner, err := parseConstraint(rest[0])
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	case string(OpLt), string(OpLe), string(OpEq), string(OpNe), string(OpGe), string(OpGt):
		operands := make([]Operand, 0, len(rest))
		for _, child := range rest {
			o, err := parseOperand(child)
			if err != nil {
				return nil, err
			}
			operands = append(operands, o)
		}
		if len(operands) < 2 {
			return nil, fmt.Errorf("line %d: %s needs at least two operands", node.Line, op)
		}
		return Compare{Op: Op(op), Operands: operands}, nil
	default:
		return nil, fmt.Errorf("line %d: invalid constraint operator %q", node.Line, op)
	}
}

func parseOperand(node *yaml.Node) (Operand, error) {
	if node.Kind != yaml.ScalarNode {
		return Operand{}, fmt.Errorf("line %d: comparison operand must be an integer or a tag name", node.Line)
	}
	if node.Tag == "!!int" {
		v, err := strconv.ParseInt(node.Value, 10, 32)
		if err != nil {
			return Operand{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Lit(int32(v)), nil
	}
	var tag string
	if err := node.Decode(&tag); err != nil {
		return Operand{}, err
	}
	return Ref(tag), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Provided tags are written
// either as a plain list of names (weight 1 each) or as a name-to-weight
// mapping.
func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		out := make(Tags, len(names))
		for _, name := range names {
			out.Add(name, 1)
		}
		*t = out
		return nil
	case yaml.MappingNode:
		var weighted map[string]int32
		if err := node.Decode(&weighted); err != nil {
			return err
		}
		*t = Tags(weighted)
		return nil
	default:
		return fmt.Errorf("line %d: provides must be a list of tags or a tag-to-weight mapping", node.Line)
	}
}
