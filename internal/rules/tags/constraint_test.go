package tags_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/terra-rp/terra-api/internal/rules/tags"
)

type ConstraintTestSuite struct {
	suite.Suite
	store tags.Tags
}

func TestConstraintSuite(t *testing.T) {
	suite.Run(t, new(ConstraintTestSuite))
}

func (s *ConstraintTestSuite) SetupTest() {
	s.store = tags.Tags{
		"gender/female": 1,
		"block/nobles":  1,
		"reputation":    10,
		"quest/opened":  0,
	}
}

func (s *ConstraintTestSuite) TestCheckNilConstraint() {
	s.True(tags.Check(nil, s.store))
}

func (s *ConstraintTestSuite) TestHas() {
	s.True(tags.Has("block/nobles").Eval(s.store))
	s.True(tags.Has("quest/opened").Eval(s.store))
	s.False(tags.Has("block/guards").Eval(s.store))
}

func (s *ConstraintTestSuite) TestCompare() {
	testCases := []struct {
		name     string
		c        tags.Compare
		expected bool
	}{
		{
			name:     "ge literal holds",
			c:        tags.Compare{Op: tags.OpGe, Operands: []tags.Operand{tags.Ref("reputation"), tags.Lit(10)}},
			expected: true,
		},
		{
			name:     "gt literal fails",
			c:        tags.Compare{Op: tags.OpGt, Operands: []tags.Operand{tags.Ref("reputation"), tags.Lit(10)}},
			expected: false,
		},
		{
			name:     "missing tag reads as zero",
			c:        tags.Compare{Op: tags.OpEq, Operands: []tags.Operand{tags.Ref("missing"), tags.Lit(0)}},
			expected: true,
		},
		{
			name:     "ne",
			c:        tags.Compare{Op: tags.OpNe, Operands: []tags.Operand{tags.Ref("reputation"), tags.Lit(3)}},
			expected: true,
		},
		{
			name:     "single operand holds trivially",
			c:        tags.Compare{Op: tags.OpLt, Operands: []tags.Operand{tags.Ref("reputation")}},
			expected: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.c.Eval(s.store))
		})
	}
}

func (s *ConstraintTestSuite) TestChainCompare() {
	chain := func(a, b int32) bool {
		store := tags.Tags{"a": a, "b": b}
		c := tags.Compare{Op: tags.OpLt, Operands: []tags.Operand{
			tags.Ref("a"), tags.Lit(5), tags.Ref("b"),
		}}
		return c.Eval(store)
	}

	s.True(chain(3, 10))
	s.False(chain(3, 4))
	s.False(chain(6, 10))
}

func (s *ConstraintTestSuite) TestAllEmptyHolds() {
	s.True(tags.All{}.Eval(s.store))
	s.True(tags.All(nil).Eval(s.store))
}

func (s *ConstraintTestSuite) TestAnyEmptyFails() {
	s.False(tags.Any{}.Eval(s.store))
	s.False(tags.Any(nil).Eval(s.store))
}

func (s *ConstraintTestSuite) TestNesting() {
	c := tags.All{
		tags.Has("gender/female"),
		tags.Any{
			tags.Has("block/guards"),
			tags.Has("block/nobles"),
		},
	}
	s.True(c.Eval(s.store))

	c = tags.All{
		tags.Has("gender/female"),
		tags.Not{Inner: tags.Has("block/nobles")},
	}
	s.False(c.Eval(s.store))
}

func (s *ConstraintTestSuite) TestDoubleNegation() {
	constraints := []tags.Constraint{
		tags.Has("block/nobles"),
		tags.Has("missing"),
		tags.Compare{Op: tags.OpGe, Operands: []tags.Operand{tags.Ref("reputation"), tags.Lit(5)}},
		tags.Any{},
		tags.All{},
	}
	for _, c := range constraints {
		s.Equal(c.Eval(s.store), tags.Not{Inner: tags.Not{Inner: c}}.Eval(s.store), c.String())
	}
}

func (s *ConstraintTestSuite) TestString() {
	c := tags.All{
		tags.Has("gender/female"),
		tags.Any{tags.Has("block/nobles"), tags.Not{Inner: tags.Has("exiled")}},
		tags.Compare{Op: tags.OpGe, Operands: []tags.Operand{tags.Ref("reputation"), tags.Lit(10)}},
	}
	s.Equal("(all gender/female (any block/nobles (not exiled)) (ge reputation 10))", c.String())
}
