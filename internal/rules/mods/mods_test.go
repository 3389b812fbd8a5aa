package mods_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/terra-rp/terra-api/internal/rules/mods"
)

type ModsTestSuite struct {
	suite.Suite
}

func TestModsSuite(t *testing.T) {
	suite.Run(t, new(ModsTestSuite))
}

func (s *ModsTestSuite) sample() (mods.Mods, mods.Mods) {
	a := mods.Mods{
		Spells: mods.SetOf(10, 11),
		Skills: mods.Amounts{44: 300},
		Money:  100,
		Level:  2,
	}
	b := mods.Mods{
		SpellsBanned: mods.SetOf(99),
		Spells:       mods.SetOf(11, 12),
		Skills:       mods.Amounts{44: -50, 98: 1},
		Items:        mods.Amounts{2070: 5},
		Money:        -40,
		Level:        1,
	}
	return a, b
}

func (s *ModsTestSuite) TestMerge() {
	a, b := s.sample()
	a.Merge(b)

	s.Equal(mods.SetOf(10, 11, 12), a.Spells)
	s.Equal(mods.SetOf(99), a.SpellsBanned)
	s.Equal(mods.Amounts{44: 250, 98: 1}, a.Skills)
	s.Equal(mods.Amounts{2070: 5}, a.Items)
	s.Equal(int32(60), a.Money)
	s.Equal(int32(3), a.Level)
}

func (s *ModsTestSuite) TestMergeCommutative() {
	a, b := s.sample()
	ab := mods.Sum(a, b)

	a, b = s.sample()
	ba := mods.Sum(b, a)

	s.Equal(ab, ba)
}

func (s *ModsTestSuite) TestMergeAssociative() {
	c := mods.Mods{Spells: mods.SetOf(13), Money: 7}

	a, b := s.sample()
	left := mods.Sum(mods.Sum(a, b), c)

	a, b = s.sample()
	right := mods.Sum(a, mods.Sum(b, c))

	s.Equal(left, right)
}

func (s *ModsTestSuite) TestEmptyIsIdentity() {
	a, _ := s.sample()
	s.Equal(a, mods.Sum(a, mods.New()))
	s.Equal(a, mods.Sum(mods.New(), a))
	s.Equal(mods.New(), mods.Sum())
}

func (s *ModsTestSuite) TestNegativesSurviveMerge() {
	// Clamping is the resolver's job; the algebra keeps deltas intact.
	total := mods.Sum(
		mods.Mods{Money: 100},
		mods.Mods{Money: -1000},
	)
	s.Equal(int32(-900), total.Money)
}

func (s *ModsTestSuite) TestUnmarshalYAML() {
	src := `
spells_banned: [99]
spells: [10, 11]
skills:
  44: 300
items:
  2070: 5
money: 100
level: 2
`
	var m mods.Mods
	s.Require().NoError(yaml.Unmarshal([]byte(src), &m))
	s.Equal(mods.SetOf(99), m.SpellsBanned)
	s.Equal(mods.SetOf(10, 11), m.Spells)
	s.Equal(mods.Amounts{44: 300}, m.Skills)
	s.Equal(mods.Amounts{2070: 5}, m.Items)
	s.Equal(int32(100), m.Money)
	s.Equal(int32(2), m.Level)
}

func (s *ModsTestSuite) TestIDSetContains() {
	set := mods.SetOf(1, 2)
	s.True(set.Contains(1))
	s.False(set.Contains(3))
}
