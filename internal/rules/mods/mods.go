// Package mods implements the merge algebra over game-effect deltas.
// Merging is commutative and associative with the zero Mods as identity,
// so contributions from any number of selected entities can be folded in
// any order.
package mods

import (
	"gopkg.in/yaml.v3"
)

// IDSet is a set of game-side ability or spell identifiers. It is written
// in catalog files as a plain list of ids.
type IDSet map[uint32]struct{}

// SetOf builds an IDSet from the given ids.
func SetOf(ids ...uint32) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s IDSet) Contains(id uint32) bool {
	_, ok := s[id]
	return ok
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *IDSet) UnmarshalYAML(node *yaml.Node) error {
	var ids []uint32
	if err := node.Decode(&ids); err != nil {
		return err
	}
	*s = SetOf(ids...)
	return nil
}

// Amounts maps a game-side identifier to an integer delta.
type Amounts map[uint32]int32

// Mods is the net mechanical effect contributed by a selection. Negative
// deltas are legal intermediate values; clamping happens only when the
// resolver produces final output.
type Mods struct {
	SpellsBanned IDSet   `yaml:"spells_banned"`
	Spells       IDSet   `yaml:"spells"`
	Skills       Amounts `yaml:"skills"`
	Items        Amounts `yaml:"items"`
	Money        int32   `yaml:"money"`
	Level        int32   `yaml:"level"`
}

// New returns the identity element of the merge.
func New() Mods {
	return Mods{}
}

// Merge folds other into the receiver: set union for the id sets, per-key
// summation for the amount maps, addition for the scalars.
func (m *Mods) Merge(other Mods) {
	for id := range other.SpellsBanned {
		if m.SpellsBanned == nil {
			m.SpellsBanned = make(IDSet)
		}
		m.SpellsBanned[id] = struct{}{}
	}
	for id := range other.Spells {
		if m.Spells == nil {
			m.Spells = make(IDSet)
		}
		m.Spells[id] = struct{}{}
	}
	m.Skills = mergeAmounts(m.Skills, other.Skills)
	m.Items = mergeAmounts(m.Items, other.Items)
	m.Money += other.Money
	m.Level += other.Level
}

// Sum left-folds Merge over the given contributions starting from the
// identity. The result does not depend on the order of the inputs.
func Sum(contributions ...Mods) Mods {
	out := New()
	for _, m := range contributions {
		out.Merge(m)
	}
	return out
}

func mergeAmounts(into, from Amounts) Amounts {
	if len(from) == 0 {
		return into
	}
	if into == nil {
		into = make(Amounts, len(from))
	}
	for id, amount := range from {
		into[id] += amount
	}
	return into
}
