// Package catalog assembles a campaign's rule catalog from layered YAML
// definition sources. A catalog is loaded once at startup and treated as
// immutable afterward, so it is safe to share across concurrent
// resolutions without locking.
package catalog

import (
	"github.com/terra-rp/terra-api/internal/entities/terra"
)

// System is one layer of selectable entities: six maps keyed by entity
// id. A layer may cover any subset of the maps.
type System struct {
	Races      map[string]*terra.Race      `yaml:"races"`
	Classes    map[string]*terra.Class     `yaml:"classes"`
	ArmorSets  map[string]*terra.ArmorSet  `yaml:"armorsets"`
	WeaponSets map[string]*terra.WeaponSet `yaml:"weaponsets"`
	Traits     map[string]*terra.Trait     `yaml:"traits"`
	Locations  map[string]*terra.Location  `yaml:"locations"`
}

// NewSystem returns an empty layer.
func NewSystem() *System {
	return &System{
		Races:      make(map[string]*terra.Race),
		Classes:    make(map[string]*terra.Class),
		ArmorSets:  make(map[string]*terra.ArmorSet),
		WeaponSets: make(map[string]*terra.WeaponSet),
		Traits:     make(map[string]*terra.Trait),
		Locations:  make(map[string]*terra.Location),
	}
}

// Merge folds a less specific layer into the receiver. Ids already
// present are kept untouched: the incoming layer only fills gaps, it
// never overrides or deep-merges an existing definition.
func (s *System) Merge(other *System) {
	s.Races = fillGaps(s.Races, other.Races)
	s.Classes = fillGaps(s.Classes, other.Classes)
	s.ArmorSets = fillGaps(s.ArmorSets, other.ArmorSets)
	s.WeaponSets = fillGaps(s.WeaponSets, other.WeaponSets)
	s.Traits = fillGaps(s.Traits, other.Traits)
	s.Locations = fillGaps(s.Locations, other.Locations)
}

// Entities returns the shared metadata of every entity in the system,
// for generic listing and integrity checks.
func (s *System) Entities() []terra.Entity {
	out := make([]terra.Entity, 0,
		len(s.Races)+len(s.Classes)+len(s.ArmorSets)+
			len(s.WeaponSets)+len(s.Traits)+len(s.Locations))
	for _, e := range s.Races {
		out = append(out, e)
	}
	for _, e := range s.Classes {
		out = append(out, e)
	}
	for _, e := range s.ArmorSets {
		out = append(out, e)
	}
	for _, e := range s.WeaponSets {
		out = append(out, e)
	}
	for _, e := range s.Traits {
		out = append(out, e)
	}
	for _, e := range s.Locations {
		out = append(out, e)
	}
	return out
}

func fillGaps[V any](into, from map[string]V) map[string]V {
	if len(from) == 0 {
		return into
	}
	if into == nil {
		into = make(map[string]V, len(from))
	}
	for id, entity := range from {
		if _, taken := into[id]; !taken {
			into[id] = entity
		}
	}
	return into
}
