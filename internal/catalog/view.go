package catalog

import (
	"sort"

	"github.com/terra-rp/terra-api/internal/entities/terra"
)

// Entry pairs an entity with its catalog id for ordered listings.
type Entry[T terra.Entity] struct {
	ID     string
	Entity T
}

// View is a deterministically ordered snapshot of a System for
// presentation: races and classes by game id, sets and locations by
// name, traits by descending cost then name.
type View struct {
	Races      []Entry[*terra.Race]
	Classes    []Entry[*terra.Class]
	ArmorSets  []Entry[*terra.ArmorSet]
	WeaponSets []Entry[*terra.WeaponSet]
	Traits     []Entry[*terra.Trait]
	Locations  []Entry[*terra.Location]
}

// View builds the ordered snapshot.
func (s *System) View() *View {
	v := &View{
		Races:      entries(s.Races),
		Classes:    entries(s.Classes),
		ArmorSets:  entries(s.ArmorSets),
		WeaponSets: entries(s.WeaponSets),
		Traits:     entries(s.Traits),
		Locations:  entries(s.Locations),
	}
	sort.Slice(v.Races, func(i, j int) bool {
		return v.Races[i].Entity.GameID < v.Races[j].Entity.GameID
	})
	sort.Slice(v.Classes, func(i, j int) bool {
		return v.Classes[i].Entity.GameID < v.Classes[j].Entity.GameID
	})
	sortByName(v.ArmorSets)
	sortByName(v.WeaponSets)
	sort.Slice(v.Traits, func(i, j int) bool {
		a, b := v.Traits[i].Entity, v.Traits[j].Entity
		if a.Cost != b.Cost {
			return a.Cost > b.Cost
		}
		return a.Name < b.Name
	})
	sortByName(v.Locations)
	return v
}

func entries[T terra.Entity](m map[string]T) []Entry[T] {
	out := make([]Entry[T], 0, len(m))
	for id, entity := range m {
		out = append(out, Entry[T]{ID: id, Entity: entity})
	}
	return out
}

func sortByName[T terra.Entity](list []Entry[T]) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity.Meta(), list[j].Entity.Meta()
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return list[i].ID < list[j].ID
	})
}
