// Package terra holds the campaign rule catalog entities and the
// resolved character creation record.
// NOTE: These are data-only structs loaded from the campaign's YAML
// catalog; all validation and derivation happens in the resolver.
package terra

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/terra-rp/terra-api/internal/rules/mods"
	"github.com/terra-rp/terra-api/internal/rules/tags"
)

// Gender of a character, chosen at creation time.
type Gender string

// Genders recognised by the catalog and the game server.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GameID is the numeric encoding the game server uses for gender.
func (g Gender) GameID() uint8 {
	if g == GenderFemale {
		return 1
	}
	return 0
}

// Tag returns the tag seeded into every resolution's store.
func (g Gender) Tag() string {
	return "gender/" + string(g)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Gender) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch Gender(raw) {
	case GenderMale, GenderFemale:
		*g = Gender(raw)
		return nil
	default:
		return fmt.Errorf("line %d: invalid gender %q", node.Line, raw)
	}
}

// Info is the metadata every catalog entity shares: display fields plus
// the tags it provides and the constraint gating its selection.
type Info struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Preview     string     `yaml:"preview"`
	Requires    *tags.Expr `yaml:"requires"`
	Provides    tags.Tags  `yaml:"provides"`
}

// Meta implements Entity.
func (i *Info) Meta() *Info { return i }

// Entity is anything with shared catalog metadata. Generic listing and
// validation code treats all entity kinds uniformly through it.
type Entity interface {
	Meta() *Info
}

// Race is a selectable playable race with its game-server identifier and
// optional model variants.
type Race struct {
	Info    `yaml:",inline"`
	GameID  uint32           `yaml:"game_id"`
	Gender  *Gender          `yaml:"gender"`
	Classes Filter           `yaml:"classes"`
	Models  map[string]Model `yaml:"models"`
	Mods    mods.Mods        `yaml:",inline"`
}

// Model is a visual variant of a race. Zero scale or speed means the
// game default of 1.0. A customizable model lets the player adjust the
// appearance at first login.
type Model struct {
	Name         string  `yaml:"name"`
	DisplayID    uint32  `yaml:"display_id"`
	Gender       Gender  `yaml:"gender"`
	Scale        float32 `yaml:"scale"`
	Speed        float32 `yaml:"speed"`
	Customizable bool    `yaml:"customizable"`
}

// Class is a selectable character class.
type Class struct {
	Info   `yaml:",inline"`
	GameID uint32    `yaml:"game_id"`
	Gender *Gender   `yaml:"gender"`
	Races  Filter    `yaml:"races"`
	Mods   mods.Mods `yaml:",inline"`
}

// ArmorSet is a named armor loadout assigning item ids to equipment
// slots. Unset slots stay empty.
type ArmorSet struct {
	Info      `yaml:",inline"`
	Races     Filter    `yaml:"races"`
	Classes   Filter    `yaml:"classes"`
	Gender    *Gender   `yaml:"gender"`
	Head      uint32    `yaml:"head"`
	Neck      uint32    `yaml:"neck"`
	Shoulders uint32    `yaml:"shoulders"`
	Body      uint32    `yaml:"body"`
	Chest     uint32    `yaml:"chest"`
	Waist     uint32    `yaml:"waist"`
	Legs      uint32    `yaml:"legs"`
	Feet      uint32    `yaml:"feet"`
	Wrists    uint32    `yaml:"wrists"`
	Hands     uint32    `yaml:"hands"`
	Fingers   []uint32  `yaml:"fingers"`
	Trinkets  []uint32  `yaml:"trinkets"`
	Back      uint32    `yaml:"back"`
	Tabard    uint32    `yaml:"tabard"`
	Bags      []uint32  `yaml:"bags"`
	Mods      mods.Mods `yaml:",inline"`
}

// WeaponSet is a named weapon loadout.
type WeaponSet struct {
	Info     `yaml:",inline"`
	Races    Filter    `yaml:"races"`
	Classes  Filter    `yaml:"classes"`
	Gender   *Gender   `yaml:"gender"`
	Mainhand uint32    `yaml:"mainhand"`
	Offhand  uint32    `yaml:"offhand"`
	Ranged   uint32    `yaml:"ranged"`
	Mods     mods.Mods `yaml:",inline"`
}

// Trait is an optional character perk with a cost against the campaign's
// trait budget. Group marks mutually exclusive traits for the selection
// UI.
type Trait struct {
	Info    `yaml:",inline"`
	Cost    int32     `yaml:"cost"`
	Group   string    `yaml:"group"`
	Races   Filter    `yaml:"races"`
	Classes Filter    `yaml:"classes"`
	Gender  *Gender   `yaml:"gender"`
	Mods    mods.Mods `yaml:",inline"`
}

// Location is a starting position in the game world. The position fields
// are opaque to the resolver and copied through to the creation record.
type Location struct {
	Info        `yaml:",inline"`
	Map         uint32     `yaml:"map"`
	Zone        uint32     `yaml:"zone"`
	Position    [3]float32 `yaml:"position"`
	Orientation float32    `yaml:"orientation"`
	Mods        mods.Mods  `yaml:"mods"`
}
