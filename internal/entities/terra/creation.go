package terra

import (
	"sort"
	"strconv"
	"strings"

	"github.com/terra-rp/terra-api/internal/rules/mods"
)

// Selection is the raw user input to a resolution: the chosen entity ids
// plus the free-form fields. It is kept verbatim on the creation record
// as the audit trail of what was picked.
type Selection struct {
	Role     string   `yaml:"role" json:"role"`
	Race     string   `yaml:"race" json:"race"`
	Model    string   `yaml:"model,omitempty" json:"model,omitempty"`
	Class    string   `yaml:"class" json:"class"`
	Armor    string   `yaml:"armor,omitempty" json:"armor,omitempty"`
	Weapon   string   `yaml:"weapon,omitempty" json:"weapon,omitempty"`
	Traits   []string `yaml:"traits,omitempty" json:"traits,omitempty"`
	Location string   `yaml:"location" json:"location"`

	Name      string `yaml:"name" json:"name"`
	NameExtra string `yaml:"name_extra,omitempty" json:"name_extra,omitempty"`
	// Description is shown publicly; Comment goes to the campaign masters.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Comment     string `yaml:"comment,omitempty" json:"comment,omitempty"`

	WantsLoadout bool `yaml:"wants_loadout,omitempty" json:"wants_loadout,omitempty"`
	Hidden       bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Equipment slot indexes in the game server's fixed wire order.
const (
	SlotHead = iota
	SlotNeck
	SlotShoulders
	SlotBody
	SlotChest
	SlotWaist
	SlotLegs
	SlotFeet
	SlotWrists
	SlotHands
	SlotFinger1
	SlotFinger2
	SlotTrinket1
	SlotTrinket2
	SlotBack
	SlotMainhand
	SlotOffhand
	SlotRanged
	SlotTabard
	SlotBag1
	SlotBag2
	SlotBag3
	SlotBag4

	// NumSlots is the fixed length of the equipment array.
	NumSlots = 23
)

// Equipment is the fixed-order slot array handed to the game server; 0
// marks an empty slot.
type Equipment [NumSlots]uint32

// CreationData is the fully-resolved character record produced by a
// successful resolution. It is created once and handed to the
// persistence collaborator; nothing mutates it afterward.
type CreationData struct {
	ID     string `json:"id,omitempty"`
	Locked bool   `json:"locked"`

	Name      string `json:"name"`
	NameExtra string `json:"name_extra,omitempty"`
	Gender    Gender `json:"gender"`

	RaceGameID  uint32 `json:"race_game_id"`
	ClassGameID uint32 `json:"class_game_id"`
	Level       int32  `json:"level"`
	Money       int32  `json:"money"`

	ModelDisplayID uint32  `json:"model_display_id,omitempty"`
	ModelScale     float32 `json:"model_scale,omitempty"`
	ModelSpeed     float32 `json:"model_speed,omitempty"`
	// CustomizeAtLogin is set when the player still gets to adjust the
	// appearance in-game: either no model was picked or the picked one
	// allows it.
	CustomizeAtLogin bool `json:"customize_at_login,omitempty"`

	Map         uint32  `json:"map"`
	Zone        uint32  `json:"zone"`
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	Z           float32 `json:"z"`
	Orientation float32 `json:"orientation"`

	Equipment    Equipment    `json:"equipment"`
	SpellsBanned mods.IDSet   `json:"spells_banned,omitempty"`
	Spells       mods.IDSet   `json:"spells,omitempty"`
	Skills       mods.Amounts `json:"skills,omitempty"`
	Items        mods.Amounts `json:"items,omitempty"`

	WantsLoadout bool `json:"wants_loadout"`
	Hidden       bool `json:"hidden"`

	Audit Selection `json:"audit"`
}

// String renders the equipment array in the game server's wire format:
// 23 space-separated decimal item ids, 0 for empty slots.
func (e Equipment) String() string {
	tokens := make([]string, NumSlots)
	for i, id := range e {
		tokens[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(tokens, " ")
}

// JoinIDs renders an id set as sorted space-separated decimals. Empty
// sets render to "", which the persistence sink stores as an absent
// value rather than an empty field.
func JoinIDs(set mods.IDSet) string {
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(tokens, " ")
}

// JoinAmounts renders an id-to-amount map as sorted alternating
// "id value" decimal tokens. Negative amounts are floored at 0 on the
// wire; the empty map renders to "".
func JoinAmounts(amounts mods.Amounts) string {
	ids := make([]uint32, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	tokens := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		amount := amounts[id]
		if amount < 0 {
			amount = 0
		}
		tokens = append(tokens,
			strconv.FormatUint(uint64(id), 10),
			strconv.FormatInt(int64(amount), 10))
	}
	return strings.Join(tokens, " ")
}
