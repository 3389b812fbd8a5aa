package terra

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/terra-rp/terra-api/internal/rules/mods"
)

// RoleKind controls what a role locks down after creation. Free roles
// leave the character customizable; Normal and Special roles lock model
// and equipment customization at creation.
type RoleKind string

// Role kinds.
const (
	RoleFree    RoleKind = "free"
	RoleNormal  RoleKind = "normal"
	RoleSpecial RoleKind = "special"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *RoleKind) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch RoleKind(raw) {
	case RoleFree, RoleNormal, RoleSpecial:
		*k = RoleKind(raw)
		return nil
	default:
		return fmt.Errorf("line %d: invalid role kind %q", node.Line, raw)
	}
}

// Role is the pseudo-entity a player picks before the rest of the
// character. Roles are compiled from the campaign manifest's block
// definitions, with template and block contributions already merged in.
type Role struct {
	Info
	Kind RoleKind
	// Limit caps how many characters may hold the role; 0 is unlimited.
	Limit     uint32
	Gender    *Gender
	Races     Filter
	Classes   Filter
	Traits    Filter
	Locations Filter
	Mods      mods.Mods
}

// Block groups roles for presentation. It has no effect on resolution.
type Block struct {
	ID          string
	Name        string
	Description string
	Roles       []string
}
