// Package creation turns a player's raw selection into a validated,
// fully-computed character record.
package creation

import (
	"github.com/terra-rp/terra-api/internal/catalog"
	"github.com/terra-rp/terra-api/internal/entities/terra"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/rules/mods"
	"github.com/terra-rp/terra-api/internal/rules/names"
	"github.com/terra-rp/terra-api/internal/rules/tags"
)

// Resolve validates a selection against a campaign catalog and computes
// the creation record. It is pure: no I/O, no shared state, and the same
// inputs always produce the same output. Every rejection is an
// InvalidInput error tagged with the failing field.
//
// Gender comes from the player's account, not the selection, so it is an
// explicit argument.
func Resolve(c *catalog.Campaign, gender terra.Gender, sel terra.Selection) (*terra.CreationData, error) {
	// Name normalization and validation.
	name := names.Normalize(sel.Name)
	if !c.NameRules.Valid(name) {
		return nil, errors.InvalidInput(errors.FieldName)
	}
	nameExtra := names.NormalizeExtra(sel.NameExtra)
	if !c.NameRules.ValidExtra(nameExtra) {
		return nil, errors.InvalidInput(errors.FieldNameExtra)
	}

	// Lookups. Unknown ids are never skipped silently.
	role := c.Roles[sel.Role]
	if role == nil {
		return nil, errors.InvalidInput(errors.FieldRole)
	}
	race := c.System.Races[sel.Race]
	if race == nil {
		return nil, errors.InvalidInput(errors.FieldRace)
	}
	class := c.System.Classes[sel.Class]
	if class == nil {
		return nil, errors.InvalidInput(errors.FieldClass)
	}
	location := c.System.Locations[sel.Location]
	if location == nil {
		return nil, errors.InvalidInput(errors.FieldLocation)
	}

	var armor *terra.ArmorSet
	if sel.Armor != "" {
		if armor = c.System.ArmorSets[sel.Armor]; armor == nil {
			return nil, errors.InvalidInput(errors.FieldArmor)
		}
	}
	var weapon *terra.WeaponSet
	if sel.Weapon != "" {
		if weapon = c.System.WeaponSets[sel.Weapon]; weapon == nil {
			return nil, errors.InvalidInput(errors.FieldWeapon)
		}
	}

	var model *terra.Model
	if sel.Model != "" {
		m, ok := race.Models[sel.Model]
		if !ok {
			return nil, errors.InvalidInput(errors.FieldModel)
		}
		model = &m
	}

	traits := make([]*terra.Trait, 0, len(sel.Traits))
	seen := make(map[string]struct{}, len(sel.Traits))
	for _, id := range sel.Traits {
		if _, dup := seen[id]; dup {
			return nil, errors.InvalidInput(errors.FieldTraits)
		}
		seen[id] = struct{}{}
		trait := c.System.Traits[id]
		if trait == nil {
			return nil, errors.InvalidInput(errors.FieldTraits)
		}
		traits = append(traits, trait)
	}

	// Trait budget: the campaign caps both the number of traits and
	// their combined cost.
	if c.TraitLimit > 0 && len(traits) > c.TraitLimit {
		return nil, errors.InvalidInput(errors.FieldTraits)
	}
	var traitCost int32
	for _, trait := range traits {
		traitCost += trait.Cost
	}
	if traitCost > c.TraitBalance {
		return nil, errors.InvalidInput(errors.FieldTraits)
	}

	// Admissibility filters. A failing filter on the role or on one of
	// the race/class cross-filters tags the selection being checked; a
	// failing gender filter or a failing filter on an optional loadout
	// set tags the entity carrying it.
	if err := checkGender(role.Gender, gender, errors.FieldRole); err != nil {
		return nil, err
	}
	if err := checkGender(race.Gender, gender, errors.FieldRace); err != nil {
		return nil, err
	}
	if err := checkGender(class.Gender, gender, errors.FieldClass); err != nil {
		return nil, err
	}
	if !role.Races.Check(sel.Race) || !class.Races.Check(sel.Race) {
		return nil, errors.InvalidInput(errors.FieldRace)
	}
	if !role.Classes.Check(sel.Class) || !race.Classes.Check(sel.Class) {
		return nil, errors.InvalidInput(errors.FieldClass)
	}
	if !role.Locations.Check(sel.Location) {
		return nil, errors.InvalidInput(errors.FieldLocation)
	}
	if model != nil && model.Gender != gender {
		return nil, errors.InvalidInput(errors.FieldModel)
	}
	if armor != nil {
		if err := checkGender(armor.Gender, gender, errors.FieldArmor); err != nil {
			return nil, err
		}
		if !armor.Races.Check(sel.Race) || !armor.Classes.Check(sel.Class) {
			return nil, errors.InvalidInput(errors.FieldArmor)
		}
	}
	if weapon != nil {
		if err := checkGender(weapon.Gender, gender, errors.FieldWeapon); err != nil {
			return nil, err
		}
		if !weapon.Races.Check(sel.Race) || !weapon.Classes.Check(sel.Class) {
			return nil, errors.InvalidInput(errors.FieldWeapon)
		}
	}
	for i, trait := range traits {
		if err := checkGender(trait.Gender, gender, errors.FieldTraits); err != nil {
			return nil, err
		}
		if !role.Traits.Check(sel.Traits[i]) ||
			!trait.Races.Check(sel.Race) ||
			!trait.Classes.Check(sel.Class) {
			return nil, errors.InvalidInput(errors.FieldTraits)
		}
	}

	// Tag accumulation: one store seeded with the gender tag, then every
	// selected entity's provides merged in. Merge is commutative, so the
	// order here is presentation only.
	store := tags.New()
	store.Add(gender.Tag(), 1)
	store.Merge(role.Provides)
	store.Merge(race.Provides)
	store.Merge(class.Provides)
	store.Merge(location.Provides)
	if armor != nil {
		store.Merge(armor.Provides)
	}
	if weapon != nil {
		store.Merge(weapon.Provides)
	}
	for _, trait := range traits {
		store.Merge(trait.Provides)
	}

	// Constraint validation runs against the final merged store, so an
	// entity may require a tag that only another selected entity
	// provides.
	if !role.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldRole))
	}
	if !race.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldRace))
	}
	if !class.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldClass))
	}
	if !location.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldLocation))
	}
	if armor != nil && !armor.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldArmor))
	}
	if weapon != nil && !weapon.Requires.Satisfied(store) {
		return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldWeapon))
	}
	for _, trait := range traits {
		if !trait.Requires.Satisfied(store) {
			return nil, errors.InvalidInput(errors.ConditionTag(errors.FieldTraits))
		}
	}

	// Mods merge. Order-independent by construction.
	contributions := []mods.Mods{role.Mods, race.Mods, class.Mods, location.Mods}
	if armor != nil {
		contributions = append(contributions, armor.Mods)
	}
	if weapon != nil {
		contributions = append(contributions, weapon.Mods)
	}
	for _, trait := range traits {
		contributions = append(contributions, trait.Mods)
	}
	total := mods.Sum(contributions...)

	data := &terra.CreationData{
		Locked:    role.Kind != terra.RoleFree,
		Name:      name,
		NameExtra: nameExtra,
		Gender:    gender,

		RaceGameID:  race.GameID,
		ClassGameID: class.GameID,
		Level:       clamp(c.LevelBase+total.Level, c.LevelMin, c.LevelMax),
		Money:       max(total.Money, 0),

		Map:         location.Map,
		Zone:        location.Zone,
		X:           location.Position[0],
		Y:           location.Position[1],
		Z:           location.Position[2],
		Orientation: location.Orientation,

		// Both spell sets pass through untouched. The banned set is an
		// instruction to the game server, not a local filter.
		SpellsBanned: total.SpellsBanned,
		Spells:       total.Spells,
		Skills:       total.Skills,
		Items:        total.Items,

		WantsLoadout: sel.WantsLoadout,
		Hidden:       sel.Hidden,

		Audit: sel,
	}

	data.CustomizeAtLogin = model == nil || model.Customizable
	if model != nil {
		data.ModelDisplayID = model.DisplayID
		data.ModelScale = orDefault(model.Scale)
		data.ModelSpeed = orDefault(model.Speed)
	}
	if armor != nil {
		fillArmor(&data.Equipment, armor)
	}
	if weapon != nil {
		data.Equipment[terra.SlotMainhand] = weapon.Mainhand
		data.Equipment[terra.SlotOffhand] = weapon.Offhand
		data.Equipment[terra.SlotRanged] = weapon.Ranged
	}

	return data, nil
}

func checkGender(want *terra.Gender, got terra.Gender, field string) error {
	if want != nil && *want != got {
		return errors.InvalidInput(field)
	}
	return nil
}

func fillArmor(eq *terra.Equipment, armor *terra.ArmorSet) {
	eq[terra.SlotHead] = armor.Head
	eq[terra.SlotNeck] = armor.Neck
	eq[terra.SlotShoulders] = armor.Shoulders
	eq[terra.SlotBody] = armor.Body
	eq[terra.SlotChest] = armor.Chest
	eq[terra.SlotWaist] = armor.Waist
	eq[terra.SlotLegs] = armor.Legs
	eq[terra.SlotFeet] = armor.Feet
	eq[terra.SlotWrists] = armor.Wrists
	eq[terra.SlotHands] = armor.Hands
	for i, id := range armor.Fingers {
		if i >= 2 {
			break
		}
		eq[terra.SlotFinger1+i] = id
	}
	for i, id := range armor.Trinkets {
		if i >= 2 {
			break
		}
		eq[terra.SlotTrinket1+i] = id
	}
	eq[terra.SlotBack] = armor.Back
	eq[terra.SlotTabard] = armor.Tabard
	for i, id := range armor.Bags {
		if i >= 4 {
			break
		}
		eq[terra.SlotBag1+i] = id
	}
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// orDefault maps an unset model scale or speed to the game default.
func orDefault(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
