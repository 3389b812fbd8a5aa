package catalog_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/terra-rp/terra-api/internal/catalog"
	"github.com/terra-rp/terra-api/internal/entities/terra"
)

type CatalogTestSuite struct {
	suite.Suite
	log *slog.Logger
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *CatalogTestSuite) write(dir, name, content string) {
	path := filepath.Join(dir, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o750))
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
}

func (s *CatalogTestSuite) TestSystemMergeFillsGapsOnly() {
	specific := catalog.NewSystem()
	specific.Races["human"] = &terra.Race{Info: terra.Info{Name: "Campaign Human"}, GameID: 1}

	shared := catalog.NewSystem()
	shared.Races["human"] = &terra.Race{Info: terra.Info{Name: "Shared Human"}, GameID: 1}
	shared.Races["elf"] = &terra.Race{Info: terra.Info{Name: "Elf"}, GameID: 4}

	specific.Merge(shared)

	s.Equal("Campaign Human", specific.Races["human"].Name)
	s.Equal("Elf", specific.Races["elf"].Name)
}

func (s *CatalogTestSuite) TestSystemMergeIdempotent() {
	shared := catalog.NewSystem()
	shared.Races["elf"] = &terra.Race{Info: terra.Info{Name: "Elf"}, GameID: 4}

	once := catalog.NewSystem()
	once.Merge(shared)
	twice := catalog.NewSystem()
	twice.Merge(shared)
	twice.Merge(shared)

	s.Equal(once.Races, twice.Races)
}

func (s *CatalogTestSuite) TestLoadSystemLayering() {
	dir := s.T().TempDir()
	s.write(dir, "campaign.yml", `
races:
  human:
    name: Campaign Human
    game_id: 1
`)
	s.write(dir, "shared/races.yml", `
races:
  human:
    name: Shared Human
    game_id: 1
  elf:
    name: Elf
    game_id: 4
classes:
  warrior:
    name: Warrior
    game_id: 1
`)

	system, err := catalog.LoadSystem(s.log,
		filepath.Join(dir, "campaign.yml"),
		filepath.Join(dir, "shared"),
		filepath.Join(dir, "missing"),
	)
	s.Require().NoError(err)

	s.Equal("Campaign Human", system.Races["human"].Name)
	s.Equal("Elf", system.Races["elf"].Name)
	s.Equal(uint32(1), system.Classes["warrior"].GameID)
}

func (s *CatalogTestSuite) TestLoadSystemRejectsUnknownFields() {
	dir := s.T().TempDir()
	s.write(dir, "bad.yml", `
races:
  human:
    name: Human
    game_id: 1
    charisma: 10
`)

	_, err := catalog.LoadSystem(s.log, filepath.Join(dir, "bad.yml"))
	s.Require().Error(err)
	s.Contains(err.Error(), "charisma")
}

func (s *CatalogTestSuite) TestLoadSystemParsesEntities() {
	dir := s.T().TempDir()
	s.write(dir, "system.yml", `
races:
  human:
    name: Human
    game_id: 1
    classes:
      deny: [necromancer]
    models:
      tall:
        name: Tall
        display_id: 5001
        gender: male
        scale: 1.1
        customizable: true
classes:
  warrior:
    name: Warrior
    game_id: 1
    requires: [all, strong, [ge, reputation, 10]]
traits:
  veteran:
    name: Veteran
    cost: 2
    provides: [veteran]
    skills:
      44: 300
    money: 50
locations:
  square:
    name: Town Square
    map: 0
    zone: 12
    position: [-8913.2, 554.6, 93.8]
    orientation: 0.6
`)

	system, err := catalog.LoadSystem(s.log, filepath.Join(dir, "system.yml"))
	s.Require().NoError(err)

	human := system.Races["human"]
	s.Require().NotNil(human)
	s.False(human.Classes.Check("necromancer"))
	s.True(human.Classes.Check("warrior"))
	s.Equal(uint32(5001), human.Models["tall"].DisplayID)
	s.True(human.Models["tall"].Customizable)

	warrior := system.Classes["warrior"]
	s.Require().NotNil(warrior)
	s.Equal("(all strong (ge reputation 10))", warrior.Requires.String())

	veteran := system.Traits["veteran"]
	s.Require().NotNil(veteran)
	s.Equal(int32(2), veteran.Cost)
	s.Equal(int32(300), veteran.Mods.Skills[44])
	s.Equal(int32(50), veteran.Mods.Money)
	s.Equal(int32(1), veteran.Provides["veteran"])

	square := system.Locations["square"]
	s.Require().NotNil(square)
	s.Equal(uint32(12), square.Zone)
	s.InDelta(-8913.2, square.Position[0], 0.001)
}

const manifestSrc = `
name: Северное королевство
script: cyrillic
level_base: 10
level_min: 1
level_max: 60
trait_limit: 2
trait_balance: 3
role_template:
  kind: normal
  provides: [citizen]
  money: 100
blocks:
  - name: Guards
    provides: [block_member]
    money: 50
    roles:
      - id: guard
        name: City Guard
        limit: 4
        provides:
          strong: 1
        money: 25
      - name: Captain of the Guard
        kind: special
        requires: [ge, reputation, 10]
  - id: commons
    name: Commons
    roles:
      - id: peasant
        name: Peasant
        kind: free
`

func (s *CatalogTestSuite) TestLoadCampaign() {
	dir := s.T().TempDir()
	campaignDir := filepath.Join(dir, "north")
	s.write(campaignDir, "manifest.yml", manifestSrc)
	s.write(campaignDir, "system.yml", `
races:
  human:
    name: Человек
    game_id: 1
`)
	s.write(campaignDir, "system/classes.yml", `
classes:
  warrior:
    name: Воин
    game_id: 1
`)

	shared := catalog.NewSystem()
	shared.Races["elf"] = &terra.Race{Info: terra.Info{Name: "Эльф"}, GameID: 4}

	campaign, err := catalog.LoadCampaign(s.log, campaignDir, shared)
	s.Require().NoError(err)

	s.Equal("north", campaign.ID)
	s.Equal("Северное королевство", campaign.Name)
	s.Equal(int32(10), campaign.LevelBase)
	s.Equal(2, campaign.TraitLimit)

	// Campaign layer, campaign subdirectory, and shared layer all land.
	s.NotNil(campaign.System.Races["human"])
	s.NotNil(campaign.System.Classes["warrior"])
	s.NotNil(campaign.System.Races["elf"])

	s.Require().Len(campaign.Blocks, 2)
	s.Equal("guards", campaign.Blocks[0].ID)
	s.Equal([]string{"guards_guard", "guards_captain_of_the_guard"}, campaign.Blocks[0].Roles)
	s.Equal("commons", campaign.Blocks[1].ID)

	guard := campaign.Roles["guards_guard"]
	s.Require().NotNil(guard)
	s.Equal(terra.RoleNormal, guard.Kind)
	s.Equal(uint32(4), guard.Limit)
	// Template + block + role mods fold together.
	s.Equal(int32(175), guard.Mods.Money)
	// Template and block provides fold in, plus the marker tags.
	s.Equal(int32(1), guard.Provides["citizen"])
	s.Equal(int32(1), guard.Provides["block_member"])
	s.Equal(int32(1), guard.Provides["strong"])
	s.Equal(int32(1), guard.Provides["block/guards"])
	s.Equal(int32(1), guard.Provides["role/guards_guard"])

	captain := campaign.Roles["guards_captain_of_the_guard"]
	s.Require().NotNil(captain)
	s.Equal(terra.RoleSpecial, captain.Kind)
	s.Equal("(ge reputation 10)", captain.Requires.String())

	peasant := campaign.Roles["commons_peasant"]
	s.Require().NotNil(peasant)
	s.Equal(terra.RoleFree, peasant.Kind)
	s.Equal(int32(100), peasant.Mods.Money)
}

func (s *CatalogTestSuite) TestLoadCampaignValidation() {
	dir := s.T().TempDir()

	testCases := []struct {
		name     string
		manifest string
	}{
		{"missing name", "script: cyrillic\nlevel_min: 1\nlevel_max: 2\nlevel_base: 1\nrole_template:\n  kind: normal\n"},
		{"bad level range", "name: x\nlevel_min: 5\nlevel_max: 2\nlevel_base: 5\nrole_template:\n  kind: normal\n"},
		{"base outside range", "name: x\nlevel_min: 1\nlevel_max: 2\nlevel_base: 9\nrole_template:\n  kind: normal\n"},
		{"missing template kind", "name: x\nlevel_min: 1\nlevel_max: 2\nlevel_base: 1\n"},
		{"unknown script", "name: x\nscript: runic\nlevel_min: 1\nlevel_max: 2\nlevel_base: 1\nrole_template:\n  kind: normal\n"},
		{"unknown manifest field", "name: x\nlevel_min: 1\nlevel_max: 2\nlevel_base: 1\nrole_template:\n  kind: normal\nextra_field: 1\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			campaignDir := filepath.Join(dir, "bad", tc.name, "c")
			s.write(campaignDir, "manifest.yml", tc.manifest)
			_, err := catalog.LoadCampaign(s.log, campaignDir, nil)
			s.Error(err)
		})
	}
}

func (s *CatalogTestSuite) TestLoadCampaignDuplicateRole() {
	dir := s.T().TempDir()
	campaignDir := filepath.Join(dir, "north")
	s.write(campaignDir, "manifest.yml", `
name: x
level_min: 1
level_max: 2
level_base: 1
role_template:
  kind: normal
blocks:
  - id: guards
    name: Guards
    roles:
      - id: guard
        name: Guard
      - id: guard
        name: Guard Again
`)

	_, err := catalog.LoadCampaign(s.log, campaignDir, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "duplicate role")
}

func (s *CatalogTestSuite) TestViewOrdering() {
	system := catalog.NewSystem()
	system.Races["elf"] = &terra.Race{Info: terra.Info{Name: "Elf"}, GameID: 4}
	system.Races["human"] = &terra.Race{Info: terra.Info{Name: "Human"}, GameID: 1}
	system.Traits["veteran"] = &terra.Trait{Info: terra.Info{Name: "Veteran"}, Cost: 2}
	system.Traits["pauper"] = &terra.Trait{Info: terra.Info{Name: "Pauper"}, Cost: -1}
	system.Traits["hardy"] = &terra.Trait{Info: terra.Info{Name: "Hardy"}, Cost: 2}

	view := system.View()

	s.Equal("human", view.Races[0].ID)
	s.Equal("elf", view.Races[1].ID)
	// Traits by descending cost, then name.
	s.Equal("hardy", view.Traits[0].ID)
	s.Equal("veteran", view.Traits[1].ID)
	s.Equal("pauper", view.Traits[2].ID)
}
