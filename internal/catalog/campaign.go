package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/terra-rp/terra-api/internal/entities/terra"
	"github.com/terra-rp/terra-api/internal/rules/mods"
	"github.com/terra-rp/terra-api/internal/rules/names"
	"github.com/terra-rp/terra-api/internal/rules/tags"
)

// Campaign is a fully assembled rule catalog: the merged entity system
// plus the compiled role blocks and the campaign-wide creation settings.
// It is immutable after Load returns.
type Campaign struct {
	ID          string
	Name        string
	Description string

	NameRules names.Rules

	LevelBase int32
	LevelMin  int32
	LevelMax  int32

	TraitLimit   int
	TraitBalance int32

	System *System
	Blocks []terra.Block
	Roles  map[string]*terra.Role
}

type manifestFile struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Script       names.Script `yaml:"script"`
	LevelBase    int32        `yaml:"level_base"`
	LevelMin     int32        `yaml:"level_min"`
	LevelMax     int32        `yaml:"level_max"`
	TraitLimit   int          `yaml:"trait_limit"`
	TraitBalance int32        `yaml:"trait_balance"`
	RoleTemplate roleTemplate `yaml:"role_template"`
	Blocks       []blockDef   `yaml:"blocks"`
}

type roleTemplate struct {
	Kind     terra.RoleKind `yaml:"kind"`
	Provides tags.Tags      `yaml:"provides"`
	Mods     mods.Mods      `yaml:",inline"`
}

type blockDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Provides    tags.Tags `yaml:"provides"`
	Mods        mods.Mods `yaml:",inline"`
	Roles       []roleDef `yaml:"roles"`
}

type roleDef struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Kind        *terra.RoleKind `yaml:"kind"`
	Limit       uint32          `yaml:"limit"`
	Gender      *terra.Gender   `yaml:"gender"`
	Races       terra.Filter    `yaml:"races"`
	Classes     terra.Filter    `yaml:"classes"`
	Traits      terra.Filter    `yaml:"traits"`
	Locations   terra.Filter    `yaml:"locations"`
	Requires    *tags.Expr      `yaml:"requires"`
	Provides    tags.Tags       `yaml:"provides"`
	Mods        mods.Mods       `yaml:",inline"`
}

// LoadCampaign reads a campaign directory (manifest.yml plus system.yml
// and/or a system/ subdirectory), merges the shared layer into any gaps,
// and compiles the role blocks. Any malformed definition aborts the
// load.
func LoadCampaign(log *slog.Logger, path string, shared *System) (*Campaign, error) {
	id := filepath.Base(path)

	var manifest manifestFile
	if err := decodeFileStrict(filepath.Join(path, "manifest.yml"), &manifest); err != nil {
		return nil, err
	}
	if err := manifest.validate(); err != nil {
		return nil, fmt.Errorf("catalog: campaign %s: %w", id, err)
	}

	rules, err := names.ForScript(manifest.Script)
	if err != nil {
		return nil, fmt.Errorf("catalog: campaign %s: %w", id, err)
	}

	system, err := LoadSystem(log,
		filepath.Join(path, "system.yml"),
		filepath.Join(path, "system"),
	)
	if err != nil {
		return nil, err
	}
	if shared != nil {
		system.Merge(shared)
	}

	blocks, roles, err := compileBlocks(&manifest)
	if err != nil {
		return nil, fmt.Errorf("catalog: campaign %s: %w", id, err)
	}

	log.Info("campaign loaded",
		"campaign", id,
		"races", len(system.Races),
		"classes", len(system.Classes),
		"armorsets", len(system.ArmorSets),
		"weaponsets", len(system.WeaponSets),
		"traits", len(system.Traits),
		"locations", len(system.Locations),
		"roles", len(roles),
	)

	return &Campaign{
		ID:           id,
		Name:         manifest.Name,
		Description:  manifest.Description,
		NameRules:    rules,
		LevelBase:    manifest.LevelBase,
		LevelMin:     manifest.LevelMin,
		LevelMax:     manifest.LevelMax,
		TraitLimit:   manifest.TraitLimit,
		TraitBalance: manifest.TraitBalance,
		System:       system,
		Blocks:       blocks,
		Roles:        roles,
	}, nil
}

func (m *manifestFile) validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest needs a name")
	}
	if m.LevelMin < 1 {
		return fmt.Errorf("level_min must be at least 1")
	}
	if m.LevelMax < m.LevelMin {
		return fmt.Errorf("level_max %d below level_min %d", m.LevelMax, m.LevelMin)
	}
	if m.LevelBase < m.LevelMin || m.LevelBase > m.LevelMax {
		return fmt.Errorf("level_base %d outside [%d, %d]", m.LevelBase, m.LevelMin, m.LevelMax)
	}
	if m.RoleTemplate.Kind == "" {
		return fmt.Errorf("role_template needs a kind")
	}
	return nil
}

// compileBlocks flattens the manifest's block definitions into the flat
// role table: template and block mods/provides fold into each role, and
// every role gains block/<block> and role/<id> marker tags.
func compileBlocks(manifest *manifestFile) ([]terra.Block, map[string]*terra.Role, error) {
	blocks := make([]terra.Block, 0, len(manifest.Blocks))
	roles := make(map[string]*terra.Role)

	for _, blockIn := range manifest.Blocks {
		block := terra.Block{
			ID:          blockIn.ID,
			Name:        blockIn.Name,
			Description: blockIn.Description,
		}
		if block.ID == "" {
			block.ID = nameToID(blockIn.Name)
		}

		for _, roleIn := range blockIn.Roles {
			roleID := roleIn.ID
			if roleID == "" {
				roleID = nameToID(roleIn.Name)
			}
			id := block.ID + "_" + roleID
			if _, dup := roles[id]; dup {
				return nil, nil, fmt.Errorf("duplicate role id %q", id)
			}

			kind := manifest.RoleTemplate.Kind
			if roleIn.Kind != nil {
				kind = *roleIn.Kind
			}

			role := &terra.Role{
				Info: terra.Info{
					Name:        roleIn.Name,
					Description: roleIn.Description,
					Requires:    roleIn.Requires,
					Provides:    tags.New(),
				},
				Kind:      kind,
				Limit:     roleIn.Limit,
				Gender:    roleIn.Gender,
				Races:     roleIn.Races,
				Classes:   roleIn.Classes,
				Traits:    roleIn.Traits,
				Locations: roleIn.Locations,
				Mods: mods.Sum(
					manifest.RoleTemplate.Mods,
					blockIn.Mods,
					roleIn.Mods,
				),
			}
			role.Provides.Merge(manifest.RoleTemplate.Provides)
			role.Provides.Merge(blockIn.Provides)
			role.Provides.Merge(roleIn.Provides)
			role.Provides.Add("block/"+block.ID, 1)
			role.Provides.Add("role/"+id, 1)

			block.Roles = append(block.Roles, id)
			roles[id] = role
		}
		blocks = append(blocks, block)
	}
	return blocks, roles, nil
}

var idScrubber = regexp.MustCompile(`[^a-z0-9]+`)

func nameToID(name string) string {
	id := idScrubber.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(id, "_")
}
