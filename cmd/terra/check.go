package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-rp/terra-api/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the campaign catalog and report what it contains",
	Long: `Check loads the configured campaign catalog with strict schema
validation and exits non-zero if any definition is malformed. Run it in CI
against catalog changes.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	campaign, err := loadCampaign(cfg, log)
	if err != nil {
		return err
	}

	view := campaign.System.View()
	fmt.Printf("campaign %s (%s)\n", campaign.ID, campaign.Name)
	fmt.Printf("  levels %d-%d (base %d)\n", campaign.LevelMin, campaign.LevelMax, campaign.LevelBase)
	fmt.Printf("  races      %d\n", len(view.Races))
	fmt.Printf("  classes    %d\n", len(view.Classes))
	fmt.Printf("  armorsets  %d\n", len(view.ArmorSets))
	fmt.Printf("  weaponsets %d\n", len(view.WeaponSets))
	fmt.Printf("  traits     %d\n", len(view.Traits))
	fmt.Printf("  locations  %d\n", len(view.Locations))
	for _, block := range campaign.Blocks {
		fmt.Printf("  block %s: %d roles\n", block.ID, len(block.Roles))
	}
	return nil
}
