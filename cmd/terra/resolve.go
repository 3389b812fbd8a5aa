package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/terra-rp/terra-api/internal/config"
	"github.com/terra-rp/terra-api/internal/entities/terra"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/orchestrators/creation"
)

var resolveGender string

var resolveCmd = &cobra.Command{
	Use:   "resolve <selection.yml>",
	Short: "Resolve a selection file against the campaign catalog",
	Long: `Resolve reads a character selection from a YAML file, validates it
against the configured campaign, and prints the resulting creation record
as JSON. Nothing is persisted.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveGender, "gender", "male", "account gender (male or female)")
}

func readSelection(path string) (*terra.Selection, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, err
	}
	var sel terra.Selection
	if err := yaml.Unmarshal(raw, &sel); err != nil {
		return nil, fmt.Errorf("selection %s: %w", path, err)
	}
	return &sel, nil
}

func parseGender(raw string) (terra.Gender, error) {
	switch terra.Gender(raw) {
	case terra.GenderMale, terra.GenderFemale:
		return terra.Gender(raw), nil
	default:
		return "", fmt.Errorf("invalid gender %q", raw)
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	campaign, err := loadCampaign(cfg, log)
	if err != nil {
		return err
	}

	sel, err := readSelection(args[0])
	if err != nil {
		return err
	}
	gender, err := parseGender(resolveGender)
	if err != nil {
		return err
	}

	data, err := creation.Resolve(campaign, gender, *sel)
	if err != nil {
		if field, ok := errors.FieldTag(err); ok {
			return fmt.Errorf("selection rejected: %s", field)
		}
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
