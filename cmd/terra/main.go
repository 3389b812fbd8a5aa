// Package main is the entry point for the terra character service CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/terra-rp/terra-api/internal/catalog"
	"github.com/terra-rp/terra-api/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "terra",
	Short: "Terra roleplay character service",
	Long:  `Terra validates and creates roleplay characters against a campaign's rule catalog.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(createCmd)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadCampaign assembles the configured campaign's catalog: the campaign
// layer first, with the shared layer filling the gaps.
func loadCampaign(cfg *config.Config, log *slog.Logger) (*catalog.Campaign, error) {
	shared, err := catalog.LoadSystem(log, filepath.Join(cfg.CatalogDir, cfg.SharedDir))
	if err != nil {
		return nil, err
	}
	return catalog.LoadCampaign(log, filepath.Join(cfg.CatalogDir, cfg.Campaign), shared)
}
