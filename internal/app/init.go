package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/config"
	"github.com/blackwell-systems/brpctl/internal/util"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the default profile",
		Long: `Write a config file with the default settings and create the profile's
reading state.

A new profile starts with ten tracks covering the whole Bible and a start
date of January 1 of this year. Change them with 'brpctl tracks' and
'brpctl dates set'.

Quick start:
  1. Run: brpctl init
  2. Then: brpctl today
  3. Or:   brpctl read`,
		Example: `  brpctl init
  brpctl init --profile family
  brpctl init --force          Overwrite an existing config with defaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(flagConfig)
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Printf("Config already exists: %s (use --force to overwrite)\n", path)
			} else {
				if force {
					cfg = config.Defaults()
				}
				if flagProfile != "" {
					cfg.Defaults.Profile = flagProfile
				}
				if err := config.Save(cfg, path); err != nil {
					return fmt.Errorf("writing config: %w", err)
				}
				ok("Wrote %s", path)
			}

			if err := util.EnsureDir(cfg.Defaults.CacheDir); err != nil {
				return fmt.Errorf("creating cache dir: %w", err)
			}
			_, p, err := currentProfile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println()
			printField("Profile", p.Name)
			printField("Database", cfg.Defaults.DBPath)
			printField("Cache", cfg.Defaults.CacheDir)
			printField("Source", cfg.Source.APIBase)
			fmt.Println()
			fmt.Printf("Next: %s\n", color.CyanString("brpctl today"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
