package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		Long: `List the profiles stored in the reading-state database.

Each profile has its own tracks and dates. Select one with --profile or
defaults.profile in the config; a new name is created on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			profiles, err := s.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println("No profiles yet. Any command that reads the plan creates one.")
				return nil
			}
			active := profileName()
			for _, p := range profiles {
				marker := "  "
				if p.Name == active {
					marker = color.GreenString("* ")
				}
				fmt.Printf("%s%-20s %s\n", marker, p.Name, color.HiBlackString("created "+p.CreatedAt.Format("2006-01-02")))
			}
			return nil
		},
	}
}
