package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/ingest"
)

func newTracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Manage the profile's reading tracks",
		Long: `Manage the profile's reading tracks.

A track is an ordered list of books read one chapter a day as a repeating
cycle. Books are given by ID or name (see 'brpctl books'). Track numbers
are 1-based.`,
	}

	cmd.AddCommand(
		newTracksListCmd(),
		newTracksSetCmd(),
		newTracksAddCmd(),
		newTracksRemoveCmd(),
		newTracksResetCmd(),
		newTracksImportCmd(),
		newTracksExportCmd(),
	)
	return cmd
}

// trackManager returns a Manager for the active profile.
func trackManager(ctx context.Context) (*catalog.Manager, error) {
	s, p, err := currentProfile(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewManager(s, p.ID), nil
}

func printTracks(tracks []catalog.Track) {
	for i, t := range tracks {
		fmt.Printf("%2d. %-28s %s\n", i+1, t.Label(), color.HiBlackString("%d chapters, %d books", t.Span(), len(t)))
	}
}

func newTracksListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := trackManager(cmd.Context())
			if err != nil {
				return err
			}
			tracks, err := mgr.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				fmt.Println("No tracks. Run 'brpctl tracks reset' for the default plan.")
				return nil
			}
			printTracks(tracks)
			if verbose {
				fmt.Println()
				for i, t := range tracks {
					fmt.Printf("%2d. %s\n", i+1, catalog.EncodeTrack(t))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also list every book of each track")
	return cmd
}

func newTracksSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <n> <book>...",
		Short: "Replace track n",
		Example: `  brpctl tracks set 2 genesis exodus leviticus
  brpctl tracks set 5 "Song of Solomon"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.NewTrack(args[1:]...)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			mgr, err := trackManager(ctx)
			if err != nil {
				return err
			}
			tracks, err := mgr.Load(ctx)
			if err != nil {
				return err
			}
			i, err := parseIndex(args[0], len(tracks))
			if err != nil {
				return err
			}
			if _, err := mgr.Set(ctx, i, t); err != nil {
				return err
			}
			ok("Track %d is now %s (%d chapters)", i+1, t.Label(), t.Span())
			return nil
		},
	}
}

func newTracksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "add <book>...",
		Short:             "Append a track",
		Example:           `  brpctl tracks add matthew mark luke john`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeBooks,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.NewTrack(args...)
			if err != nil {
				return err
			}
			mgr, err := trackManager(cmd.Context())
			if err != nil {
				return err
			}
			tracks, err := mgr.Append(cmd.Context(), t)
			if err != nil {
				return err
			}
			ok("Added track %d: %s (%d chapters)", len(tracks), t.Label(), t.Span())
			return nil
		},
	}
}

func newTracksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove track n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := trackManager(ctx)
			if err != nil {
				return err
			}
			tracks, err := mgr.Load(ctx)
			if err != nil {
				return err
			}
			i, err := parseIndex(args[0], len(tracks))
			if err != nil {
				return err
			}
			removed := tracks[i]
			if _, err := mgr.Remove(ctx, i); err != nil {
				return err
			}
			ok("Removed track %d (%s)", i+1, removed.Label())
			return nil
		},
	}
}

func newTracksResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all tracks with the default plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := requireConfirm("RESET TRACKS")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			mgr, err := trackManager(cmd.Context())
			if err != nil {
				return err
			}
			tracks, err := mgr.Reset(cmd.Context())
			if err != nil {
				return err
			}
			ok("Restored %d default tracks", len(tracks))
			printTracks(tracks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation")
	return cmd
}

func newTracksImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|url>",
		Short: "Replace all tracks with those in a YAML file",
		Long: `Replace all tracks with those in a YAML file or URL of the form:

  - [genesis, exodus]
  - [psalms]

The file is checked completely before anything is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ingest.ReadAll(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tracks, err := catalog.ParseTracks(data)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				return fmt.Errorf("%s contains no tracks", args[0])
			}
			mgr, err := trackManager(cmd.Context())
			if err != nil {
				return err
			}
			current, err := mgr.Load(cmd.Context())
			if err != nil {
				return err
			}
			if sameTracks(current, tracks) {
				ok("Tracks unchanged (%s matches the current plan)", args[0])
				return nil
			}
			if err := mgr.Save(cmd.Context(), tracks); err != nil {
				return err
			}
			ok("Imported %d tracks from %s", len(tracks), args[0])
			return nil
		},
	}
}

func newTracksExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the tracks as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := trackManager(cmd.Context())
			if err != nil {
				return err
			}
			tracks, err := mgr.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := catalog.SaveTracks(args[0], tracks); err != nil {
					return err
				}
				ok("Exported %d tracks to %s", len(tracks), args[0])
				return nil
			}
			data, err := catalog.MarshalTracks(tracks)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

// sameTracks reports whether a and b hold the same tracks in the same order.
func sameTracks(a, b []catalog.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
