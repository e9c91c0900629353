package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/cache"
	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/plan"
	"github.com/blackwell-systems/brpctl/internal/tui"
	"github.com/blackwell-systems/brpctl/internal/util"
)

const plainWidth = 80

func newReadCmd() *cobra.Command {
	var (
		days    dayFlags
		track   int
		book    string
		chapter int
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a chapter",
		Long: `Fetch a chapter and display it.

Without --book, reads the chapter the selected track assigns to the reading
date. On a terminal the chapter opens in a scrollable reader where n/p move
to the next or previous chapter; use --plain to print it instead.

Examples:
  brpctl read                         Today's chapter on track 1
  brpctl read --track 4 --offset -1   Yesterday's chapter on track 4
  brpctl read --book jonah --chapter 2
  brpctl read --plain | less -R`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				pos   plan.Position
				title string
			)
			if book != "" {
				u, err := catalog.Lookup(book)
				if err != nil {
					return err
				}
				if chapter < 1 || chapter > u.Chapters {
					return fmt.Errorf("%s has %d chapters", u.Name, u.Chapters)
				}
				pos = plan.Position{Unit: u, Chapter: chapter}
			} else {
				if cmd.Flags().Changed("chapter") {
					return fmt.Errorf("--chapter requires --book")
				}
				st, err := loadReadingState(ctx, cmd, &days)
				if err != nil {
					return err
				}
				if track < 1 || track > len(st.tracks) {
					return fmt.Errorf("track %d out of range (have %d)", track, len(st.tracks))
				}
				pos, _, err = plan.Locate(st.tracks[track-1], st.day)
				if err != nil {
					return err
				}
				title = fmt.Sprintf("Track %d · day %d", track, st.day)
			}

			if tui.ShouldUseTUI(cmd) {
				return tui.RunReader(tui.ReaderOptions{
					Ctx:   ctx,
					Start: pos,
					Title: title,
					Load:  fetcher.Chapter,
				})
			}
			return printChapter(ctx, pos)
		},
	}

	days.register(cmd)
	cmd.Flags().IntVar(&track, "track", 1, "Track to read (1-based)")
	cmd.Flags().StringVar(&book, "book", "", "Read this book instead of a track (ID or name)")
	cmd.Flags().IntVar(&chapter, "chapter", 1, "Chapter of --book")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the chapter instead of opening the reader")
	_ = cmd.RegisterFlagCompletionFunc("book", completeBooks)
	return cmd
}

func printChapter(ctx context.Context, pos plan.Position) error {
	c, err := fetcher.Chapter(ctx, pos.Unit, pos.Chapter)
	if err != nil {
		path := cacheMgr.Path(cache.Key{Ordinal: pos.Unit.Ordinal, Chapter: pos.Chapter})
		log.Debug("fetch failed", "position", pos.String(), "error", err)
		return errors.New(describeFetchError(err, path))
	}
	width := 0
	if util.IsTTY() {
		width = plainWidth
	}
	fmt.Print(tui.RenderChapter(c, width))
	return nil
}
