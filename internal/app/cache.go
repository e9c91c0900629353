package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/cache"
	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/content"
	"github.com/blackwell-systems/brpctl/internal/plan"
	"github.com/blackwell-systems/brpctl/internal/tui"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local chapter cache",
		Long: `Manage the local cache of downloaded chapters.

Chapters are cached on first read and never expire. Clearing the cache only
costs a re-download; tracks and dates are not affected.`,
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheClearCmd(),
		newCacheVerifyCmd(),
		newCachePrefetchCmd(),
	)
	return cmd
}

// keyLabel names a cache key by its book, falling back to the raw key.
func keyLabel(k cache.Key) string {
	if u, found := catalog.ByOrdinal(k.Ordinal); found {
		return fmt.Sprintf("%s %d", u.Name, k.Chapter)
	}
	return k.String()
}

func newCacheInfoCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cacheMgr.Stats()
			if err != nil {
				return err
			}
			header("Chapter cache")
			printField("Directory", cacheMgr.Dir())
			printField("Translation", cacheMgr.Translation())
			printField("Chapters", fmt.Sprintf("%d of %d", st.Entries, totalChapters()))
			printField("Size", humanBytes(st.TotalBytes))
			if st.TempFiles > 0 {
				printField("Temp files", color.YellowString("%d (left by interrupted writes)", st.TempFiles))
			}

			if !list {
				return nil
			}
			entries, err := cacheMgr.Entries()
			if err != nil {
				return err
			}
			fmt.Println()
			for _, e := range entries {
				sum, err := cacheMgr.Checksum(e.Key)
				if err != nil {
					return err
				}
				fmt.Printf("  %-24s %9s  %s\n", keyLabel(e.Key), humanBytes(e.Size), color.HiBlackString(sum[:12]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every cached chapter with its checksum")
	return cmd
}

func totalChapters() int {
	n := 0
	for _, u := range catalog.All() {
		n += u.Chapters
	}
	return n
}

func newCacheClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached chapter",
		Long: `Remove every cached chapter of the configured translation, including
temp files left by interrupted writes.

Examples:
  brpctl cache clear           Asks for confirmation
  brpctl cache clear --force   No confirmation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cacheMgr.Stats()
			if err != nil {
				return err
			}
			if st.Entries == 0 && st.TempFiles == 0 {
				ok("Cache is already empty")
				return nil
			}
			if !force {
				fmt.Printf("This will remove %d cached chapters (%s)\n", st.Entries, humanBytes(st.TotalBytes))
				confirmed, err := requireConfirm("CLEAR CACHE")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			n, err := cacheMgr.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			ok("Removed %d files", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation")
	return cmd
}

func newCacheVerifyCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Find cached chapters that no longer parse",
		Long: `Parse every cached chapter and report the ones that fail.

A corrupt entry is never refetched automatically; --remove deletes it so
the next read downloads it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bad, err := cacheMgr.Verify(content.Validate)
			if err != nil {
				return err
			}
			if len(bad) == 0 {
				ok("All cached chapters are readable")
				return nil
			}
			for _, k := range bad {
				fmt.Printf("  %s %-24s %s\n", color.RedString("✗"), keyLabel(k), color.HiBlackString(cacheMgr.Path(k)))
			}
			if !remove {
				return fmt.Errorf("%d corrupt entries (use --remove to delete them)", len(bad))
			}
			for _, k := range bad {
				if err := cacheMgr.Remove(k); err != nil {
					return err
				}
			}
			ok("Removed %d corrupt entries", len(bad))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Delete corrupt entries")
	return cmd
}

func newCachePrefetchCmd() *cobra.Command {
	var (
		days  dayFlags
		n     int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Download the chapters of the coming days",
		Long: `Download every track's chapters for the reading date and the days after
it, so they can be read offline.

Examples:
  brpctl cache prefetch             Today and the next 6 days
  brpctl cache prefetch --days 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			ctx := cmd.Context()
			st, err := loadReadingState(ctx, cmd, &days)
			if err != nil {
				return err
			}
			positions, err := upcoming(st.tracks, st.day, n)
			if err != nil {
				return err
			}

			limit := cfg.Defaults.PrefetchConcurrency
			var count int
			if tui.ShouldUseTUI(cmd) {
				count, err = prefetchWithProgress(ctx, positions, limit)
			} else {
				count, err = fetcher.Prefetch(ctx, positions, limit, nil)
			}
			if errors.Is(err, tui.ErrCancelled) {
				return err
			}
			if err != nil {
				failed := reportPrefetchErrors(err)
				return fmt.Errorf("cached %d chapters, %d failed", count, failed)
			}
			ok("Cached %d chapters for %d days from %s", count, n, st.date.Format("2006-01-02"))
			return nil
		},
	}

	days.register(cmd)
	cmd.Flags().IntVar(&n, "days", 7, "Number of days to prefetch")
	cmd.Flags().BoolVar(&plain, "plain", false, "No progress bar")
	return cmd
}

// upcoming returns every track's position for n days starting at day.
func upcoming(tracks []catalog.Track, day, n int) ([]plan.Position, error) {
	out := make([]plan.Position, 0, n*len(tracks))
	for d := day; d < day+n; d++ {
		entries, err := plan.DayPlan(tracks, d)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			out = append(out, e.Position)
		}
	}
	return out, nil
}

// reportPrefetchErrors prints one line per failed position and returns
// how many there were.
func reportPrefetchErrors(err error) int {
	errs := []error{err}
	if joined, isJoined := err.(interface{ Unwrap() []error }); isJoined {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var pe *content.PrefetchError
		if !errors.As(e, &pe) {
			warn("%v", e)
			continue
		}
		k := cache.Key{Ordinal: pe.Position.Unit.Ordinal, Chapter: pe.Position.Chapter}
		fmt.Printf("  %s %-24s %s\n", color.RedString("✗"), pe.Position, describeFetchError(pe.Err, cacheMgr.Path(k)))
	}
	return len(errs)
}

// prefetchWithProgress runs Prefetch behind a progress bar. Cancelling the
// bar cancels the downloads.
func prefetchWithProgress(ctx context.Context, positions []plan.Position, limit int) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := distinct(positions)
	progressCh := make(chan int, total)
	type result struct {
		count int
		err   error
	}
	done := make(chan result, 1)

	go func() {
		completed := 0
		count, err := fetcher.Prefetch(ctx, positions, limit, func(plan.Position, error) {
			completed++
			progressCh <- completed
		})
		close(progressCh)
		done <- result{count, err}
	}()

	if err := tui.ShowProgress("Prefetching chapters", total, progressCh); err != nil {
		cancel()
		<-done
		return 0, err
	}
	r := <-done
	return r.count, r.err
}

func distinct(positions []plan.Position) int {
	seen := make(map[cache.Key]bool, len(positions))
	for _, p := range positions {
		seen[cache.Key{Ordinal: p.Unit.Ordinal, Chapter: p.Chapter}] = true
	}
	return len(seen)
}
