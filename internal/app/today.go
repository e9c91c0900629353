package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/cache"
	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/plan"
	"github.com/blackwell-systems/brpctl/internal/store"
)

// dayFlags selects the reading date for today and read.
type dayFlags struct {
	date   string
	offset int
}

func (f *dayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Reading date (YYYY-MM-DD), overrides the stored offset")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Days relative to today, overrides the stored offset")
	cmd.MarkFlagsMutuallyExclusive("date", "offset")
}

// readingState is everything needed to locate a profile's chapters for one day.
type readingState struct {
	profile *store.Profile
	tracks  []catalog.Track
	dates   store.Dates
	date    time.Time
	day     int
}

// loadReadingState resolves the profile, its tracks and dates, and the day
// number of the reading date selected by f.
func loadReadingState(ctx context.Context, cmd *cobra.Command, f *dayFlags) (*readingState, error) {
	s, p, err := currentProfile(ctx)
	if err != nil {
		return nil, err
	}
	base := today()
	tracks, err := catalog.NewManager(s, p.ID).Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("profile %q has no tracks (run 'brpctl tracks reset')", p.Name)
	}
	dates, err := s.DatesOrDefault(ctx, p.ID, base)
	if err != nil {
		return nil, fmt.Errorf("loading dates: %w", err)
	}

	var date time.Time
	switch {
	case f.date != "":
		date, err = parseDate(f.date, base.Location())
		if err != nil {
			return nil, err
		}
	case cmd.Flags().Changed("offset"):
		date = plan.ReadingDate(base, f.offset)
	default:
		date = plan.ReadingDate(base, dates.Offset)
	}

	return &readingState{
		profile: p,
		tracks:  tracks,
		dates:   dates,
		date:    date,
		day:     plan.DayNumber(dates.StartDate, date),
	}, nil
}

func newTodayCmd() *cobra.Command {
	var (
		days  dayFlags
		track int
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the chapters to read today",
		Long: `Show the chapter every track assigns to the reading date.

The reading date is today shifted by the profile's stored offset unless
--date or --offset is given. Day 1 is the profile's start date. A check
mark shows chapters already in the local cache.

Examples:
  brpctl today
  brpctl today --offset 1
  brpctl today --date 2026-03-01 --track 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadReadingState(cmd.Context(), cmd, &days)
			if err != nil {
				return err
			}
			if track < 1 || track > len(st.tracks) {
				return fmt.Errorf("track %d out of range (have %d)", track, len(st.tracks))
			}
			entries, err := plan.DayPlan(st.tracks, st.day)
			if err != nil {
				return err
			}

			header("%s  (day %d, profile %s)", st.date.Format("Monday, 2 January 2006"), st.day, st.profile.Name)
			fmt.Println()
			for _, e := range entries {
				marker := "  "
				pos := fmt.Sprintf("%-22s", e.Position.String())
				if e.Index == track-1 {
					marker = color.GreenString("▸ ")
					pos = color.New(color.Bold).Sprint(pos)
				}
				cached := " "
				if cacheMgr.Exists(cache.Key{Ordinal: e.Position.Unit.Ordinal, Chapter: e.Position.Chapter}) {
					cached = color.GreenString("✓")
				}
				fmt.Printf("%s%2d. %s %s %s\n", marker, e.Index+1, pos, cached, color.HiBlackString(e.Track.Label()))
			}
			return nil
		},
	}

	days.register(cmd)
	cmd.Flags().IntVar(&track, "track", 1, "Track to mark as active (1-based)")
	return cmd
}
