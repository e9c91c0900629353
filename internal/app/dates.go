package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/plan"
)

func newDatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Show or change the plan's start date and reading offset",
	}
	cmd.AddCommand(newDatesShowCmd(), newDatesSetCmd())
	return cmd
}

func newDatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the start date and reading date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, p, err := currentProfile(ctx)
			if err != nil {
				return err
			}
			base := today()
			d, err := s.DatesOrDefault(ctx, p.ID, base)
			if err != nil {
				return err
			}
			reading := plan.ReadingDate(base, d.Offset)

			header("Dates for profile %s", p.Name)
			printField("Start", d.StartDate.Format(longDate))
			printField("Today", base.Format(longDate))
			printField("Offset", fmt.Sprintf("%+d days", d.Offset))
			printField("Reading date", reading.Format(longDate))
			printField("Day", fmt.Sprint(plan.DayNumber(d.StartDate, reading)))
			return nil
		},
	}
}

func newDatesSetCmd() *cobra.Command {
	var (
		start  string
		date   string
		offset int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the start date or reading date",
		Long: `Change the plan's start date, its reading date, or both.

The reading date is stored as an offset from today, so it moves forward
with the calendar.

Examples:
  brpctl dates set --start 2026-01-01
  brpctl dates set --date "3 March 2026"
  brpctl dates set --offset 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" && date == "" && !cmd.Flags().Changed("offset") {
				return fmt.Errorf("nothing to change: pass --start, --date or --offset")
			}
			ctx := cmd.Context()
			s, p, err := currentProfile(ctx)
			if err != nil {
				return err
			}
			base := today()
			d, err := s.DatesOrDefault(ctx, p.ID, base)
			if err != nil {
				return err
			}

			if start != "" {
				d.StartDate, err = parseDate(start, base.Location())
				if err != nil {
					return err
				}
			}
			switch {
			case date != "":
				t, err := parseDate(date, base.Location())
				if err != nil {
					return err
				}
				d.Offset = plan.DaysBetween(base, t)
			case cmd.Flags().Changed("offset"):
				d.Offset = offset
			}

			if err := s.SetDates(ctx, p.ID, d); err != nil {
				return err
			}
			reading := plan.ReadingDate(base, d.Offset)
			ok("Start %s, reading %s (day %d)",
				d.StartDate.Format(time.DateOnly), reading.Format(time.DateOnly), plan.DayNumber(d.StartDate, reading))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (day 1 of the plan)")
	cmd.Flags().StringVar(&date, "date", "", "Reading date")
	cmd.Flags().IntVar(&offset, "offset", 0, "Reading date as days relative to today")
	cmd.MarkFlagsMutuallyExclusive("date", "offset")
	return cmd
}

const longDate = "2 January 2006"
