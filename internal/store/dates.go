package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateLayout = time.DateOnly

// Dates anchors a profile's plan. StartDate is day 1; Offset shifts the
// reading date relative to today.
type Dates struct {
	StartDate time.Time
	Offset    int
}

// DefaultDates returns January 1 of today's year with no offset.
func DefaultDates(today time.Time) Dates {
	return Dates{
		StartDate: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()),
	}
}

// Dates returns the profile's dates, or ErrNotFound if none are stored.
// StartDate is returned at midnight UTC.
func (s *Store) Dates(ctx context.Context, profileID int64) (Dates, error) {
	var (
		start  string
		offset int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT start_date, offset_days FROM dates WHERE profile_id = ?`, profileID).Scan(&start, &offset)
	if errors.Is(err, sql.ErrNoRows) {
		return Dates{}, ErrNotFound
	}
	if err != nil {
		return Dates{}, fmt.Errorf("get dates: %w", err)
	}
	t, err := time.Parse(dateLayout, start)
	if err != nil {
		return Dates{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	return Dates{StartDate: t, Offset: offset}, nil
}

// SetDates stores the profile's dates, replacing any previous value. Only
// the calendar date of StartDate is kept.
func (s *Store) SetDates(ctx context.Context, profileID int64, d Dates) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dates (profile_id, start_date, offset_days) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			start_date = excluded.start_date,
			offset_days = excluded.offset_days`,
		profileID, d.StartDate.Format(dateLayout), d.Offset)
	if err != nil {
		return fmt.Errorf("set dates: %w", err)
	}
	return nil
}

// DatesOrDefault returns the stored dates, storing DefaultDates(today)
// first if the profile has none.
func (s *Store) DatesOrDefault(ctx context.Context, profileID int64, today time.Time) (Dates, error) {
	d, err := s.Dates(ctx, profileID)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Dates{}, err
	}
	d = DefaultDates(today)
	if err := s.SetDates(ctx, profileID, d); err != nil {
		return Dates{}, err
	}
	s.logger.Debug("stored default dates", "profile_id", profileID, "start", d.StartDate.Format(dateLayout))
	return s.Dates(ctx, profileID)
}
