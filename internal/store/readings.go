package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

// Tracks returns the profile's tracks in order. A stored track naming an
// unknown book yields an error wrapping catalog.ErrUnknownUnit.
func (s *Store) Tracks(ctx context.Context, profileID int64) ([]catalog.Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reading, idx FROM readings WHERE profile_id = ? ORDER BY idx`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []catalog.Track
	for rows.Next() {
		var (
			reading string
			idx     int
		)
		if err := rows.Scan(&reading, &idx); err != nil {
			return nil, err
		}
		t, err := catalog.DecodeTrack(reading)
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", idx, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// ReplaceTracks deletes the profile's tracks and inserts the given ones in
// a single transaction.
func (s *Store) ReplaceTracks(ctx context.Context, profileID int64, tracks []catalog.Track) error {
	for i, t := range tracks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("track %d: %w", i+1, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM readings WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("delete readings: %w", err)
	}
	if err := insertTracks(ctx, tx, profileID, tracks); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("replaced tracks", "profile_id", profileID, "count", len(tracks))
	return nil
}

func insertTracks(ctx context.Context, tx *sql.Tx, profileID int64, tracks []catalog.Track) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO readings (profile_id, reading, idx) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		if _, err := stmt.ExecContext(ctx, profileID, catalog.EncodeTrack(t), i); err != nil {
			return fmt.Errorf("insert reading %d: %w", i, err)
		}
	}
	return nil
}
