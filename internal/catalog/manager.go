package catalog

import (
	"context"
	"fmt"
)

// TrackStore persists a profile's tracks.
type TrackStore interface {
	Tracks(ctx context.Context, profileID int64) ([]Track, error)
	ReplaceTracks(ctx context.Context, profileID int64, tracks []Track) error
}

// Manager provides high-level track operations for one profile.
// It centralizes the common pattern of load → modify → replace.
type Manager struct {
	store     TrackStore
	profileID int64
}

// NewManager creates a new track manager.
func NewManager(store TrackStore, profileID int64) *Manager {
	return &Manager{store: store, profileID: profileID}
}

// Load returns the profile's tracks in order.
func (m *Manager) Load(ctx context.Context) ([]Track, error) {
	tracks, err := m.store.Tracks(ctx, m.profileID)
	if err != nil {
		return nil, fmt.Errorf("reading tracks: %w", err)
	}
	return tracks, nil
}

// Save replaces all of the profile's tracks.
func (m *Manager) Save(ctx context.Context, tracks []Track) error {
	for i, t := range tracks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	if err := m.store.ReplaceTracks(ctx, m.profileID, tracks); err != nil {
		return fmt.Errorf("saving tracks: %w", err)
	}
	return nil
}

// Update loads the tracks, applies a modification function, and saves them.
//
// Example:
//
//	err := mgr.Update(ctx, func(tracks []Track) ([]Track, error) {
//	    return Append(tracks, t), nil
//	})
func (m *Manager) Update(ctx context.Context, fn func([]Track) ([]Track, error)) ([]Track, error) {
	tracks, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}

	tracks, err = fn(tracks)
	if err != nil {
		return nil, err
	}

	if err := m.Save(ctx, tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Append adds a track and saves.
func (m *Manager) Append(ctx context.Context, t Track) ([]Track, error) {
	return m.Update(ctx, func(tracks []Track) ([]Track, error) {
		return Append(tracks, t), nil
	})
}

// Set replaces the track at index i and saves.
func (m *Manager) Set(ctx context.Context, i int, t Track) ([]Track, error) {
	return m.Update(ctx, func(tracks []Track) ([]Track, error) {
		tracks, ok := Replace(tracks, i, t)
		if !ok {
			return nil, fmt.Errorf("no track at index %d (have %d)", i, len(tracks))
		}
		return tracks, nil
	})
}

// Remove deletes the track at index i and saves. A profile must keep at
// least one track.
func (m *Manager) Remove(ctx context.Context, i int) ([]Track, error) {
	return m.Update(ctx, func(tracks []Track) ([]Track, error) {
		if len(tracks) == 1 && i == 0 {
			return nil, fmt.Errorf("cannot remove the last track")
		}
		tracks, ok := Remove(tracks, i)
		if !ok {
			return nil, fmt.Errorf("no track at index %d (have %d)", i, len(tracks))
		}
		return tracks, nil
	})
}

// Reset replaces the profile's tracks with DefaultTracks.
func (m *Manager) Reset(ctx context.Context) ([]Track, error) {
	tracks := DefaultTracks()
	if err := m.Save(ctx, tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}
