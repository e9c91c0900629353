package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

// Profile is a named local reader. Each profile owns its tracks and dates.
type Profile struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

const profileColumns = `id, name, created_at`

func scanProfile(scanner interface{ Scan(dest ...any) error }) (*Profile, error) {
	var (
		p         Profile
		createdAt string
	)
	if err := scanner.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		return nil, err
	}
	var err error
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile retrieves a profile by name.
// Returns ErrNotFound if the profile does not exist.
func (s *Store) GetProfile(ctx context.Context, name string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", name, err)
	}
	return p, nil
}

// ListProfiles returns all profiles ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateProfile inserts a profile seeded with the default tracks.
// Returns ErrAlreadyExists if the name is taken.
func (s *Store) CreateProfile(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("profile name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (name, created_at) VALUES (?, ?)`, name, formatTime(now))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := insertTracks(ctx, tx, id, catalog.DefaultTracks()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Debug("created profile", "profile", name, "id", id)
	p := &Profile{ID: id, Name: name}
	p.CreatedAt, _ = parseTime(formatTime(now))
	return p, nil
}

// EnsureProfile returns the named profile, creating it with the default
// tracks on first use. The bool reports whether it was created.
func (s *Store) EnsureProfile(ctx context.Context, name string) (*Profile, bool, error) {
	p, err := s.GetProfile(ctx, name)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	p, err = s.CreateProfile(ctx, name)
	if errors.Is(err, ErrAlreadyExists) {
		// Lost a race with another process.
		p, err = s.GetProfile(ctx, name)
		return p, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}
