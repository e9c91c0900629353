// Package plan maps day numbers onto chapters of cyclic reading tracks.
package plan

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

// ErrInconsistent reports that a valid track could not be resolved to a
// position. It signals a defect, never bad input.
var ErrInconsistent = errors.New("plan: inconsistent track walk")

// Position is a resolved (unit, chapter) pair. Chapter is 1-based.
type Position struct {
	Unit    catalog.Unit
	Chapter int
}

func (p Position) String() string {
	return fmt.Sprintf("%s %d", p.Unit.Name, p.Chapter)
}

// Locate returns the chapter a reader of track t should read on the given
// day, along with the track's span. Day may be any integer: it wraps modulo
// the span, and multiples of the span land on the last chapter of the last
// unit rather than the first chapter of the first.
func Locate(t catalog.Track, day int) (Position, int, error) {
	if err := t.Validate(); err != nil {
		return Position{}, 0, err
	}
	span := t.Span()

	r := day % span
	if r < 0 {
		r += span
	}
	if r == 0 {
		last := t[len(t)-1]
		return Position{Unit: last, Chapter: last.Chapters}, span, nil
	}

	pos, err := walk(t, r, 0)
	if err != nil {
		return Position{}, 0, err
	}
	return pos, span, nil
}

// walk consumes r chapters starting at unit index from. r must be >= 1.
func walk(t catalog.Track, r, from int) (Position, error) {
	for i := from; i < len(t); i++ {
		u := t[i]
		if r <= u.Chapters {
			return Position{Unit: u, Chapter: r}, nil
		}
		r -= u.Chapters
	}
	return Position{}, fmt.Errorf("%w: %d chapters left after %d units", ErrInconsistent, r, len(t)-from)
}
