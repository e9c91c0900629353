package plan

import (
	"fmt"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

// Entry is one track's assignment for a day.
type Entry struct {
	Index    int
	Track    catalog.Track
	Position Position
	Span     int
}

// DayPlan locates every track for the given day. The first track that cannot
// be located aborts the plan.
func DayPlan(tracks []catalog.Track, day int) ([]Entry, error) {
	out := make([]Entry, 0, len(tracks))
	for i, t := range tracks {
		pos, span, err := Locate(t, day)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i+1, err)
		}
		out = append(out, Entry{Index: i, Track: t, Position: pos, Span: span})
	}
	return out, nil
}
