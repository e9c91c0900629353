package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a reference does not name a catalog unit.
	ErrUnknownUnit = errors.New("unknown book")
	// ErrInvalidTrack is returned for an empty track or a unit without chapters.
	ErrInvalidTrack = errors.New("invalid track")
)

// Testament groups units by canonical section.
type Testament string

const (
	OldTestament Testament = "ot"
	NewTestament Testament = "nt"
)

// Unit is one book of the canonical catalog.
type Unit struct {
	ID       string // stable slug, e.g. "1-corinthians"
	Name     string // display name, e.g. "1 Corinthians"
	Chapters int
	Ordinal  int // 1..66, used to address remote content and cache entries
}

// Testament reports which section of the canon the unit belongs to.
func (u Unit) Testament() Testament {
	if u.Ordinal <= lastOldTestament {
		return OldTestament
	}
	return NewTestament
}

func (u Unit) String() string {
	return u.Name
}

// Track is an ordered sequence of units read as one cyclic plan.
type Track []Unit

// Span returns the total number of chapters in the track.
func (t Track) Span() int {
	n := 0
	for _, u := range t {
		n += u.Chapters
	}
	return n
}

// Validate checks that the track can be scheduled.
func (t Track) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: track has no books", ErrInvalidTrack)
	}
	for _, u := range t {
		if u.Chapters < 1 {
			return fmt.Errorf("%w: %s has %d chapters", ErrInvalidTrack, u.Name, u.Chapters)
		}
	}
	return nil
}

// IDs returns the unit IDs in track order.
func (t Track) IDs() []string {
	out := make([]string, len(t))
	for i, u := range t {
		out[i] = u.ID
	}
	return out
}

// Label returns a short display label: the book name for single-book
// tracks, otherwise "first – last".
func (t Track) Label() string {
	switch len(t) {
	case 0:
		return "(empty)"
	case 1:
		return t[0].Name
	default:
		return t[0].Name + " – " + t[len(t)-1].Name
	}
}

// Equal reports whether both tracks list the same units in the same order.
func (t Track) Equal(other Track) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i].ID != other[i].ID {
			return false
		}
	}
	return true
}

// foldKey normalizes a reference for case- and spacing-insensitive lookup.
// "1 corinthians", "1-Corinthians" and "1corinthians" all fold to the same key.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '-' || r == '_' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
