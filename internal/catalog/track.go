package catalog

import (
	"fmt"
	"strings"
)

// TrackDelimiter separates unit names in the stored form of a track.
// No display name contains it.
const TrackDelimiter = "|"

// NewTrack resolves each reference with Lookup and validates the result.
func NewTrack(refs ...string) (Track, error) {
	t := make(Track, 0, len(refs))
	for _, ref := range refs {
		u, err := Lookup(strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		t = append(t, u)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// EncodeTrack returns the storage form of a track: display names joined by
// TrackDelimiter.
func EncodeTrack(t Track) string {
	names := make([]string, len(t))
	for i, u := range t {
		names[i] = u.Name
	}
	return strings.Join(names, TrackDelimiter)
}

// DecodeTrack parses the storage form produced by EncodeTrack.
func DecodeTrack(s string) (Track, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: track has no books", ErrInvalidTrack)
	}
	t, err := NewTrack(strings.Split(s, TrackDelimiter)...)
	if err != nil {
		return nil, fmt.Errorf("decoding track %q: %w", s, err)
	}
	return t, nil
}

// DefaultTracks returns the tracks a new profile starts with.
func DefaultTracks() []Track {
	out := make([]Track, len(defaultTracks))
	for i, ids := range defaultTracks {
		t := make(Track, len(ids))
		for j, id := range ids {
			t[j] = MustByID(id)
		}
		out[i] = t
	}
	return out
}

var defaultTracks = [][]string{
	{"matthew", "mark", "luke", "john"},
	{"genesis", "exodus", "leviticus", "numbers", "deuteronomy"},
	{"romans", "1-corinthians", "2-corinthians", "galatians", "ephesians", "philippians", "colossians", "hebrews"},
	{
		"1-thessalonians", "2-thessalonians", "1-timothy", "2-timothy", "titus", "philemon",
		"james", "1-peter", "2-peter", "1-john", "2-john", "3-john", "jude", "revelation",
	},
	{"job", "ecclesiastes", "song-of-solomon"},
	{"psalms"},
	{"proverbs"},
	{
		"joshua", "judges", "ruth", "1-samuel", "2-samuel", "1-kings", "2-kings",
		"1-chronicles", "2-chronicles", "ezra", "nehemiah", "esther",
	},
	{
		"isaiah", "jeremiah", "lamentations", "ezekiel", "daniel", "hosea", "joel", "amos",
		"obadiah", "jonah", "micah", "nahum", "habakkuk", "zephaniah", "haggai", "zechariah", "malachi",
	},
	{"acts"},
}
