package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseTracks decodes YAML bytes into a track list. The document is a list
// of lists of unit references:
//
//	# tracks.yml
//	- [matthew, mark, luke, john]
//	- [Psalms]
func ParseTracks(data []byte) ([]Track, error) {
	if len(data) == 0 {
		return []Track{}, nil
	}
	var raw [][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing tracks YAML: %w", err)
	}
	tracks := make([]Track, 0, len(raw))
	for i, refs := range raw {
		t, err := NewTrack(refs...)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
