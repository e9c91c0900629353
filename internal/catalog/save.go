package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MarshalTracks encodes a track list to YAML bytes, one flow-style list of
// unit IDs per track.
func MarshalTracks(tracks []Track) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range tracks {
		row := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, id := range t.IDs() {
			row.Content = append(row.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id})
		}
		doc.Content = append(doc.Content, row)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding tracks: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTracks writes the track list to a file on disk.
func SaveTracks(path string, tracks []Track) error {
	data, err := MarshalTracks(tracks)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Append adds a track to the list and returns the updated slice.
func Append(tracks []Track, t Track) []Track {
	return append(tracks, t)
}

// Replace swaps the track at index i. Returns false if i is out of range.
func Replace(tracks []Track, i int, t Track) ([]Track, bool) {
	if i < 0 || i >= len(tracks) {
		return tracks, false
	}
	tracks[i] = t
	return tracks, true
}

// Remove removes the track at index i. Returns the updated slice and whether
// a track was actually removed.
func Remove(tracks []Track, i int) ([]Track, bool) {
	if i < 0 || i >= len(tracks) {
		return tracks, false
	}
	return append(tracks[:i], tracks[i+1:]...), true
}
