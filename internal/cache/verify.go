package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/blackwell-systems/brpctl/internal/util"
)

const tmpMarker = ".tmp-"

// Entry is one cached chapter on disk.
type Entry struct {
	Key  Key
	Path string
	Size int64
}

// Stats summarizes the cache.
type Stats struct {
	Entries    int
	TotalBytes int64
	TempFiles  int
}

// Entries lists the cached chapters of the manager's translation, ordered by
// ordinal then chapter. A missing cache root yields no entries.
func (m *Manager) Entries() ([]Entry, error) {
	infos, err := afero.ReadDir(m.fs, m.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	var out []Entry
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		k, ok := m.parseName(fi.Name())
		if !ok {
			continue
		}
		out = append(out, Entry{Key: k, Path: filepath.Join(m.baseDir, fi.Name()), Size: fi.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Ordinal != out[j].Key.Ordinal {
			return out[i].Key.Ordinal < out[j].Key.Ordinal
		}
		return out[i].Key.Chapter < out[j].Key.Chapter
	})
	return out, nil
}

// Stats counts entries and leftover temp files.
func (m *Manager) Stats() (Stats, error) {
	entries, err := m.Entries()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, e := range entries {
		s.Entries++
		s.TotalBytes += e.Size
	}
	tmps, err := m.tempFiles()
	if err != nil {
		return Stats{}, err
	}
	s.TempFiles = len(tmps)
	return s, nil
}

// Clear removes every entry of the manager's translation and any leftover
// temp files. Returns the number of entries removed.
func (m *Manager) Clear() (int, error) {
	entries, err := m.Entries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if err := m.fs.Remove(e.Path); err != nil && !os.IsNotExist(err) {
			return n, fmt.Errorf("removing %s: %w", e.Path, err)
		}
		n++
	}
	tmps, err := m.tempFiles()
	if err != nil {
		return n, err
	}
	for _, p := range tmps {
		_ = m.fs.Remove(p)
	}
	return n, nil
}

// Verify runs validate over every entry and returns the keys whose bytes
// fail it.
func (m *Manager) Verify(validate func([]byte) error) ([]Key, error) {
	entries, err := m.Entries()
	if err != nil {
		return nil, err
	}
	var bad []Key
	for _, e := range entries {
		data, err := afero.ReadFile(m.fs, e.Path)
		if err != nil {
			return bad, fmt.Errorf("reading %s: %w", e.Path, err)
		}
		if err := validate(data); err != nil {
			bad = append(bad, e.Key)
		}
	}
	return bad, nil
}

// Checksum returns the hex sha256 of the entry for k.
func (m *Manager) Checksum(k Key) (string, error) {
	f, err := m.fs.Open(m.Path(k))
	if err != nil {
		return "", err
	}
	defer f.Close()
	return util.SHA256Reader(f)
}

func (m *Manager) tempFiles() ([]string, error) {
	infos, err := afero.ReadDir(m.fs, m.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	var out []string
	for _, fi := range infos {
		if !fi.IsDir() && strings.Contains(fi.Name(), tmpMarker) {
			out = append(out, filepath.Join(m.baseDir, fi.Name()))
		}
	}
	return out, nil
}
