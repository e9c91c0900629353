package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// DefaultTranslation prefixes cache file names when none is configured.
const DefaultTranslation = "id"

// ErrMiss is returned by Read when no entry exists for a key.
var ErrMiss = errors.New("cache miss")

// Key addresses one cached chapter.
type Key struct {
	Ordinal int
	Chapter int
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.Ordinal, k.Chapter)
}

// Manager handles the local chapter cache.
type Manager struct {
	fs          afero.Fs
	baseDir     string
	translation string
}

// New creates a cache Manager rooted at baseDir on the OS filesystem.
func New(baseDir, translation string) *Manager {
	return NewWithFs(afero.NewOsFs(), baseDir, translation)
}

// NewWithFs creates a cache Manager on an arbitrary filesystem.
func NewWithFs(fs afero.Fs, baseDir, translation string) *Manager {
	if translation == "" {
		translation = DefaultTranslation
	}
	return &Manager{fs: fs, baseDir: baseDir, translation: translation}
}

// Dir returns the cache root.
func (m *Manager) Dir() string { return m.baseDir }

// Translation returns the translation that prefixes entry names.
func (m *Manager) Translation() string { return m.translation }

// Name returns the file name for a key.
// Layout: <translation>_<ordinal>_<chapter>
func (m *Manager) Name(k Key) string {
	return fmt.Sprintf("%s_%d_%d", m.translation, k.Ordinal, k.Chapter)
}

// Path returns the full cache path for a key.
func (m *Manager) Path(k Key) string {
	return filepath.Join(m.baseDir, m.Name(k))
}

// Exists reports whether the cached file exists.
func (m *Manager) Exists(k Key) bool {
	_, err := m.fs.Stat(m.Path(k))
	return err == nil
}

// EnsureDir creates the cache root if it is absent.
func (m *Manager) EnsureDir() error {
	return m.fs.MkdirAll(m.baseDir, 0750)
}

// Read returns the raw bytes cached for k, or ErrMiss.
func (m *Manager) Read(k Key) ([]byte, error) {
	data, err := afero.ReadFile(m.fs, m.Path(k))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMiss, m.Name(k))
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Remove deletes the cached file if it exists.
func (m *Manager) Remove(k Key) error {
	err := m.fs.Remove(m.Path(k))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// parseName is the inverse of Name. Files of other translations, temp
// files and anything else in the directory are rejected.
func (m *Manager) parseName(name string) (Key, bool) {
	rest, ok := strings.CutPrefix(name, m.translation+"_")
	if !ok {
		return Key{}, false
	}
	ord, ch, ok := strings.Cut(rest, "_")
	if !ok {
		return Key{}, false
	}
	o, err := strconv.Atoi(ord)
	if err != nil || o < 1 {
		return Key{}, false
	}
	c, err := strconv.Atoi(ch)
	if err != nil || c < 1 {
		return Key{}, false
	}
	return Key{Ordinal: o, Chapter: c}, true
}
