package cache

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// ErrRejected wraps the validation error of a Store call whose bytes were
// refused. Nothing is left under the entry's path.
var ErrRejected = errors.New("cache entry rejected")

// Store writes data for k through a temp file in the cache root. validate,
// if non-nil, sees the bytes before the temp file is renamed into place.
// Returns the final file path.
func (m *Manager) Store(k Key, data []byte, validate func([]byte) error) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.Path(k)
	f, err := afero.TempFile(m.fs, m.baseDir, m.Name(k)+tmpMarker+"*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = m.fs.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = m.fs.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if validate != nil {
		if err := validate(data); err != nil {
			_ = m.fs.Remove(tmpPath)
			return "", fmt.Errorf("%w: %w", ErrRejected, err)
		}
	}

	if err := m.fs.Rename(tmpPath, destPath); err != nil {
		_ = m.fs.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}
