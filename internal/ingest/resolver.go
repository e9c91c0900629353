// Package ingest reads plan files given as a local path or an HTTP URL.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxSize bounds how much of an input is read.
const MaxSize = 1 << 20

// Source holds a resolved input ready for reading.
type Source struct {
	// Name is the original filename (no directory).
	Name string
	// Open returns a new ReadCloser for the input.
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// Resolve determines the type of input and returns a Source.
// Supported formats:
//
//	/path/to/tracks.yml               local file
//	https://example.com/tracks.yml    HTTP URL
func Resolve(input string) (*Source, error) {
	switch {
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return resolveHTTP(input), nil
	default:
		return resolveFile(input)
	}
}

// ReadAll resolves input and reads at most MaxSize bytes of it.
func ReadAll(ctx context.Context, input string) ([]byte, error) {
	src, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Name, err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%s is larger than %d bytes", src.Name, MaxSize)
	}
	return data, nil
}

func resolveFile(path string) (*Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	return &Source{
		Name: filepath.Base(path),
		Open: func(context.Context) (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

func resolveHTTP(url string) *Source {
	client := &http.Client{Timeout: 15 * time.Second}
	return &Source{
		Name: guessFilenameFromURL(url),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			r, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			if r.StatusCode != http.StatusOK {
				_ = r.Body.Close()
				return nil, fmt.Errorf("GET %s: status %d", url, r.StatusCode)
			}
			return r.Body, nil
		},
	}
}

func guessFilenameFromURL(rawURL string) string {
	if idx := strings.Index(rawURL, "?"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	base := filepath.Base(rawURL)
	if base == "" || base == "." || base == "/" || strings.HasSuffix(rawURL, "/") {
		return "download"
	}
	return base
}
