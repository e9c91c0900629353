package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/blackwell-systems/brpctl/internal/cache"
	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/plan"
)

// Fetcher resolves chapters through the local cache, falling back to the
// remote source and populating the cache on a miss. It never retries and
// never substitutes placeholder content. Safe for concurrent use.
type Fetcher struct {
	cache  *cache.Manager
	source Source
	log    *slog.Logger
	group  singleflight.Group
}

// NewFetcher creates a Fetcher. A nil logger discards output.
func NewFetcher(c *cache.Manager, src Source, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{cache: c, source: src, log: log}
}

// Chapter returns the parsed content of chapter n of u. Concurrent calls for
// the same chapter share one load, and the returned value is shared between
// them, so callers must not modify it. Cancelling ctx abandons the wait but
// not the shared load.
func (f *Fetcher) Chapter(ctx context.Context, u catalog.Unit, n int) (*Chapter, error) {
	if n < 1 || n > u.Chapters {
		return nil, fmt.Errorf("%w: %s has %d chapters, asked for %d", ErrChapterRange, u.Name, u.Chapters, n)
	}
	k := cache.Key{Ordinal: u.Ordinal, Chapter: n}
	// The shared load outlives any one caller; the client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(f.cache.Path(k), func() (any, error) {
		return f.load(shared, k)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Chapter), nil
	}
}

func (f *Fetcher) load(ctx context.Context, k cache.Key) (*Chapter, error) {
	log := f.log.With("key", f.cache.Name(k))

	if err := f.cache.EnsureDir(); err != nil {
		log.Warn("cannot create cache dir", "dir", f.cache.Dir(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	data, err := f.cache.Read(k)
	switch {
	case err == nil:
		c, perr := Parse(data)
		if perr != nil {
			log.Warn("cached chapter does not parse", "path", f.cache.Path(k), "error", perr)
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptCache, f.cache.Path(k), perr)
		}
		log.Debug("cache hit")
		return c, nil
	case !errors.Is(err, cache.ErrMiss):
		log.Warn("cannot read cache entry", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	log.Debug("cache miss, fetching")
	data, err = f.source.FetchChapter(ctx, k.Ordinal, k.Chapter)
	if err != nil {
		log.Warn("fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var parsed *Chapter
	validate := func(b []byte) error {
		c, err := Parse(b)
		parsed = c
		return err
	}
	path, err := f.cache.Store(k, data, validate)
	if err != nil {
		if errors.Is(err, cache.ErrRejected) {
			log.Warn("remote chapter does not parse", "bytes", len(data), "error", err)
			return nil, fmt.Errorf("%w: %w", ErrCorruptRemote, err)
		}
		log.Warn("cannot store chapter", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	log.Debug("stored chapter", "path", path, "bytes", len(data))
	return parsed, nil
}

// PrefetchError records one position that could not be cached.
type PrefetchError struct {
	Position plan.Position
	Err      error
}

func (e *PrefetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Position, e.Err)
}

func (e *PrefetchError) Unwrap() error { return e.Err }

// Prefetch warms the cache for every distinct position using at most limit
// concurrent loads. A failed position does not stop the others; all
// failures are returned joined, each as a *PrefetchError. report, if non-nil,
// is called once per distinct position as it completes, never concurrently.
// Returns the number of positions that are now cached.
func (f *Fetcher) Prefetch(ctx context.Context, positions []plan.Position, limit int, report func(plan.Position, error)) (int, error) {
	if limit < 1 {
		limit = 1
	}
	seen := make(map[cache.Key]bool, len(positions))
	var unique []plan.Position
	for _, p := range positions {
		k := cache.Key{Ordinal: p.Unit.Ordinal, Chapter: p.Chapter}
		if !seen[k] {
			seen[k] = true
			unique = append(unique, p)
		}
	}

	var (
		mu   sync.Mutex
		errs []error
		ok   int
	)
	var g errgroup.Group
	g.SetLimit(limit)
	for _, p := range unique {
		g.Go(func() error {
			_, err := f.Chapter(ctx, p.Unit, p.Chapter)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, &PrefetchError{Position: p, Err: err})
			} else {
				ok++
			}
			if report != nil {
				report(p, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return ok, errors.Join(errs...)
}
