package content

import "errors"

// Fetch failures. Errors returned by Fetcher wrap exactly one of these
// together with the underlying cause.
var (
	// ErrTransport is returned when the remote call fails, times out or
	// answers with a non-2xx status.
	ErrTransport = errors.New("transport failure")
	// ErrCorruptRemote is returned when the remote body does not parse. The
	// body is not cached.
	ErrCorruptRemote = errors.New("remote content unreadable")
	// ErrCorruptCache is returned when a cached entry does not parse. The
	// entry is left in place until cleared.
	ErrCorruptCache = errors.New("cached content unreadable")
	// ErrStorageUnavailable is returned when the cache cannot be created,
	// read or written.
	ErrStorageUnavailable = errors.New("cache storage unavailable")
	// ErrChapterRange is returned for a chapter outside 1..unit.Chapters.
	ErrChapterRange = errors.New("chapter out of range")
)

// Remote source errors.
var (
	// ErrNotFound is returned when the source has no such chapter.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned when the source throttles requests.
	ErrRateLimited = errors.New("rate limited, try again later")
)
