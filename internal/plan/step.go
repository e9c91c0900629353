package plan

import "github.com/blackwell-systems/brpctl/internal/catalog"

// Step moves delta chapters from p through the canonical catalog order,
// crossing book boundaries. It reports false when the move would run past
// the first chapter of the first book or the last chapter of the last.
func Step(p Position, delta int) (Position, bool) {
	u, ch := p.Unit, p.Chapter+delta
	for ch > u.Chapters {
		next, ok := catalog.ByOrdinal(u.Ordinal + 1)
		if !ok {
			return p, false
		}
		ch -= u.Chapters
		u = next
	}
	for ch < 1 {
		prev, ok := catalog.ByOrdinal(u.Ordinal - 1)
		if !ok {
			return p, false
		}
		u = prev
		ch += u.Chapters
	}
	return Position{Unit: u, Chapter: ch}, true
}
