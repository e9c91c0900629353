package catalog

import "strings"

// Filter applies all non-empty criteria and returns matching units.
type Filter struct {
	Testament Testament
	Search    string // matches name or ID
}

// Apply returns the subset of units matching all non-empty filter fields.
func (f Filter) Apply(us []Unit) []Unit {
	var out []Unit
	for _, u := range us {
		if f.Testament != "" && u.Testament() != f.Testament {
			continue
		}
		if f.Search != "" && !matchesSearch(u, f.Search) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesSearch(u Unit, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(u.Name), q) {
		return true
	}
	return strings.Contains(u.ID, q) || strings.Contains(foldKey(u.Name), foldKey(q))
}
