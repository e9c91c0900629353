package catalog

import "fmt"

const lastOldTestament = 39

// units is the canonical catalog in canonical order. Ordinals match the
// numbering used by the remote content source.
var units = []Unit{
	// Old Testament
	{"genesis", "Genesis", 50, 1},
	{"exodus", "Exodus", 40, 2},
	{"leviticus", "Leviticus", 27, 3},
	{"numbers", "Numbers", 36, 4},
	{"deuteronomy", "Deuteronomy", 34, 5},
	{"joshua", "Joshua", 24, 6},
	{"judges", "Judges", 21, 7},
	{"ruth", "Ruth", 4, 8},
	{"1-samuel", "1 Samuel", 31, 9},
	{"2-samuel", "2 Samuel", 24, 10},
	{"1-kings", "1 Kings", 22, 11},
	{"2-kings", "2 Kings", 25, 12},
	{"1-chronicles", "1 Chronicles", 29, 13},
	{"2-chronicles", "2 Chronicles", 36, 14},
	{"ezra", "Ezra", 10, 15},
	{"nehemiah", "Nehemiah", 13, 16},
	{"esther", "Esther", 10, 17},
	{"job", "Job", 42, 18},
	{"psalms", "Psalms", 150, 19},
	{"proverbs", "Proverbs", 31, 20},
	{"ecclesiastes", "Ecclesiastes", 12, 21},
	{"song-of-solomon", "Song of Solomon", 8, 22},
	{"isaiah", "Isaiah", 66, 23},
	{"jeremiah", "Jeremiah", 52, 24},
	{"lamentations", "Lamentations", 5, 25},
	{"ezekiel", "Ezekiel", 48, 26},
	{"daniel", "Daniel", 12, 27},
	{"hosea", "Hosea", 14, 28},
	{"joel", "Joel", 3, 29},
	{"amos", "Amos", 9, 30},
	{"obadiah", "Obadiah", 1, 31},
	{"jonah", "Jonah", 4, 32},
	{"micah", "Micah", 7, 33},
	{"nahum", "Nahum", 3, 34},
	{"habakkuk", "Habakkuk", 3, 35},
	{"zephaniah", "Zephaniah", 3, 36},
	{"haggai", "Haggai", 2, 37},
	{"zechariah", "Zechariah", 14, 38},
	{"malachi", "Malachi", 4, 39},
	// New Testament
	{"matthew", "Matthew", 28, 40},
	{"mark", "Mark", 16, 41},
	{"luke", "Luke", 24, 42},
	{"john", "John", 21, 43},
	{"acts", "Acts", 28, 44},
	{"romans", "Romans", 16, 45},
	{"1-corinthians", "1 Corinthians", 16, 46},
	{"2-corinthians", "2 Corinthians", 13, 47},
	{"galatians", "Galatians", 6, 48},
	{"ephesians", "Ephesians", 6, 49},
	{"philippians", "Philippians", 4, 50},
	{"colossians", "Colossians", 4, 51},
	{"1-thessalonians", "1 Thessalonians", 5, 52},
	{"2-thessalonians", "2 Thessalonians", 3, 53},
	{"1-timothy", "1 Timothy", 6, 54},
	{"2-timothy", "2 Timothy", 4, 55},
	{"titus", "Titus", 3, 56},
	{"philemon", "Philemon", 1, 57},
	{"hebrews", "Hebrews", 13, 58},
	{"james", "James", 5, 59},
	{"1-peter", "1 Peter", 5, 60},
	{"2-peter", "2 Peter", 3, 61},
	{"1-john", "1 John", 5, 62},
	{"2-john", "2 John", 1, 63},
	{"3-john", "3 John", 1, 64},
	{"jude", "Jude", 1, 65},
	{"revelation", "Revelation", 22, 66},
}

// index holds the read-only lookup tables built once at init.
type index struct {
	byID      map[string]int
	byName    map[string]int
	byFold    map[string]int
	byOrdinal map[int]int
}

var idx = buildIndex(units)

func buildIndex(us []Unit) index {
	ix := index{
		byID:      make(map[string]int, len(us)),
		byName:    make(map[string]int, len(us)),
		byFold:    make(map[string]int, len(us)*2),
		byOrdinal: make(map[int]int, len(us)),
	}
	for i, u := range us {
		ix.byID[u.ID] = i
		ix.byName[u.Name] = i
		ix.byFold[foldKey(u.ID)] = i
		ix.byFold[foldKey(u.Name)] = i
		ix.byOrdinal[u.Ordinal] = i
	}
	return ix
}

// All returns a copy of the catalog in canonical order.
func All() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ByID returns the unit with the given slug.
func ByID(id string) (Unit, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Unit{}, false
	}
	return units[i], true
}

// ByName returns the unit with the exact display name.
func ByName(name string) (Unit, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Unit{}, false
	}
	return units[i], true
}

// ByOrdinal returns the unit at the given canonical position.
func ByOrdinal(n int) (Unit, bool) {
	i, ok := idx.byOrdinal[n]
	if !ok {
		return Unit{}, false
	}
	return units[i], true
}

// Lookup resolves a user- or storage-supplied reference: an ID, a display
// name, or either of those with different case or spacing.
func Lookup(ref string) (Unit, error) {
	if u, ok := ByID(ref); ok {
		return u, nil
	}
	if u, ok := ByName(ref); ok {
		return u, nil
	}
	if i, ok := idx.byFold[foldKey(ref)]; ok {
		return units[i], nil
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, ref)
}

// MustByID is for compiled-in tables only.
func MustByID(id string) Unit {
	u, ok := ByID(id)
	if !ok {
		panic("catalog: no unit with id " + id)
	}
	return u
}
