package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

var sampleYAML = []byte(`
- [matthew, mark, luke, john]
- [Psalms]
- ["1 Corinthians", 2-corinthians]
`)

// --- catalog table ---

func TestAll_CanonicalTable(t *testing.T) {
	all := catalog.All()
	if len(all) != 66 {
		t.Fatalf("expected 66 units, got %d", len(all))
	}
	total := 0
	for i, u := range all {
		if u.Ordinal != i+1 {
			t.Errorf("%s: ordinal = %d, want %d", u.ID, u.Ordinal, i+1)
		}
		if u.Chapters < 1 {
			t.Errorf("%s: chapters = %d", u.ID, u.Chapters)
		}
		if strings.Contains(u.Name, catalog.TrackDelimiter) {
			t.Errorf("%s: display name contains track delimiter", u.ID)
		}
		total += u.Chapters
	}
	if total != 1189 {
		t.Errorf("total chapters = %d, want 1189", total)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := catalog.All()
	all[0].Chapters = 999
	if u, _ := catalog.ByID("genesis"); u.Chapters != 50 {
		t.Errorf("catalog mutated through All(): genesis chapters = %d", u.Chapters)
	}
}

func TestTestament(t *testing.T) {
	if u := catalog.MustByID("malachi"); u.Testament() != catalog.OldTestament {
		t.Errorf("malachi testament = %q", u.Testament())
	}
	if u := catalog.MustByID("matthew"); u.Testament() != catalog.NewTestament {
		t.Errorf("matthew testament = %q", u.Testament())
	}
}

// --- lookups ---

func TestByID_Found(t *testing.T) {
	u, ok := catalog.ByID("1-corinthians")
	if !ok {
		t.Fatal("ByID returned ok=false for existing unit")
	}
	if u.Name != "1 Corinthians" || u.Chapters != 16 || u.Ordinal != 46 {
		t.Errorf("unexpected unit: %+v", u)
	}
}

func TestByID_NotFound(t *testing.T) {
	if _, ok := catalog.ByID("maccabees"); ok {
		t.Error("ByID returned ok=true for missing unit")
	}
}

func TestByName(t *testing.T) {
	u, ok := catalog.ByName("Song of Solomon")
	if !ok || u.ID != "song-of-solomon" {
		t.Errorf("ByName(Song of Solomon) = %+v, %v", u, ok)
	}
	if _, ok := catalog.ByName("song of solomon"); ok {
		t.Error("ByName should be exact")
	}
}

func TestByOrdinal(t *testing.T) {
	u, ok := catalog.ByOrdinal(45)
	if !ok || u.ID != "romans" {
		t.Errorf("ByOrdinal(45) = %+v, %v", u, ok)
	}
	for _, n := range []int{0, 67, -1} {
		if _, ok := catalog.ByOrdinal(n); ok {
			t.Errorf("ByOrdinal(%d) should not be found", n)
		}
	}
}

func TestLookup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"matthew", "matthew"},
		{"Matthew", "matthew"},
		{"1 John", "1-john"},
		{"1john", "1-john"},
		{"1-JOHN", "1-john"},
		{"Song of Solomon", "song-of-solomon"},
		{"songofsolomon", "song-of-solomon"},
	}
	for _, c := range cases {
		u, err := catalog.Lookup(c.in)
		if err != nil {
			t.Errorf("Lookup(%q): %v", c.in, err)
			continue
		}
		if u.ID != c.want {
			t.Errorf("Lookup(%q) = %q, want %q", c.in, u.ID, c.want)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	for _, in := range []string{"", "Tobit", "1 Hezekiah"} {
		_, err := catalog.Lookup(in)
		if !errors.Is(err, catalog.ErrUnknownUnit) {
			t.Errorf("Lookup(%q) err = %v, want ErrUnknownUnit", in, err)
		}
	}
}

// --- tracks ---

func TestTrack_Span(t *testing.T) {
	tr, err := catalog.NewTrack("matthew", "mark", "luke")
	if err != nil {
		t.Fatalf("NewTrack: %v", err)
	}
	if got := tr.Span(); got != 68 {
		t.Errorf("Span() = %d, want 68", got)
	}
}

func TestTrack_ValidateEmpty(t *testing.T) {
	if err := (catalog.Track{}).Validate(); !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("empty track: err = %v, want ErrInvalidTrack", err)
	}
	if _, err := catalog.NewTrack(); !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("NewTrack(): err = %v, want ErrInvalidTrack", err)
	}
}

func TestTrack_ValidateZeroChapters(t *testing.T) {
	tr := catalog.Track{{ID: "x", Name: "X", Chapters: 0, Ordinal: 1}}
	if err := tr.Validate(); !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("zero-chapter unit: err = %v, want ErrInvalidTrack", err)
	}
}

func TestTrack_Label(t *testing.T) {
	single, _ := catalog.NewTrack("psalms")
	if got := single.Label(); got != "Psalms" {
		t.Errorf("Label() = %q", got)
	}
	multi, _ := catalog.NewTrack("matthew", "mark", "john")
	if got := multi.Label(); got != "Matthew – John" {
		t.Errorf("Label() = %q", got)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for i, tr := range catalog.DefaultTracks() {
		s := catalog.EncodeTrack(tr)
		got, err := catalog.DecodeTrack(s)
		if err != nil {
			t.Fatalf("[%d] DecodeTrack(%q): %v", i, s, err)
		}
		if !got.Equal(tr) {
			t.Errorf("[%d] round-trip mismatch: %v vs %v", i, got.IDs(), tr.IDs())
		}
	}
}

func TestEncodeTrack_Format(t *testing.T) {
	tr, _ := catalog.NewTrack("1-corinthians", "2-corinthians")
	if got := catalog.EncodeTrack(tr); got != "1 Corinthians|2 Corinthians" {
		t.Errorf("EncodeTrack = %q", got)
	}
}

func TestDecodeTrack_Errors(t *testing.T) {
	if _, err := catalog.DecodeTrack("Matthew|Hezekiah"); !errors.Is(err, catalog.ErrUnknownUnit) {
		t.Errorf("unknown name: err = %v, want ErrUnknownUnit", err)
	}
	if _, err := catalog.DecodeTrack(""); !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("empty: err = %v, want ErrInvalidTrack", err)
	}
}

func TestDefaultTracks(t *testing.T) {
	tracks := catalog.DefaultTracks()
	if len(tracks) != 10 {
		t.Fatalf("expected 10 default tracks, got %d", len(tracks))
	}
	for i, tr := range tracks {
		if err := tr.Validate(); err != nil {
			t.Errorf("[%d] %v", i, err)
		}
	}
	if tracks[0][0].ID != "matthew" || tracks[9][0].ID != "acts" {
		t.Errorf("unexpected default order: %v ... %v", tracks[0].IDs(), tracks[9].IDs())
	}
}

// --- YAML files ---

func TestParseTracks_ValidYAML(t *testing.T) {
	tracks, err := catalog.ParseTracks(sampleYAML)
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	if tracks[2][0].ID != "1-corinthians" {
		t.Errorf("tracks[2][0] = %q", tracks[2][0].ID)
	}
}

func TestParseTracks_Empty(t *testing.T) {
	tracks, err := catalog.ParseTracks(nil)
	if err != nil {
		t.Fatalf("ParseTracks empty: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("expected 0 tracks, got %d", len(tracks))
	}
}

func TestParseTracks_InvalidYAML(t *testing.T) {
	if _, err := catalog.ParseTracks([]byte(":: bad yaml [")); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestParseTracks_UnknownBook(t *testing.T) {
	_, err := catalog.ParseTracks([]byte("- [matthew, tobit]\n"))
	if !errors.Is(err, catalog.ErrUnknownUnit) {
		t.Errorf("err = %v, want ErrUnknownUnit", err)
	}
}

func TestParseTracks_EmptyTrack(t *testing.T) {
	_, err := catalog.ParseTracks([]byte("- []\n"))
	if !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("err = %v, want ErrInvalidTrack", err)
	}
}

func TestMarshalTracks_RoundTrip(t *testing.T) {
	tracks, err := catalog.ParseTracks(sampleYAML)
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}
	data, err := catalog.MarshalTracks(tracks)
	if err != nil {
		t.Fatalf("MarshalTracks: %v", err)
	}
	tracks2, err := catalog.ParseTracks(data)
	if err != nil {
		t.Fatalf("re-Parse: %v\n%s", err, data)
	}
	if len(tracks2) != len(tracks) {
		t.Fatalf("round-trip length: got %d, want %d", len(tracks2), len(tracks))
	}
	for i := range tracks {
		if !tracks[i].Equal(tracks2[i]) {
			t.Errorf("[%d] mismatch: %v vs %v", i, tracks[i].IDs(), tracks2[i].IDs())
		}
	}
}

func TestSaveLoadTracks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.yml")
	if err := catalog.SaveTracks(path, catalog.DefaultTracks()); err != nil {
		t.Fatalf("SaveTracks: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := catalog.ParseTracks(data)
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 tracks, got %d", len(got))
	}
}

func TestSaveTracks_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tracks.yml")
	if err := catalog.SaveTracks(path, catalog.DefaultTracks()); err == nil {
		t.Error("expected error for a missing directory")
	}
}

// --- slice helpers ---

func TestReplaceRemove(t *testing.T) {
	tracks := catalog.DefaultTracks()
	ps, _ := catalog.NewTrack("psalms")

	tracks, ok := catalog.Replace(tracks, 0, ps)
	if !ok || tracks[0][0].ID != "psalms" {
		t.Errorf("Replace(0) failed: ok=%v", ok)
	}
	if _, ok := catalog.Replace(tracks, 10, ps); ok {
		t.Error("Replace out of range returned ok=true")
	}

	tracks, ok = catalog.Remove(tracks, 9)
	if !ok || len(tracks) != 9 {
		t.Errorf("Remove(9): ok=%v len=%d", ok, len(tracks))
	}
	if _, ok := catalog.Remove(tracks, -1); ok {
		t.Error("Remove(-1) returned ok=true")
	}
}

// --- Filter ---

func TestFilter_ByTestament(t *testing.T) {
	nt := catalog.Filter{Testament: catalog.NewTestament}.Apply(catalog.All())
	if len(nt) != 27 {
		t.Errorf("NT filter: expected 27, got %d", len(nt))
	}
	ot := catalog.Filter{Testament: catalog.OldTestament}.Apply(catalog.All())
	if len(ot) != 39 {
		t.Errorf("OT filter: expected 39, got %d", len(ot))
	}
}

func TestFilter_BySearch(t *testing.T) {
	got := catalog.Filter{Search: "corinth"}.Apply(catalog.All())
	if len(got) != 2 {
		t.Errorf("search corinth: expected 2, got %d", len(got))
	}
	got = catalog.Filter{Search: "John", Testament: catalog.NewTestament}.Apply(catalog.All())
	if len(got) != 4 {
		t.Errorf("search John in NT: expected 4, got %d", len(got))
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := (catalog.Filter{}).Apply(catalog.All()); len(got) != 66 {
		t.Errorf("empty filter should return all units, got %d", len(got))
	}
}

// --- Manager ---

type memStore struct {
	tracks   map[int64][]catalog.Track
	replaced int
}

func (s *memStore) Tracks(_ context.Context, id int64) ([]catalog.Track, error) {
	return append([]catalog.Track(nil), s.tracks[id]...), nil
}

func (s *memStore) ReplaceTracks(_ context.Context, id int64, tracks []catalog.Track) error {
	s.replaced++
	s.tracks[id] = tracks
	return nil
}

func TestManager_AppendSetRemove(t *testing.T) {
	ctx := context.Background()
	st := &memStore{tracks: map[int64][]catalog.Track{}}
	m := catalog.NewManager(st, 1)

	gospels, _ := catalog.NewTrack("matthew", "mark")
	if _, err := m.Append(ctx, gospels); err != nil {
		t.Fatalf("Append: %v", err)
	}
	ps, _ := catalog.NewTrack("psalms")
	if _, err := m.Append(ctx, ps); err != nil {
		t.Fatalf("Append: %v", err)
	}

	pr, _ := catalog.NewTrack("proverbs")
	tracks, err := m.Set(ctx, 1, pr)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if tracks[1][0].ID != "proverbs" {
		t.Errorf("Set did not replace: %v", tracks[1].IDs())
	}

	if _, err := m.Set(ctx, 5, pr); err == nil {
		t.Error("Set out of range should fail")
	}

	tracks, err = m.Remove(ctx, 0)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(tracks) != 1 || tracks[0][0].ID != "proverbs" {
		t.Errorf("after Remove: %v", tracks)
	}

	if _, err := m.Remove(ctx, 0); err == nil {
		t.Error("removing the last track should fail")
	}
	// Two appends, one set and one remove reach the store; the failed Set
	// and the refused Remove do not.
	if st.replaced != 4 {
		t.Errorf("ReplaceTracks calls = %d, want 4", st.replaced)
	}
}

func TestManager_SaveRejectsInvalid(t *testing.T) {
	st := &memStore{tracks: map[int64][]catalog.Track{}}
	m := catalog.NewManager(st, 1)
	err := m.Save(context.Background(), []catalog.Track{{}})
	if !errors.Is(err, catalog.ErrInvalidTrack) {
		t.Errorf("err = %v, want ErrInvalidTrack", err)
	}
	if st.replaced != 0 {
		t.Error("invalid tracks reached the store")
	}
}

func TestManager_Reset(t *testing.T) {
	st := &memStore{tracks: map[int64][]catalog.Track{}}
	m := catalog.NewManager(st, 7)
	tracks, err := m.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(tracks) != 10 || len(st.tracks[7]) != 10 {
		t.Errorf("Reset stored %d tracks", len(st.tracks[7]))
	}
}
