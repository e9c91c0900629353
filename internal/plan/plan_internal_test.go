package plan

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

func TestWalk_ResumesFromIndex(t *testing.T) {
	tr, err := catalog.NewTrack("matthew", "mark", "luke")
	if err != nil {
		t.Fatal(err)
	}
	pos, err := walk(tr, 17, 1)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Unit.ID != "luke" || pos.Chapter != 1 {
		t.Errorf("walk from Mark, 17 = %s, want Luke 1", pos)
	}
}

func TestWalk_Exhausted(t *testing.T) {
	tr, _ := catalog.NewTrack("jude")
	_, err := walk(tr, 2, 0)
	if !errors.Is(err, ErrInconsistent) {
		t.Errorf("err = %v, want ErrInconsistent", err)
	}
	if errors.Is(err, catalog.ErrInvalidTrack) {
		t.Error("defect error must not look like invalid input")
	}
}
