package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/content"
	"github.com/blackwell-systems/brpctl/internal/plan"
)

func sampleChapter() *content.Chapter {
	return &content.Chapter{
		Title: "Rut 1", BookName: "Rut", Number: 1, Count: 4,
		Verses: []content.Verse{
			{Number: 1, Title: "Elimelekh pindah ke Moab", Text: "Pada zaman para hakim memerintah ada kelaparan di tanah Israel."},
			{Number: 2, Text: "Nama orang itu ialah Elimelekh."},
		},
	}
}

func TestRenderChapter(t *testing.T) {
	out := ansi.Strip(RenderChapter(sampleChapter(), 0))
	for _, want := range []string{"Rut 1", "(1/4)", "Elimelekh pindah ke Moab", "1 Pada zaman", "2 Nama orang"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Elimelekh pindah") > strings.Index(out, "1 Pada zaman") {
		t.Error("section heading should precede its verse")
	}
}

func TestRenderChapter_Wraps(t *testing.T) {
	out := ansi.Strip(RenderChapter(sampleChapter(), 20))
	for _, line := range strings.Split(out, "\n") {
		if ansi.StringWidth(line) > 20 {
			t.Errorf("line wider than 20: %q", line)
		}
	}
}

func TestReaderKeys_Shortcuts(t *testing.T) {
	sc := NewReaderKeys().Shortcuts()
	if len(sc) != 5 {
		t.Fatalf("expected 5 shortcuts, got %d", len(sc))
	}
	if sc[0].Key != "p" || sc[1].Key != "n" {
		t.Errorf("unexpected order: %+v", sc)
	}
}

func TestReaderModel_LoadAndNavigate(t *testing.T) {
	var asked []string
	load := func(_ context.Context, u catalog.Unit, ch int) (*content.Chapter, error) {
		asked = append(asked, plan.Position{Unit: u, Chapter: ch}.String())
		if u.ID == "mark" {
			return nil, errors.New("offline")
		}
		return sampleChapter(), nil
	}
	start := plan.Position{Unit: catalog.MustByID("matthew"), Chapter: 28}
	var m tea.Model = newReaderModel(ReaderOptions{Start: start, Load: load})

	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	msg := m.(readerModel).fetch(start)()
	m, _ = m.Update(msg)
	rm := m.(readerModel)
	if rm.loading || rm.chapter == nil {
		t.Fatal("chapter not loaded")
	}
	if !strings.Contains(ansi.Strip(rm.View()), "Matthew 28") {
		t.Errorf("header missing position:\n%s", rm.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	rm = m.(readerModel)
	if rm.pos.String() != "Mark 1" || !rm.loading || cmd == nil {
		t.Fatalf("after next: pos=%s loading=%v", rm.pos, rm.loading)
	}

	// A stale response for the old position is ignored.
	m, _ = m.Update(chapterMsg{pos: start, chapter: sampleChapter()})
	if !m.(readerModel).loading {
		t.Error("stale response cleared loading state")
	}

	m, _ = m.Update(m.(readerModel).fetch(rm.pos)())
	rm = m.(readerModel)
	if rm.err == nil || !strings.Contains(ansi.Strip(rm.vp.View()), "offline") {
		t.Errorf("load error not shown: %v", rm.err)
	}
	if strings.Join(asked, ",") != "Matthew 28,Mark 1" {
		t.Errorf("loads = %v", asked)
	}
}

func TestProgressModel(t *testing.T) {
	ch := make(chan int)
	var m tea.Model = progressModel{progress: progress.New(), total: 4, label: "x", progressCh: ch}
	m, _ = m.Update(progressMsg(2))
	if m.(progressModel).current != 2 {
		t.Errorf("current = %d", m.(progressModel).current)
	}
	if !strings.Contains(m.View(), "2 / 4 chapters (50%)") {
		t.Errorf("View = %q", m.View())
	}
	m, _ = m.Update(progressMsg(-1))
	if !m.(progressModel).done {
		t.Error("closed channel should finish the model")
	}
}
