package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/brpctl/internal/catalog"
	"github.com/blackwell-systems/brpctl/internal/content"
	"github.com/blackwell-systems/brpctl/internal/plan"
)

// LoadFunc returns the content of one chapter.
type LoadFunc func(ctx context.Context, u catalog.Unit, chapter int) (*content.Chapter, error)

// ReaderOptions configures RunReader.
type ReaderOptions struct {
	Ctx   context.Context
	Start plan.Position
	Title string // shown before the position, e.g. the track label
	Load  LoadFunc
}

type chapterMsg struct {
	pos     plan.Position
	chapter *content.Chapter
	err     error
}

type readerModel struct {
	ctx       context.Context
	keys      ReaderKeys
	vp        viewport.Model
	ready     bool
	title     string
	pos       plan.Position
	chapter   *content.Chapter
	err       error
	loading   bool
	load      LoadFunc
	activeCmd string
}

func newReaderModel(opts ReaderOptions) readerModel {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return readerModel{
		ctx:     ctx,
		keys:    NewReaderKeys(),
		title:   opts.Title,
		pos:     opts.Start,
		load:    opts.Load,
		loading: true,
	}
}

func (m readerModel) Init() tea.Cmd {
	return m.fetch(m.pos)
}

func (m readerModel) fetch(pos plan.Position) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		c, err := load(ctx, pos.Unit, pos.Chapter)
		return chapterMsg{pos: pos, chapter: c, err: err}
	}
}

func (m readerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.move(1, m.keys.Next)
		case key.Matches(msg, m.keys.Prev):
			return m.move(-1, m.keys.Prev)
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		h := msg.Height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		m.refresh()
		return m, nil

	case chapterMsg:
		if msg.pos != m.pos {
			// A newer request superseded this one.
			return m, nil
		}
		m.loading = false
		m.chapter, m.err = msg.chapter, msg.err
		m.refresh()
		m.vp.GotoTop()
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m readerModel) move(delta int, b key.Binding) (tea.Model, tea.Cmd) {
	next, ok := plan.Step(m.pos, delta)
	if !ok {
		return m, nil
	}
	m.pos = next
	m.loading = true
	m.activeCmd = b.Help().Key
	return m, tea.Batch(m.fetch(next), HighlightCmd())
}

func (m *readerModel) refresh() {
	if !m.ready {
		return
	}
	switch {
	case m.err != nil:
		m.vp.SetContent(StyleHighlight.Render("Could not load chapter: ") + m.err.Error())
	case m.chapter != nil:
		m.vp.SetContent(RenderChapter(m.chapter, m.vp.Width-2))
	default:
		m.vp.SetContent("")
	}
}

func (m readerModel) headerView() string {
	label := m.pos.String()
	if m.title != "" {
		label = m.title + " · " + label
	}
	status := ""
	if m.loading {
		status = StyleHelp.Render("  loading…")
	} else if m.chapter != nil {
		status = StyleCached.Render("  ✓")
	}
	return StyleHeader.Render(label) + status
}

func (m readerModel) footerView() string {
	pct := 0.0
	if m.ready {
		pct = m.vp.ScrollPercent()
	}
	return RenderFooterBar(m.keys.Shortcuts(), m.activeCmd) +
		StyleHelp.Render(fmt.Sprintf(" %3.0f%%", pct*100))
}

func (m readerModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

// RunReader opens the full-screen chapter reader at opts.Start.
func RunReader(opts ReaderOptions) error {
	if opts.Load == nil {
		return fmt.Errorf("reader: no chapter loader")
	}
	p := tea.NewProgram(newReaderModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
