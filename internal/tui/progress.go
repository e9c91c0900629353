package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user quits a progress display.
var ErrCancelled = errors.New("cancelled by user")

// progressMsg carries the number of completed items.
type progressMsg int

// tickMsg is sent periodically to refresh the UI
type tickMsg time.Time

type progressModel struct {
	progress   progress.Model
	total      int
	current    int
	label      string
	done       bool
	cancelled  bool
	progressCh <-chan int
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForProgress(m.progressCh),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForProgress(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		// Block on channel read - UI stays alive via tickCmd
		n, ok := <-ch
		if !ok {
			return progressMsg(-1)
		}
		return progressMsg(n)
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		return m, tickCmd()

	case progressMsg:
		if int(msg) == -1 {
			m.done = true
			return m, tea.Quit
		}
		m.current = int(msg)
		return m, waitForProgress(m.progressCh)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s\n%s\n%d / %d chapters (%.0f%%)\n",
		m.label,
		m.progress.ViewAs(percent),
		m.current,
		m.total,
		percent*100,
	)
}

// ShowProgress displays a progress bar until progressCh is closed. Each
// value received is the number of items completed so far.
// Returns ErrCancelled if the user presses Ctrl+C.
func ShowProgress(label string, total int, progressCh <-chan int) error {
	m := progressModel{
		progress:   progress.New(progress.WithDefaultGradient()),
		total:      total,
		label:      label,
		progressCh: progressCh,
	}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(progressModel); ok && fm.cancelled {
		return ErrCancelled
	}
	return nil
}
