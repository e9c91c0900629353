package tui

import "github.com/charmbracelet/bubbles/key"

// ReaderKeys are the key bindings of the chapter reader. Scrolling keys
// belong to the viewport.
type ReaderKeys struct {
	Quit key.Binding
	Next key.Binding
	Prev key.Binding
	Top  key.Binding
}

// NewReaderKeys creates the reader's key bindings.
func NewReaderKeys() ReaderKeys {
	return ReaderKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n", "next chapter"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p", "previous chapter"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
	}
}

// Shortcuts returns the footer entries for the bindings.
func (k ReaderKeys) Shortcuts() []ShortcutEntry {
	var out []ShortcutEntry
	for _, b := range []key.Binding{k.Prev, k.Next, k.Top, k.Quit} {
		h := b.Help()
		out = append(out, ShortcutEntry{Key: h.Key, Label: h.Key + " " + h.Desc})
	}
	out = append(out, ShortcutEntry{Label: "↑/↓ scroll"})
	return out
}
