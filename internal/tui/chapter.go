package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/brpctl/internal/content"
)

// RenderChapter lays out a chapter for a terminal of the given width:
// a header line, then each verse as "<n> text", with section headings on
// their own line. width <= 0 disables wrapping.
func RenderChapter(c *content.Chapter, width int) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(c.Heading()))
	if c.Count > 0 {
		b.WriteString(StyleHelp.Render(fmt.Sprintf("  (%d/%d)", c.Number, c.Count)))
	}
	b.WriteString("\n")

	for _, v := range c.Verses {
		if v.Title != "" {
			b.WriteString("\n")
			b.WriteString(wrap(StyleSection.Render(v.Title), width))
			b.WriteString("\n")
		}
		line := StyleVerseNum.Render(fmt.Sprintf("%d", v.Number)) + " " + v.Text
		b.WriteString(wrap(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}
