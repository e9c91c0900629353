package content

import "fmt"

// Chapter is the parsed text of one chapter as declared by the source.
// Book, Number and Count are display-only and are not checked against the
// catalog.
type Chapter struct {
	Title    string
	Book     int
	BookName string
	Number   int
	Count    int
	Verses   []Verse
}

// Verse is one numbered verse. Title is the section heading that precedes
// it, if any.
type Verse struct {
	Number int
	Title  string
	Text   string
}

// Heading returns "<bookname> <chapter>", falling back to the title.
func (c *Chapter) Heading() string {
	if c.BookName == "" {
		return c.Title
	}
	return fmt.Sprintf("%s %d", c.BookName, c.Number)
}
