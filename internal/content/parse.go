package content

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

type xmlBible struct {
	XMLName      xml.Name   `xml:"bible"`
	Title        string     `xml:"title"`
	Book         int        `xml:"book"`
	BookName     string     `xml:"bookname"`
	Chapter      int        `xml:"chapter"`
	ChapterCount int        `xml:"chapter_count"`
	Verses       []xmlVerse `xml:"verses>verse"`
}

type xmlVerse struct {
	Number int    `xml:"number"`
	Title  string `xml:"title"`
	Text   string `xml:"text"`
}

// Parse decodes a chapter document:
//
//	<bible>
//	  <title/><book/><bookname/><chapter/><chapter_count/>
//	  <verses><verse><number/><title/><text/></verse>...</verses>
//	</bible>
func Parse(data []byte) (*Chapter, error) {
	var doc xmlBible
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing chapter XML: %w", err)
	}
	if len(doc.Verses) == 0 {
		return nil, errors.New("chapter has no verses")
	}

	c := &Chapter{
		Title:    strings.TrimSpace(doc.Title),
		Book:     doc.Book,
		BookName: strings.TrimSpace(doc.BookName),
		Number:   doc.Chapter,
		Count:    doc.ChapterCount,
		Verses:   make([]Verse, 0, len(doc.Verses)),
	}
	for i, v := range doc.Verses {
		if v.Number < 1 {
			return nil, fmt.Errorf("verse %d: invalid number %d", i+1, v.Number)
		}
		c.Verses = append(c.Verses, Verse{
			Number: v.Number,
			Title:  strings.TrimSpace(v.Title),
			Text:   strings.TrimSpace(v.Text),
		})
	}
	return c, nil
}

// Validate reports whether data parses as a chapter.
func Validate(data []byte) error {
	_, err := Parse(data)
	return err
}
