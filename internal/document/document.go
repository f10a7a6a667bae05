package document

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyInput is returned for nil or zero-length input.
	ErrEmptyInput = errors.New("document: input is empty")
	// ErrParseFailure is returned when the input is not a readable PDF.
	ErrParseFailure = errors.New("document: failed to parse content")
	// ErrNoText is returned when no page yields any text.
	ErrNoText = errors.New("document: no text could be extracted")
)

// pageSeparator joins page texts in FullText.
const pageSeparator = "\n\n"

// Page is the text of one page. Numbers start at 1.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// Document is an ordered, immutable set of pages.
type Document struct {
	pages []Page
}

// New builds a Document from page texts in order, numbering them from 1.
// Each text is trimmed.
func New(texts []string) *Document {
	pages := make([]Page, len(texts))
	for i, t := range texts {
		pages[i] = Page{Number: i + 1, Text: strings.TrimSpace(t)}
	}
	return &Document{pages: pages}
}

// NewText wraps raw text as a single-page document.
func NewText(text string) *Document {
	return &Document{pages: []Page{{Number: 1, Text: text}}}
}

// Pages returns a copy of the pages.
func (d *Document) Pages() []Page {
	out := make([]Page, len(d.pages))
	copy(out, d.pages)
	return out
}

// TotalPages returns the number of pages.
func (d *Document) TotalPages() int {
	return len(d.pages)
}

// FullText joins all page texts with a blank line.
func (d *Document) FullText() string {
	texts := make([]string, len(d.pages))
	for i, p := range d.pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, pageSeparator)
}

// TotalCharacterCount sums the length of every page text.
func (d *Document) TotalCharacterCount() int {
	n := 0
	for _, p := range d.pages {
		n += len([]rune(p.Text))
	}
	return n
}

// HasText reports whether any page has non-blank text.
func (d *Document) HasText() bool {
	for _, p := range d.pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}
