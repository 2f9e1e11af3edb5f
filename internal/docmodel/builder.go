package docmodel

import "github.com/fumiama/go-docx"

// New returns an empty in-memory document. Used by tests and by callers
// that assemble documents programmatically.
func New() *Document {
	return &Document{file: docx.New().WithDefaultTheme()}
}

// AddParagraph appends a paragraph with the given text (a single run) and
// returns its handle. An empty text produces an empty paragraph.
func (d *Document) AddParagraph(text string) *Paragraph {
	raw := d.file.AddParagraph()
	if text != "" {
		raw.AddText(text)
	}
	p := &Paragraph{raw: raw}
	d.paragraphs = append(d.paragraphs, p)
	return p
}
