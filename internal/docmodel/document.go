// Package docmodel wraps the docx libraries behind paragraph handles the
// classifier, formatter and validator can work with. All go-docx specifics
// stay inside this package.
package docmodel

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fumiama/go-docx"
	replacer "github.com/nguyenthenguyen/docx"
)

// PageMargins holds page margins in points.
type PageMargins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Document is a loaded .docx file: an ordered paragraph list, tables and
// page margins over the underlying go-docx document.
type Document struct {
	file       *docx.Docx
	paragraphs []*Paragraph
	tables     []*Table
	margins    PageMargins
	hasMargins bool
}

// Load reads a .docx file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a .docx file from memory.
func LoadBytes(data []byte) (*Document, error) {
	f, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	d := &Document{file: f}
	d.index()

	// Page margins and paragraph space-after are not round-tripped by the
	// structured library, so both come from the raw document.xml.
	if content, ok := documentXML(data); ok {
		if m, ok := parseMarginsXML(content); ok {
			d.margins = m
			d.hasMargins = true
		}
		afters := readSpaceAfterXML(content)
		if len(afters) == len(d.paragraphs) {
			for i, tw := range afters {
				if tw >= 0 {
					d.paragraphs[i].spaceAfter = tw
					d.paragraphs[i].hasSpaceAfter = true
				}
			}
		}
	}
	return d, nil
}

// index walks the document body and builds paragraph and table handles.
func (d *Document) index() {
	d.paragraphs = d.paragraphs[:0]
	d.tables = d.tables[:0]
	for _, item := range d.file.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			d.paragraphs = append(d.paragraphs, &Paragraph{raw: it})
		case *docx.Table:
			d.tables = append(d.tables, newTable(it))
		}
	}
}

// Paragraphs returns all body paragraphs in document order, including
// empty ones.
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Tables returns all top-level tables in document order.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Margins returns the page margins and whether the document declares any.
func (d *Document) Margins() (PageMargins, bool) {
	return d.margins, d.hasMargins
}

// SetMargins records page margins to be written on save.
func (d *Document) SetMargins(m PageMargins) {
	d.margins = m
	d.hasMargins = true
}

// Bytes serializes the document, including page margins and paragraph
// space-after, to .docx bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize docx: %w", err)
	}
	afters := d.pendingSpaceAfter()
	if !d.hasMargins && afters == nil {
		return buf.Bytes(), nil
	}
	return rewriteDocumentXML(buf.Bytes(), func(content string) string {
		if d.hasMargins {
			content = setMarginsXML(content, d.margins)
		}
		if afters != nil {
			content = setSpaceAfterXML(content, afters)
		}
		return content
	})
}

// pendingSpaceAfter returns the w:after twips to write per body paragraph,
// -1 where none is set, or nil when no paragraph carries a value.
func (d *Document) pendingSpaceAfter() []int {
	afters := make([]int, len(d.paragraphs))
	any := false
	for i, p := range d.paragraphs {
		afters[i] = -1
		if p.hasSpaceAfter {
			afters[i] = p.spaceAfter
			any = true
		}
	}
	if !any {
		return nil
	}
	return afters
}

// Save writes the document to disk.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// rewriteDocumentXML applies patch to the raw document.xml of serialized
// .docx bytes and returns the repacked archive.
func rewriteDocumentXML(data []byte, patch func(string) string) ([]byte, error) {
	rd, err := replacer.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reopen docx for raw edit: %w", err)
	}
	defer rd.Close()

	ed := rd.Editable()
	ed.SetContent(patch(ed.GetContent()))

	var buf bytes.Buffer
	if err := ed.Write(&buf); err != nil {
		return nil, fmt.Errorf("write document.xml edit: %w", err)
	}
	return buf.Bytes(), nil
}

// documentXML returns the raw document.xml content of .docx bytes.
func documentXML(data []byte) (string, bool) {
	rd, err := replacer.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false
	}
	defer rd.Close()
	return rd.Editable().GetContent(), true
}
