// Package validator re-reads applied formatting and reports deviations
// from a format specification. Every check is exact equality; there are
// no tolerances, severities or waivers.
package validator

import (
	"fmt"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/formatter"
	"github.com/paperforge/paperfmt/internal/structure"
)

// Result is one validation finding.
type Result struct {
	Section string `json:"section"`
	Element string `json:"element"`
	Valid   bool   `json:"is_valid"`
	Message string `json:"message"`
}

// ValidateAll checks the whole document against spec and returns one
// result per check, in check order. It is stateless: every call starts
// from an empty result list. Validating a document that was never
// formatted is allowed and simply reports every deviation.
//
// Roles come from the same RoleResolver the formatter uses, so applying
// a spec and then validating against it can never disagree about which
// rule a paragraph falls under.
func ValidateAll(doc *docmodel.Document, idx *structure.StructureIndex, spec *formatspec.DocumentFormat) []Result {
	v := &run{
		doc:   doc,
		idx:   idx,
		spec:  spec,
		roles: make(map[*docmodel.Paragraph]structure.Role),
	}
	resolver := structure.NewRoleResolver(idx)
	for _, p := range doc.Paragraphs() {
		if p.IsEmpty() {
			continue
		}
		v.roles[p] = resolver.Resolve(p)
	}

	v.checkExistence()
	v.checkTitle()
	v.checkAbstract()
	v.checkHeadings()
	v.checkBody()
	v.checkReferences()
	v.checkTables()
	v.checkImages()
	v.checkMargins()
	return v.results
}

type run struct {
	doc     *docmodel.Document
	idx     *structure.StructureIndex
	spec    *formatspec.DocumentFormat
	roles   map[*docmodel.Paragraph]structure.Role
	results []Result
}

func (v *run) add(section, element string, valid bool, format string, args ...any) {
	v.results = append(v.results, Result{
		Section: section,
		Element: element,
		Valid:   valid,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *run) checkExistence() {
	v.add("structure", "title", v.idx.Title != nil, "title paragraph present: %t", v.idx.Title != nil)
	v.add("structure", "abstract", v.idx.Abstract != nil, "abstract paragraph present: %t", v.idx.Abstract != nil)
	v.add("structure", "keywords", v.idx.Keywords != nil, "keywords paragraph present: %t", v.idx.Keywords != nil)
}

func (v *run) checkTitle() {
	p := v.idx.Title
	if p == nil {
		return
	}
	wantSize := v.spec.Title.FontSize
	v.add("title", "font_size", p.FontSize() == wantSize,
		"font size %.2fpt, want %.2fpt", p.FontSize(), wantSize)

	wantAlign := formatspec.ParseAlignment(v.spec.Title.Alignment, docmodel.AlignCenter)
	v.add("title", "alignment", p.Alignment() == wantAlign,
		"alignment %s, want %s", p.Alignment(), wantAlign)
}

func (v *run) checkAbstract() {
	p := v.idx.Abstract
	if p == nil {
		return
	}
	wantIndent := v.spec.Abstract.FirstLineIndent * v.spec.Abstract.FontSize
	v.add("abstract", "first_line_indent", p.FirstLineIndent() == wantIndent,
		"first-line indent %.2fpt, want %.2fpt", p.FirstLineIndent(), wantIndent)
}

// checkHeadings compares each section heading's font size against the
// spec for its resolved role: heading1 for main chapters, heading2 for
// the rest.
func (v *run) checkHeadings() {
	for _, sec := range v.idx.Sections() {
		role, ok := v.roles[sec.Heading]
		if !ok {
			continue
		}
		f, _ := formatter.RoleSpec(v.spec, role)
		v.add("sections", sec.Title, sec.Heading.FontSize() == f.FontSize,
			"%s font size %.2fpt, want %.2fpt", role, sec.Heading.FontSize(), f.FontSize)
	}
}

func (v *run) checkBody() {
	for _, p := range v.doc.Paragraphs() {
		if v.roles[p] != structure.RoleBody {
			continue
		}
		sizeOK := p.FontSize() == v.spec.Body.FontSize
		v.add("body", truncateText(p.Text()), sizeOK,
			"font size %.2fpt, want %.2fpt", p.FontSize(), v.spec.Body.FontSize)
		if v.spec.Body.LineSpacing > 0 {
			spacingOK := p.LineSpacing() == v.spec.Body.LineSpacing
			v.add("body", truncateText(p.Text()), spacingOK,
				"line spacing %.2f, want %.2f", p.LineSpacing(), v.spec.Body.LineSpacing)
		}
	}
}

// checkReferences verifies the hanging citation indent on every
// paragraph in the reference section.
func (v *run) checkReferences() {
	wantHang := v.spec.References.FirstLineIndent
	if wantHang < 0 {
		wantHang = -wantHang
	}
	wantPt := wantHang * v.spec.References.FontSize
	for _, p := range v.doc.Paragraphs() {
		if v.roles[p] != structure.RoleReference {
			continue
		}
		ok := p.FirstLineIndent() == -wantPt && p.LeftIndent() == wantPt
		v.add("references", truncateText(p.Text()), ok,
			"hanging indent %.2f/%.2fpt, want %.2f/%.2fpt",
			p.FirstLineIndent(), p.LeftIndent(), -wantPt, wantPt)
	}
}

func (v *run) checkTables() {
	wantAlign := formatspec.ParseAlignment(v.spec.Tables.Alignment, docmodel.AlignCenter)
	for i, table := range v.doc.Tables() {
		name := fmt.Sprintf("table %d", i+1)
		ok := true
		for _, p := range table.AllParagraphs() {
			if p.Alignment() != wantAlign {
				ok = false
				v.add("tables", name, false, "cell alignment %s, want %s", p.Alignment(), wantAlign)
			}
		}
		if v.spec.Tables.HeaderBold {
			for _, p := range table.Row(0) {
				if !p.IsBold() {
					ok = false
					v.add("tables", name, false, "header cell %q not bold", truncateText(p.Text()))
				}
			}
		}
		if ok {
			v.add("tables", name, true, "table formatting matches spec")
		}
	}
}

func (v *run) checkImages() {
	wantAlign := formatspec.ParseAlignment(v.spec.Images.Alignment, docmodel.AlignCenter)
	for _, p := range v.doc.Paragraphs() {
		if !p.HasDrawing() {
			continue
		}
		v.add("images", "alignment", p.Alignment() == wantAlign,
			"image paragraph alignment %s, want %s", p.Alignment(), wantAlign)
	}
}

// checkMargins validates each page margin edge independently,
// point-exact.
func (v *run) checkMargins() {
	m, ok := v.doc.Margins()
	if !ok {
		v.add("page_margin", "present", false, "document declares no page margins")
		return
	}
	edges := []struct {
		name string
		got  float64
		want float64
	}{
		{"top", m.Top, v.spec.PageMargin.Top},
		{"bottom", m.Bottom, v.spec.PageMargin.Bottom},
		{"left", m.Left, v.spec.PageMargin.Left},
		{"right", m.Right, v.spec.PageMargin.Right},
	}
	for _, e := range edges {
		v.add("page_margin", e.name, e.got == e.want,
			"%s margin %.2fpt, want %.2fpt", e.name, e.got, e.want)
	}
}

func truncateText(s string) string {
	runes := []rune(s)
	if len(runes) <= 20 {
		return s
	}
	return string(runes[:20]) + "..."
}
