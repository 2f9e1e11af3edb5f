// Package formatter writes a format specification onto a classified
// document, paragraph by paragraph. Mutation is in place with no
// rollback: paragraphs formatted before a failure stay formatted.
package formatter

import (
	"fmt"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/structure"
)

// Apply formats every paragraph of doc according to spec, with roles
// resolved by the shared RoleResolver over the classifier's index. The
// same call with the same spec is idempotent for every attribute it
// writes.
func Apply(doc *docmodel.Document, idx *structure.StructureIndex, spec *formatspec.DocumentFormat) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}
	if spec == nil {
		return fmt.Errorf("nil format specification")
	}

	// Page margins are written once per apply, not once per abstract
	// paragraph.
	doc.SetMargins(docmodel.PageMargins{
		Top:    spec.PageMargin.Top,
		Bottom: spec.PageMargin.Bottom,
		Left:   spec.PageMargin.Left,
		Right:  spec.PageMargin.Right,
	})

	resolver := structure.NewRoleResolver(idx)
	for _, p := range doc.Paragraphs() {
		if p.IsEmpty() {
			continue
		}
		role := resolver.Resolve(p)
		applyRole(p, role, spec)
	}

	applyTables(doc, spec)
	applyImages(doc, spec)
	applyCaptions(doc, spec)
	return nil
}

// RoleSpec selects the section format and the fallback alignment for a
// role. Title-like roles center by default; body-like roles justify;
// headings stay flush left.
func RoleSpec(spec *formatspec.DocumentFormat, role structure.Role) (formatspec.SectionFormat, docmodel.Alignment) {
	switch role {
	case structure.RoleTitle:
		return spec.Title, docmodel.AlignCenter
	case structure.RoleAbstract:
		return spec.Abstract, docmodel.AlignJustify
	case structure.RoleKeywords:
		return spec.Keywords, docmodel.AlignJustify
	case structure.RoleHeading1:
		return spec.Heading1, docmodel.AlignLeft
	case structure.RoleHeading2:
		return spec.Heading2, docmodel.AlignLeft
	case structure.RoleReference:
		return spec.References, docmodel.AlignJustify
	default:
		return spec.Body, docmodel.AlignJustify
	}
}

func applyRole(p *docmodel.Paragraph, role structure.Role, spec *formatspec.DocumentFormat) {
	f, fallback := RoleSpec(spec, role)

	p.SetFontName(f.FontName)
	p.SetFontSize(f.FontSize)
	p.SetBold(f.Bold)
	p.SetItalic(f.Italic)
	p.SetAlignment(formatspec.ParseAlignment(f.Alignment, fallback))
	if f.LineSpacing > 0 {
		p.SetLineSpacing(f.LineSpacing)
	}
	p.SetSpaceBefore(f.SpaceBefore)
	p.SetSpaceAfter(f.SpaceAfter)

	applyIndent(p, role, f)
}

// applyIndent converts the indent from character widths to points using
// the role's own font size. References get the hanging citation style:
// first line flush, wrapped lines indented.
func applyIndent(p *docmodel.Paragraph, role structure.Role, f formatspec.SectionFormat) {
	if role == structure.RoleReference {
		chars := f.FirstLineIndent
		if chars < 0 {
			chars = -chars
		}
		pt := chars * f.FontSize
		p.SetFirstLineIndent(-pt)
		p.SetLeftIndent(pt)
		return
	}
	p.SetFirstLineIndent(f.FirstLineIndent * f.FontSize)
}

func applyTables(doc *docmodel.Document, spec *formatspec.DocumentFormat) {
	align := formatspec.ParseAlignment(spec.Tables.Alignment, docmodel.AlignCenter)
	for _, table := range doc.Tables() {
		for _, p := range table.AllParagraphs() {
			if spec.Tables.FontName != "" {
				p.SetFontName(spec.Tables.FontName)
			}
			if spec.Tables.FontSize > 0 {
				p.SetFontSize(spec.Tables.FontSize)
			}
			p.SetAlignment(align)
		}
		if spec.Tables.HeaderBold {
			for _, p := range table.Row(0) {
				p.SetBold(true)
			}
		}
	}
}

func applyImages(doc *docmodel.Document, spec *formatspec.DocumentFormat) {
	align := formatspec.ParseAlignment(spec.Images.Alignment, docmodel.AlignCenter)
	for _, p := range doc.Paragraphs() {
		if p.HasDrawing() {
			p.SetAlignment(align)
		}
	}
}

func applyCaptions(doc *docmodel.Document, spec *formatspec.DocumentFormat) {
	for _, p := range doc.Paragraphs() {
		if p.IsEmpty() {
			continue
		}
		switch {
		case isCaption(p.Text(), spec.FigureCaption.Prefix):
			applyCaption(p, spec.FigureCaption)
		case isCaption(p.Text(), spec.TableCaption.Prefix):
			applyCaption(p, spec.TableCaption)
		}
	}
}

func applyCaption(p *docmodel.Paragraph, f formatspec.CaptionFormat) {
	if f.FontName != "" {
		p.SetFontName(f.FontName)
	}
	if f.FontSize > 0 {
		p.SetFontSize(f.FontSize)
	}
	p.SetAlignment(formatspec.ParseAlignment(f.Alignment, docmodel.AlignCenter))
}
