// Package formatspec holds the declarative per-role formatting targets a
// template file describes: fonts, spacing, indentation and page setup.
// A DocumentFormat is immutable by convention once loaded.
package formatspec

import (
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// SectionFormat describes the formatting of one structural role.
// FirstLineIndent is measured in character widths, not points; the
// applicator converts it with the role's own font size. A negative value
// produces a hanging indent.
type SectionFormat struct {
	FontSize        float64 `yaml:"font_size" json:"font_size"`
	FontName        string  `yaml:"font_name" json:"font_name"`
	Bold            bool    `yaml:"bold" json:"bold"`
	Italic          bool    `yaml:"italic" json:"italic"`
	Alignment       string  `yaml:"alignment" json:"alignment"`
	FirstLineIndent float64 `yaml:"first_line_indent" json:"first_line_indent"`
	LineSpacing     float64 `yaml:"line_spacing" json:"line_spacing"`
	SpaceBefore     float64 `yaml:"space_before" json:"space_before"`
	SpaceAfter      float64 `yaml:"space_after" json:"space_after"`
}

// PageMargin holds page margins in points.
type PageMargin struct {
	Top    float64 `yaml:"top" json:"top"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
}

// TableFormat describes table formatting.
type TableFormat struct {
	Alignment  string  `yaml:"alignment" json:"alignment"`
	HeaderBold bool    `yaml:"header_bold" json:"header_bold"`
	FontSize   float64 `yaml:"font_size" json:"font_size"`
	FontName   string  `yaml:"font_name" json:"font_name"`
}

// ImageFormat describes image-paragraph formatting.
type ImageFormat struct {
	Alignment       string `yaml:"alignment" json:"alignment"`
	CaptionPosition string `yaml:"caption_position" json:"caption_position"`
}

// CaptionFormat describes figure/table caption formatting.
type CaptionFormat struct {
	Prefix    string  `yaml:"prefix" json:"prefix"`
	FontSize  float64 `yaml:"font_size" json:"font_size"`
	FontName  string  `yaml:"font_name" json:"font_name"`
	Alignment string  `yaml:"alignment" json:"alignment"`
}

// PageSetup describes paper size and orientation.
type PageSetup struct {
	PaperSize   string `yaml:"paper_size" json:"paper_size"`
	Orientation string `yaml:"orientation" json:"orientation"`
}

// TOCFormat describes the table of contents.
type TOCFormat struct {
	Depth       int     `yaml:"depth" json:"depth"`
	FontSize    float64 `yaml:"font_size" json:"font_size"`
	FontName    string  `yaml:"font_name" json:"font_name"`
	LineSpacing float64 `yaml:"line_spacing" json:"line_spacing"`
}

// DocumentFormat is the full per-role format specification for one
// document class.
type DocumentFormat struct {
	Title      SectionFormat `yaml:"title" json:"title"`
	Abstract   SectionFormat `yaml:"abstract" json:"abstract"`
	Keywords   SectionFormat `yaml:"keywords" json:"keywords"`
	Heading1   SectionFormat `yaml:"heading1" json:"heading1"`
	Heading2   SectionFormat `yaml:"heading2" json:"heading2"`
	Body       SectionFormat `yaml:"body" json:"body"`
	References SectionFormat `yaml:"references" json:"references"`

	PageMargin    PageMargin    `yaml:"page_margin" json:"page_margin"`
	Tables        TableFormat   `yaml:"tables" json:"tables"`
	Images        ImageFormat   `yaml:"images" json:"images"`
	FigureCaption CaptionFormat `yaml:"figure_caption" json:"figure_caption"`
	TableCaption  CaptionFormat `yaml:"table_caption" json:"table_caption"`
	PageSetup     PageSetup     `yaml:"page_setup" json:"page_setup"`
	TOC           TOCFormat     `yaml:"toc" json:"toc"`
}

// Default returns the built-in fallback format: Times New Roman body
// text at 12pt with 2-character first-line indent, 1.5 line spacing,
// and one-inch top/bottom margins.
func Default() *DocumentFormat {
	return &DocumentFormat{
		Title:      SectionFormat{FontSize: 16, FontName: "Times New Roman", Bold: true, Alignment: "center"},
		Abstract:   SectionFormat{FontSize: 12, FontName: "Times New Roman", FirstLineIndent: 2},
		Keywords:   SectionFormat{FontSize: 12, FontName: "Times New Roman"},
		Heading1:   SectionFormat{FontSize: 14, FontName: "Times New Roman", Bold: true},
		Heading2:   SectionFormat{FontSize: 13, FontName: "Times New Roman", Bold: true},
		Body:       SectionFormat{FontSize: 12, FontName: "Times New Roman", FirstLineIndent: 2, LineSpacing: 1.5},
		References: SectionFormat{FontSize: 10.5, FontName: "Times New Roman", FirstLineIndent: -2},

		PageMargin: PageMargin{Top: 72, Bottom: 72, Left: 90, Right: 90},
		Tables:     TableFormat{Alignment: "center", HeaderBold: true, FontSize: 10.5, FontName: "Times New Roman"},
		Images:     ImageFormat{Alignment: "center", CaptionPosition: "below"},
		FigureCaption: CaptionFormat{
			Prefix: "图", FontSize: 10.5, FontName: "Times New Roman", Alignment: "center",
		},
		TableCaption: CaptionFormat{
			Prefix: "表", FontSize: 10.5, FontName: "Times New Roman", Alignment: "center",
		},
		PageSetup: PageSetup{PaperSize: "A4", Orientation: "portrait"},
		TOC:       TOCFormat{Depth: 2, FontSize: 12, FontName: "Times New Roman", LineSpacing: 1.5},
	}
}

// ParseAlignment maps the template alignment vocabulary (Chinese or
// English, any case) onto the document model's alignment values. An
// unrecognized or empty value yields the role's fallback.
func ParseAlignment(s string, fallback docmodel.Alignment) docmodel.Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "居中", "center":
		return docmodel.AlignCenter
	case "左对齐", "left":
		return docmodel.AlignLeft
	case "右对齐", "right":
		return docmodel.AlignRight
	case "两端对齐", "justify":
		return docmodel.AlignJustify
	default:
		return fallback
	}
}
