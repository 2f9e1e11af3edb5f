package docmodel

import (
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// Alignment is the paragraph alignment vocabulary exposed to callers.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// jcVal maps to the OOXML w:jc value ("justify" is "both" on the wire).
func (a Alignment) jcVal() string {
	if a == AlignJustify {
		return "both"
	}
	return string(a)
}

func alignmentFromJC(val string) Alignment {
	switch val {
	case "both", "distribute":
		return AlignJustify
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

// Paragraph is an opaque handle over a go-docx paragraph: plain text plus a
// mutable formatting surface in points.
type Paragraph struct {
	raw *docx.Paragraph

	// w:after in twips, carried on the handle: the go-docx Spacing
	// struct has no field for that attribute, so it is read from and
	// written to the raw document.xml (see spacing.go).
	spaceAfter    int
	hasSpaceAfter bool
}

// Text returns the concatenated run text, trimmed.
func (p *Paragraph) Text() string {
	var buf strings.Builder
	for _, child := range p.raw.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// IsEmpty reports whether the paragraph has no visible text.
func (p *Paragraph) IsEmpty() bool {
	return p.Text() == ""
}

// StyleName returns the paragraph style name, or "" when unstyled.
func (p *Paragraph) StyleName() string {
	if p.raw.Properties == nil || p.raw.Properties.Style == nil {
		return ""
	}
	return p.raw.Properties.Style.Val
}

// SetStyle assigns a named paragraph style.
func (p *Paragraph) SetStyle(name string) {
	p.ensureProps().Style = &docx.Style{Val: name}
}

// HasDrawing reports whether any run embeds a drawing (inline image).
func (p *Paragraph) HasDrawing() bool {
	for _, child := range p.raw.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if _, ok := rc.(*docx.Drawing); ok {
				return true
			}
		}
	}
	return false
}

func (p *Paragraph) ensureProps() *docx.ParagraphProperties {
	if p.raw.Properties == nil {
		p.raw.Properties = &docx.ParagraphProperties{}
	}
	return p.raw.Properties
}

func (p *Paragraph) ensureSpacing() *docx.Spacing {
	props := p.ensureProps()
	if props.Spacing == nil {
		props.Spacing = &docx.Spacing{}
	}
	return props.Spacing
}

func (p *Paragraph) ensureInd() *docx.Ind {
	props := p.ensureProps()
	if props.Ind == nil {
		props.Ind = &docx.Ind{}
	}
	return props.Ind
}

// Alignment returns the paragraph alignment (left when unset).
func (p *Paragraph) Alignment() Alignment {
	if p.raw.Properties == nil || p.raw.Properties.Justification == nil {
		return AlignLeft
	}
	return alignmentFromJC(p.raw.Properties.Justification.Val)
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a Alignment) {
	p.ensureProps().Justification = &docx.Justification{Val: a.jcVal()}
}

// LineSpacing returns the line spacing multiple (0 when unset).
func (p *Paragraph) LineSpacing() float64 {
	if p.raw.Properties == nil || p.raw.Properties.Spacing == nil {
		return 0
	}
	return float64(p.raw.Properties.Spacing.Line) / 240
}

// SetLineSpacing sets the line spacing as a multiple of single spacing.
func (p *Paragraph) SetLineSpacing(multiple float64) {
	sp := p.ensureSpacing()
	sp.Line = int(multiple * 240)
	sp.LineRule = "auto"
}

// SpaceBefore returns the spacing before the paragraph in points.
func (p *Paragraph) SpaceBefore() float64 {
	if p.raw.Properties == nil || p.raw.Properties.Spacing == nil {
		return 0
	}
	return float64(p.raw.Properties.Spacing.Before) / 20
}

// SetSpaceBefore sets the spacing before the paragraph in points.
func (p *Paragraph) SetSpaceBefore(pt float64) {
	p.ensureSpacing().Before = int(pt * 20)
}

// SpaceAfter returns the spacing after the paragraph in points.
func (p *Paragraph) SpaceAfter() float64 {
	if !p.hasSpaceAfter {
		return 0
	}
	return float64(p.spaceAfter) / 20
}

// SetSpaceAfter sets the spacing after the paragraph in points. Only
// body paragraphs persist the value on save; table cell paragraphs keep
// it in memory.
func (p *Paragraph) SetSpaceAfter(pt float64) {
	p.spaceAfter = int(pt * 20)
	p.hasSpaceAfter = true
}

// FirstLineIndent returns the first-line indent in points. A hanging indent
// is reported as a negative value.
func (p *Paragraph) FirstLineIndent() float64 {
	if p.raw.Properties == nil || p.raw.Properties.Ind == nil {
		return 0
	}
	ind := p.raw.Properties.Ind
	if ind.Hanging != 0 {
		return -float64(ind.Hanging) / 20
	}
	return float64(ind.FirstLine) / 20
}

// SetFirstLineIndent sets the first-line indent in points. Negative values
// become a hanging indent (w:hanging on the wire).
func (p *Paragraph) SetFirstLineIndent(pt float64) {
	ind := p.ensureInd()
	if pt < 0 {
		ind.Hanging = int(-pt * 20)
		ind.FirstLine = 0
		return
	}
	ind.FirstLine = int(pt * 20)
	ind.Hanging = 0
}

// LeftIndent returns the left indent in points.
func (p *Paragraph) LeftIndent() float64 {
	if p.raw.Properties == nil || p.raw.Properties.Ind == nil {
		return 0
	}
	return float64(p.raw.Properties.Ind.Left) / 20
}

// SetLeftIndent sets the left indent in points.
func (p *Paragraph) SetLeftIndent(pt float64) {
	p.ensureInd().Left = int(pt * 20)
}

func (p *Paragraph) runs() []*docx.Run {
	var runs []*docx.Run
	for _, child := range p.raw.Children {
		if run, ok := child.(*docx.Run); ok {
			runs = append(runs, run)
		}
	}
	return runs
}

func ensureRunProps(run *docx.Run) *docx.RunProperties {
	if run.RunProperties == nil {
		run.RunProperties = &docx.RunProperties{}
	}
	return run.RunProperties
}

// FontSize returns the font size in points of the first sized run (0 when
// no run declares a size).
func (p *Paragraph) FontSize() float64 {
	for _, run := range p.runs() {
		if run.RunProperties == nil || run.RunProperties.Size == nil {
			continue
		}
		if half, err := strconv.ParseFloat(run.RunProperties.Size.Val, 64); err == nil {
			return half / 2
		}
	}
	return 0
}

// SetFontSize sets the font size in points on every run.
func (p *Paragraph) SetFontSize(pt float64) {
	val := strconv.FormatFloat(pt*2, 'f', -1, 64)
	for _, run := range p.runs() {
		ensureRunProps(run).Size = &docx.Size{Val: val}
	}
}

// FontName returns the ASCII font of the first run that declares one.
func (p *Paragraph) FontName() string {
	for _, run := range p.runs() {
		if run.RunProperties != nil && run.RunProperties.Fonts != nil {
			return run.RunProperties.Fonts.ASCII
		}
	}
	return ""
}

// SetFontName sets the font family on every run, for both ASCII and East
// Asian characters.
func (p *Paragraph) SetFontName(name string) {
	for _, run := range p.runs() {
		ensureRunProps(run).Fonts = &docx.RunFonts{
			ASCII:    name,
			EastAsia: name,
			HAnsi:    name,
		}
	}
}

// IsBold reports whether the first run is bold.
func (p *Paragraph) IsBold() bool {
	for _, run := range p.runs() {
		if run.RunProperties != nil {
			return run.RunProperties.Bold != nil
		}
	}
	return false
}

// SetBold toggles bold on every run.
func (p *Paragraph) SetBold(bold bool) {
	for _, run := range p.runs() {
		props := ensureRunProps(run)
		if bold {
			props.Bold = &docx.Bold{}
		} else {
			props.Bold = nil
		}
	}
}

// IsItalic reports whether the first run is italic.
func (p *Paragraph) IsItalic() bool {
	for _, run := range p.runs() {
		if run.RunProperties != nil {
			return run.RunProperties.Italic != nil
		}
	}
	return false
}

// SetItalic toggles italics on every run.
func (p *Paragraph) SetItalic(italic bool) {
	for _, run := range p.runs() {
		props := ensureRunProps(run)
		if italic {
			props.Italic = &docx.Italic{}
		} else {
			props.Italic = nil
		}
	}
}
