package structure

import (
	"context"
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// classifyByModel submits the full document text to the oracle and maps
// the returned outline back onto paragraphs by exact text equality.
// Whitespace or punctuation drift in the oracle's answer makes a match
// silently miss; there is no fuzzy fallback.
func (c *Classifier) classifyByModel(ctx context.Context, paras []*docmodel.Paragraph) (*StructureIndex, error) {
	if c.oracle == nil {
		return nil, errNoOracle
	}

	var sb strings.Builder
	for _, p := range paras {
		if p.IsEmpty() {
			continue
		}
		sb.WriteString(p.Text())
		sb.WriteString("\n")
	}

	outline, err := c.oracle.ClassifyStructure(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	if outline.IsEmpty() {
		return nil, errNoStructure
	}

	sectionTitles := make(map[string]bool, len(outline.Sections))
	for _, sec := range outline.Sections {
		sectionTitles[sec.Title] = true
	}
	refTexts := make(map[string]bool, len(outline.References))
	for _, ref := range outline.References {
		refTexts[ref] = true
	}
	keywordTexts := make(map[string]bool, len(outline.Keywords))
	for _, kw := range outline.Keywords {
		keywordTexts[kw] = true
	}

	idx := NewIndex()
	// Section-open state is reset on every heading match; a paragraph only
	// ever lands in the section whose heading most recently matched.
	var current *Section

	for _, p := range paras {
		if p.IsEmpty() {
			continue
		}
		text := p.Text()

		if text == outline.Title {
			idx.AssignTitle(p, LastWins)
			continue
		}
		if text == outline.Abstract {
			idx.AssignAbstract(p, LastWins)
			continue
		}
		if keywordTexts[text] {
			idx.AssignKeywords(p, LastWins)
			continue
		}
		if refTexts[text] {
			idx.References = append(idx.References, p)
			continue
		}
		if sectionTitles[text] {
			current = idx.OpenSection(p, text)
			continue
		}
		if current != nil {
			current.Body = append(current.Body, p)
		}
	}

	if idx.Empty() {
		return nil, errNoStructure
	}
	return idx, nil
}
