package structure

import (
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// classifyByHeuristic assigns roles from text patterns. The first
// non-empty paragraph becomes the title no matter what it says; that rule
// takes precedence over every other one for that paragraph. Paragraphs
// outside any section are dropped, there is no preamble bucket.
func classifyByHeuristic(paras []*docmodel.Paragraph) (*StructureIndex, error) {
	idx := NewIndex()
	var current *Section

	for _, p := range paras {
		if p.IsEmpty() {
			continue
		}
		text := p.Text()

		if idx.Title == nil {
			idx.AssignTitle(p, FirstWins)
			continue
		}

		lower := strings.ToLower(text)
		switch {
		case strings.HasPrefix(lower, "abstract") || strings.HasPrefix(text, "摘要"):
			idx.AssignAbstract(p, LastWins)
		case strings.HasPrefix(lower, "keywords") || strings.HasPrefix(text, "关键词"):
			idx.AssignKeywords(p, LastWins)
		case IsSectionHeading(text):
			current = idx.OpenSection(p, text)
		default:
			if current != nil {
				current.Body = append(current.Body, p)
			}
		}
	}

	// Very weak predicate: any text at all usually satisfies it.
	if idx.Empty() {
		return nil, errNoStructure
	}
	return idx, nil
}
