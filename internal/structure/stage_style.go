package structure

import (
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// classifyByStyle assigns roles from named paragraph styles. It succeeds
// only when both a title and at least one section were found; documents
// without real Word styles fall through to the heuristic stage.
func classifyByStyle(paras []*docmodel.Paragraph) (*StructureIndex, error) {
	idx := NewIndex()
	var current *Section

	for _, p := range paras {
		if p.IsEmpty() {
			continue
		}
		style := strings.ToLower(p.StyleName())

		switch {
		// Localized heading styles ("标题 1") contain the bare title
		// style name ("标题"), so headings are tested first.
		case isHeading1Style(style):
			current = idx.OpenSection(p, p.Text())
		case strings.Contains(style, "title") || strings.Contains(style, "标题"):
			idx.AssignTitle(p, FirstWins)
		case strings.Contains(style, "abstract") || strings.Contains(style, "摘要"):
			idx.AssignAbstract(p, LastWins)
		case strings.Contains(style, "keyword") || strings.Contains(style, "关键词"):
			idx.AssignKeywords(p, LastWins)
		default:
			if current != nil {
				current.Body = append(current.Body, p)
			}
		}
	}

	if idx.Title == nil || len(idx.Sections()) == 0 {
		return nil, errNoTitle
	}
	return idx, nil
}

// isHeading1Style reports whether a lowercased style name is a level-1
// heading style, in English or Chinese Word naming.
func isHeading1Style(style string) bool {
	return strings.Contains(style, "heading 1") ||
		strings.Contains(style, "heading1") ||
		strings.Contains(style, "标题 1") ||
		strings.Contains(style, "标题1")
}
