package structure

import (
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// RoleResolver is the single role-inference implementation consumed by
// both the formatter and the validator, so the two can never disagree
// about what a paragraph is.
//
// It is a stateful forward scan: once the 参考文献 marker is seen the
// resolver stays in reference mode for every later paragraph, because
// reference entries are assumed contiguous through end of document. Use
// a fresh resolver per document walk.
type RoleResolver struct {
	index        *StructureIndex
	inReferences bool
}

// NewRoleResolver returns a resolver for one walk over the document. The
// index may be nil, in which case only textual rules apply.
func NewRoleResolver(index *StructureIndex) *RoleResolver {
	return &RoleResolver{index: index}
}

// Resolve assigns a role to the paragraph. Call it in document order.
func (r *RoleResolver) Resolve(p *docmodel.Paragraph) Role {
	text := p.Text()

	if r.inReferences {
		return RoleReference
	}
	if strings.Contains(text, "参考文献") {
		r.inReferences = true
		return RoleReference
	}

	if r.index != nil {
		switch p {
		case r.index.Title:
			return RoleTitle
		case r.index.Abstract:
			return RoleAbstract
		case r.index.Keywords:
			return RoleKeywords
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(text, "摘要") || strings.HasPrefix(lower, "abstract") {
		return RoleAbstract
	}
	if strings.Contains(text, "关键词") || strings.HasPrefix(lower, "keywords") {
		return RoleKeywords
	}
	if IsMainHeading(text) && IsSectionHeading(text) {
		return RoleHeading1
	}
	if IsSectionHeading(text) || strings.HasPrefix(p.StyleName(), "Heading") {
		return RoleHeading2
	}
	return RoleBody
}
