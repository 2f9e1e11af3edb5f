package structure

import (
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
)

// Role is the structural category assigned to a paragraph.
type Role string

const (
	RoleTitle     Role = "title"
	RoleAbstract  Role = "abstract"
	RoleKeywords  Role = "keywords"
	RoleHeading1  Role = "heading1"
	RoleHeading2  Role = "heading2"
	RoleBody      Role = "body"
	RoleReference Role = "references"
)

// AssignPolicy names what happens when a role matches more than once.
// The asymmetry between title (first wins) and abstract/keywords (last
// wins) is inherited behavior; it is kept explicit here rather than left
// to loop order.
type AssignPolicy int

const (
	FirstWins AssignPolicy = iota
	LastWins
)

// Section is one heading plus the body paragraphs that follow it up to
// the next heading.
type Section struct {
	Heading *docmodel.Paragraph
	Title   string
	Body    []*docmodel.Paragraph
}

// StructureIndex is the classifier's output: the role-tagged paragraph
// index for one document. It is built once per classification and never
// updated incrementally.
type StructureIndex struct {
	Title    *docmodel.Paragraph
	Abstract *docmodel.Paragraph
	Keywords *docmodel.Paragraph

	sections []*Section
	byTitle  map[string]int

	// References holds paragraphs the model stage identified as reference
	// entries. The rule stages leave it nil and rely on the 参考文献
	// section instead.
	References []*docmodel.Paragraph
}

// NewIndex returns an empty index.
func NewIndex() *StructureIndex {
	return &StructureIndex{byTitle: make(map[string]int)}
}

// Empty reports whether nothing at all was classified.
func (x *StructureIndex) Empty() bool {
	return x.Title == nil && x.Abstract == nil && x.Keywords == nil &&
		len(x.sections) == 0 && len(x.References) == 0
}

// Sections returns the sections in document order.
func (x *StructureIndex) Sections() []*Section {
	return x.sections
}

// Section returns the section with the given heading text, or nil.
func (x *StructureIndex) Section(title string) *Section {
	if i, ok := x.byTitle[title]; ok {
		return x.sections[i]
	}
	return nil
}

// OpenSection starts a new section keyed by the heading's trimmed text.
// A heading text collision overwrites the earlier section's body while
// keeping its position.
func (x *StructureIndex) OpenSection(heading *docmodel.Paragraph, title string) *Section {
	title = strings.TrimSpace(title)
	if i, ok := x.byTitle[title]; ok {
		sec := x.sections[i]
		sec.Heading = heading
		sec.Body = nil
		return sec
	}
	sec := &Section{Heading: heading, Title: title}
	x.byTitle[title] = len(x.sections)
	x.sections = append(x.sections, sec)
	return sec
}

// AssignTitle sets the title paragraph under the given policy.
func (x *StructureIndex) AssignTitle(p *docmodel.Paragraph, policy AssignPolicy) {
	assign(&x.Title, p, policy)
}

// AssignAbstract sets the abstract paragraph under the given policy.
func (x *StructureIndex) AssignAbstract(p *docmodel.Paragraph, policy AssignPolicy) {
	assign(&x.Abstract, p, policy)
}

// AssignKeywords sets the keywords paragraph under the given policy.
func (x *StructureIndex) AssignKeywords(p *docmodel.Paragraph, policy AssignPolicy) {
	assign(&x.Keywords, p, policy)
}

func assign(slot **docmodel.Paragraph, p *docmodel.Paragraph, policy AssignPolicy) {
	if policy == FirstWins && *slot != nil {
		return
	}
	*slot = p
}

// ReferenceParagraphs returns the reference entries: the model stage's
// explicit list when present, otherwise the body of the 参考文献 (or
// "references") section.
func (x *StructureIndex) ReferenceParagraphs() []*docmodel.Paragraph {
	if len(x.References) > 0 {
		return x.References
	}
	for _, sec := range x.sections {
		if strings.Contains(sec.Title, "参考文献") ||
			strings.Contains(strings.ToLower(sec.Title), "references") {
			return sec.Body
		}
	}
	return nil
}
