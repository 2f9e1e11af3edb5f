package oracle

import "strings"

// Outline is the structure the oracle returns for a document.
type Outline struct {
	Title      string           `json:"title"`
	Abstract   string           `json:"abstract"`
	Keywords   []string         `json:"keywords"`
	Sections   []OutlineSection `json:"sections"`
	References []string         `json:"references"`
}

// OutlineSection is one section in the oracle's outline.
type OutlineSection struct {
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Content string `json:"content"`
}

// Normalize cleans a decoded outline in place: strings are trimmed,
// sections without a title are dropped, and levels outside 1..2 are
// clamped.
func (o *Outline) Normalize() {
	o.Title = strings.TrimSpace(o.Title)
	o.Abstract = strings.TrimSpace(o.Abstract)

	kept := o.Keywords[:0]
	for _, kw := range o.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			kept = append(kept, kw)
		}
	}
	o.Keywords = kept

	secs := o.Sections[:0]
	for _, sec := range o.Sections {
		sec.Title = strings.TrimSpace(sec.Title)
		if sec.Title == "" {
			continue
		}
		if sec.Level < 1 {
			sec.Level = 1
		}
		if sec.Level > 2 {
			sec.Level = 2
		}
		secs = append(secs, sec)
	}
	o.Sections = secs

	refs := o.References[:0]
	for _, ref := range o.References {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	o.References = refs
}

// IsEmpty reports whether the outline carries no usable information.
func (o *Outline) IsEmpty() bool {
	return o.Title == "" && o.Abstract == "" && len(o.Keywords) == 0 &&
		len(o.Sections) == 0 && len(o.References) == 0
}
