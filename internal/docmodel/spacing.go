package docmodel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Word stores the space after a paragraph as w:after on the w:spacing
// element of the paragraph properties. The structured library does not
// round-trip that attribute, so it is read from and written to the raw
// document.xml, paired with the paragraph handles by position: top-level
// w:p elements appear in the same order as the indexed paragraphs.

var (
	parScanRe    = regexp.MustCompile(`<w:tbl[ >]|</w:tbl>|</w:p>|<w:p(?: [^>]*)?/?>`)
	pPrRe        = regexp.MustCompile(`(?s)<w:pPr(?:/>|>.*?</w:pPr>)`)
	spacingTagRe = regexp.MustCompile(`<w:spacing\b[^>]*>`)
	afterAttrRe  = regexp.MustCompile(`w:after="(-?\d+)"`)
)

// paragraphExtents returns the [start, end) offsets of every top-level
// body paragraph. Paragraphs inside tables or nested in other paragraphs
// (text boxes) are skipped so the result lines up with Document.Paragraphs.
func paragraphExtents(content string) [][2]int {
	var ext [][2]int
	tblDepth, pDepth, start := 0, 0, 0
	for _, loc := range parScanRe.FindAllStringIndex(content, -1) {
		tok := content[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(tok, "<w:tbl"):
			tblDepth++
		case tok == "</w:tbl>":
			tblDepth--
		case tok == "</w:p>":
			if tblDepth > 0 {
				continue
			}
			pDepth--
			if pDepth == 0 {
				ext = append(ext, [2]int{start, loc[1]})
			}
		default:
			if tblDepth > 0 {
				continue
			}
			if strings.HasSuffix(tok, "/>") {
				if pDepth == 0 {
					ext = append(ext, [2]int{loc[0], loc[1]})
				}
				continue
			}
			if pDepth == 0 {
				start = loc[0]
			}
			pDepth++
		}
	}
	return ext
}

// readSpaceAfterXML returns the w:after value in twips for every top-level
// paragraph, or -1 where the paragraph does not declare one.
func readSpaceAfterXML(content string) []int {
	exts := paragraphExtents(content)
	afters := make([]int, len(exts))
	for i, e := range exts {
		afters[i] = -1
		pPr := pPrRe.FindString(content[e[0]:e[1]])
		if pPr == "" {
			continue
		}
		tag := spacingTagRe.FindString(pPr)
		if tag == "" {
			continue
		}
		if m := afterAttrRe.FindStringSubmatch(tag); m != nil {
			if tw, err := strconv.Atoi(m[1]); err == nil {
				afters[i] = tw
			}
		}
	}
	return afters
}

// setSpaceAfterXML writes w:after onto each top-level paragraph whose
// entry in afters is non-negative. afters must line up with the
// paragraphs of content; on a count mismatch the content is returned
// unchanged.
func setSpaceAfterXML(content string, afters []int) string {
	exts := paragraphExtents(content)
	if len(exts) != len(afters) {
		return content
	}
	var sb strings.Builder
	prev := 0
	for i, e := range exts {
		if afters[i] < 0 {
			continue
		}
		sb.WriteString(content[prev:e[0]])
		sb.WriteString(patchParagraphSpacing(content[e[0]:e[1]], afters[i]))
		prev = e[1]
	}
	sb.WriteString(content[prev:])
	return sb.String()
}

// patchParagraphSpacing sets w:after="tw" on a single w:p element,
// creating the w:spacing element and the w:pPr wrapper as needed.
func patchParagraphSpacing(par string, tw int) string {
	attr := fmt.Sprintf(`w:after="%d"`, tw)
	if pPr := pPrRe.FindString(par); pPr != "" {
		var patched string
		if tag := spacingTagRe.FindString(pPr); tag != "" {
			newTag := tag
			if afterAttrRe.MatchString(tag) {
				newTag = afterAttrRe.ReplaceAllLiteralString(tag, attr)
			} else {
				newTag = strings.Replace(tag, "<w:spacing", "<w:spacing "+attr, 1)
			}
			patched = strings.Replace(pPr, tag, newTag, 1)
		} else if strings.HasSuffix(pPr, "/>") {
			patched = fmt.Sprintf(`<w:pPr><w:spacing %s/></w:pPr>`, attr)
		} else {
			patched = strings.Replace(pPr, "</w:pPr>", fmt.Sprintf(`<w:spacing %s/></w:pPr>`, attr), 1)
		}
		return strings.Replace(par, pPr, patched, 1)
	}
	el := fmt.Sprintf(`<w:pPr><w:spacing %s/></w:pPr>`, attr)
	if strings.HasSuffix(par, "/>") {
		return strings.TrimSuffix(par, "/>") + ">" + el + "</w:p>"
	}
	i := strings.Index(par, ">")
	return par[:i+1] + el + par[i+1:]
}
