package docmodel

import (
	"fmt"
	"regexp"
	"strconv"
)

// Word stores page margins in twips (1/20 pt) on the w:pgMar element of the
// final section properties.

var (
	pgMarRe     = regexp.MustCompile(`<w:pgMar\b[^/>]*/?>`)
	pgMarAttrRe = regexp.MustCompile(`w:(top|bottom|left|right)="(-?\d+)"`)
)

func parseMarginsXML(content string) (PageMargins, bool) {
	el := pgMarRe.FindString(content)
	if el == "" {
		return PageMargins{}, false
	}
	var m PageMargins
	found := false
	for _, attr := range pgMarAttrRe.FindAllStringSubmatch(el, -1) {
		tw, err := strconv.Atoi(attr[2])
		if err != nil {
			continue
		}
		pt := float64(tw) / 20
		switch attr[1] {
		case "top":
			m.Top = pt
		case "bottom":
			m.Bottom = pt
		case "left":
			m.Left = pt
		case "right":
			m.Right = pt
		}
		found = true
	}
	return m, found
}

// setMarginsXML rewrites the top/bottom/left/right attributes of every
// w:pgMar element. Documents without section properties are left alone.
func setMarginsXML(content string, m PageMargins) string {
	return pgMarRe.ReplaceAllStringFunc(content, func(el string) string {
		return pgMarAttrRe.ReplaceAllStringFunc(el, func(attr string) string {
			sub := pgMarAttrRe.FindStringSubmatch(attr)
			var pt float64
			switch sub[1] {
			case "top":
				pt = m.Top
			case "bottom":
				pt = m.Bottom
			case "left":
				pt = m.Left
			case "right":
				pt = m.Right
			}
			return fmt.Sprintf(`w:%s="%d"`, sub[1], int(pt*20))
		})
	})
}
