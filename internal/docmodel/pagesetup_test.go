package docmodel

import (
	"strings"
	"testing"
)

const sectPrXML = `<w:body><w:p/><w:sectPr>` +
	`<w:pgSz w:w="11906" w:h="16838"/>` +
	`<w:pgMar w:top="1440" w:right="1800" w:bottom="1440" w:left="1800" w:header="851" w:footer="992" w:gutter="0"/>` +
	`</w:sectPr></w:body>`

func TestParseMarginsXML(t *testing.T) {
	m, ok := parseMarginsXML(sectPrXML)
	if !ok {
		t.Fatal("expected margins to be found")
	}
	if m.Top != 72 || m.Bottom != 72 {
		t.Errorf("top/bottom = %v/%v, want 72/72", m.Top, m.Bottom)
	}
	if m.Left != 90 || m.Right != 90 {
		t.Errorf("left/right = %v/%v, want 90/90", m.Left, m.Right)
	}
}

func TestParseMarginsXML_NoSectionProperties(t *testing.T) {
	if _, ok := parseMarginsXML("<w:body><w:p/></w:body>"); ok {
		t.Error("document without w:pgMar must report no margins")
	}
}

func TestSetMarginsXML(t *testing.T) {
	out := setMarginsXML(sectPrXML, PageMargins{Top: 100, Bottom: 100, Left: 72, Right: 72})
	if !strings.Contains(out, `w:top="2000"`) || !strings.Contains(out, `w:bottom="2000"`) {
		t.Errorf("top/bottom not rewritten: %s", out)
	}
	if !strings.Contains(out, `w:left="1440"`) || !strings.Contains(out, `w:right="1440"`) {
		t.Errorf("left/right not rewritten: %s", out)
	}
	// Untouched attributes survive.
	if !strings.Contains(out, `w:header="851"`) {
		t.Errorf("header attribute lost: %s", out)
	}

	m, ok := parseMarginsXML(out)
	if !ok || m.Top != 100 || m.Left != 72 {
		t.Errorf("round trip failed: %+v, ok=%t", m, ok)
	}
}

func TestSetMarginsXML_LeavesDocumentsWithoutSectPrAlone(t *testing.T) {
	in := "<w:body><w:p/></w:body>"
	if out := setMarginsXML(in, PageMargins{Top: 72}); out != in {
		t.Errorf("content without w:pgMar must be unchanged, got %s", out)
	}
}
