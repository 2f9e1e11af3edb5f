package formatter

import (
	"testing"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/structure"
)

func paperDoc() (*docmodel.Document, *structure.StructureIndex) {
	doc := docmodel.New()
	title := doc.AddParagraph("基于深度学习的文本分类研究")
	abstract := doc.AddParagraph("摘要：本文提出一种文本分类方法。")
	keywords := doc.AddParagraph("关键词：深度学习；文本分类")
	h1 := doc.AddParagraph("1. 引言")
	body := doc.AddParagraph("近年来深度学习发展迅速。")
	refHeading := doc.AddParagraph("参考文献")
	refEntry := doc.AddParagraph("[1] 某某. 某论文[J]. 某期刊, 2020.")

	idx := structure.NewIndex()
	idx.AssignTitle(title, structure.FirstWins)
	idx.AssignAbstract(abstract, structure.LastWins)
	idx.AssignKeywords(keywords, structure.LastWins)
	sec := idx.OpenSection(h1, h1.Text())
	sec.Body = append(sec.Body, body)
	refSec := idx.OpenSection(refHeading, refHeading.Text())
	refSec.Body = append(refSec.Body, refEntry)
	return doc, idx
}

func TestApply_TitleFormatting(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	title := idx.Title
	if title.FontSize() != 16 {
		t.Errorf("title font size = %v, want 16", title.FontSize())
	}
	if !title.IsBold() {
		t.Error("title should be bold")
	}
	if title.Alignment() != docmodel.AlignCenter {
		t.Errorf("title alignment = %s, want center", title.Alignment())
	}
}

func TestApply_BodyIndentUsesRoleFontSize(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// 2 characters at the body's own 12pt font.
	body := idx.Section("1. 引言").Body[0]
	if body.FirstLineIndent() != 24 {
		t.Errorf("body first-line indent = %vpt, want 24", body.FirstLineIndent())
	}
	if body.LineSpacing() != 1.5 {
		t.Errorf("body line spacing = %v, want 1.5", body.LineSpacing())
	}
	if body.Alignment() != docmodel.AlignJustify {
		t.Errorf("body alignment = %s, want justify", body.Alignment())
	}
}

func TestApply_ReferencesGetHangingIndent(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// 2 characters at 10.5pt: first line pulled back 21pt, wrapped lines
	// pushed right 21pt.
	entry := idx.Section("参考文献").Body[0]
	if entry.FirstLineIndent() != -21 {
		t.Errorf("reference first-line indent = %v, want -21", entry.FirstLineIndent())
	}
	if entry.LeftIndent() != 21 {
		t.Errorf("reference left indent = %v, want 21", entry.LeftIndent())
	}
	if entry.FontSize() != 10.5 {
		t.Errorf("reference font size = %v, want 10.5", entry.FontSize())
	}
}

func TestApply_HangingIndentScalesWithFontSize(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	spec.References.FontSize = 12

	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	entry := idx.Section("参考文献").Body[0]
	if entry.FirstLineIndent() != -24 || entry.LeftIndent() != 24 {
		t.Errorf("2 chars at 12pt: got %v/%v, want -24/24",
			entry.FirstLineIndent(), entry.LeftIndent())
	}
}

func TestApply_HeadingRoles(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	h1 := idx.Section("1. 引言").Heading
	if h1.FontSize() != 14 || !h1.IsBold() {
		t.Errorf("heading1 got size %v bold %t, want 14 bold", h1.FontSize(), h1.IsBold())
	}
	if h1.Alignment() != docmodel.AlignLeft {
		t.Errorf("heading alignment = %s, want left", h1.Alignment())
	}
}

func TestApply_SetsPageMargins(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	m, ok := doc.Margins()
	if !ok {
		t.Fatal("Apply should set page margins")
	}
	if m.Top != 72 || m.Bottom != 72 || m.Left != 90 || m.Right != 90 {
		t.Errorf("margins = %+v, want 72/72/90/90", m)
	}
}

func TestApply_Idempotent(t *testing.T) {
	doc, idx := paperDoc()
	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	entry := idx.Section("参考文献").Body[0]
	if entry.FirstLineIndent() != -21 || entry.LeftIndent() != 21 {
		t.Errorf("second apply changed the hanging indent: %v/%v",
			entry.FirstLineIndent(), entry.LeftIndent())
	}
	if idx.Title.FontSize() != 16 {
		t.Errorf("second apply changed the title size: %v", idx.Title.FontSize())
	}
}

func TestApply_NilArguments(t *testing.T) {
	doc, idx := paperDoc()
	if err := Apply(nil, idx, formatspec.Default()); err == nil {
		t.Error("expected error for nil document")
	}
	if err := Apply(doc, idx, nil); err == nil {
		t.Error("expected error for nil spec")
	}
}

func TestApply_CaptionFormatting(t *testing.T) {
	doc := docmodel.New()
	doc.AddParagraph("标题")
	caption := doc.AddParagraph("图1 系统架构")
	prose := doc.AddParagraph("图书管理是常见场景。")

	idx := structure.NewIndex()
	idx.AssignTitle(doc.Paragraphs()[0], structure.FirstWins)

	spec := formatspec.Default()
	if err := Apply(doc, idx, spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if caption.FontSize() != 10.5 {
		t.Errorf("caption font size = %v, want 10.5", caption.FontSize())
	}
	if caption.Alignment() != docmodel.AlignCenter {
		t.Errorf("caption alignment = %s, want center", caption.Alignment())
	}
	if prose.FontSize() != 12 {
		t.Errorf("prose starting with 图 must stay body text, got %v", prose.FontSize())
	}
}

func TestRoleSpec_FallbackAlignments(t *testing.T) {
	spec := formatspec.Default()
	spec.Title.Alignment = ""
	spec.Body.Alignment = ""
	spec.Heading1.Alignment = ""

	if _, align := RoleSpec(spec, structure.RoleTitle); align != docmodel.AlignCenter {
		t.Errorf("title fallback = %s, want center", align)
	}
	if _, align := RoleSpec(spec, structure.RoleBody); align != docmodel.AlignJustify {
		t.Errorf("body fallback = %s, want justify", align)
	}
	if _, align := RoleSpec(spec, structure.RoleHeading1); align != docmodel.AlignLeft {
		t.Errorf("heading1 fallback = %s, want left", align)
	}
}
