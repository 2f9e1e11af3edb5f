package formatspec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseYAML_OverlaysDefaults(t *testing.T) {
	data := []byte(`
title:
  font_size: 18
  font_name: SimHei
  bold: true
  alignment: 居中
body:
  font_size: 12
  font_name: 宋体
  first_line_indent: 2
  line_spacing: 1.5
page_margin:
  top: 80
  bottom: 80
  left: 72
  right: 72
`)
	spec, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if spec.Title.FontSize != 18 || spec.Title.FontName != "SimHei" {
		t.Errorf("title not overridden: %+v", spec.Title)
	}
	if spec.Body.FontName != "宋体" {
		t.Errorf("body font not overridden: %q", spec.Body.FontName)
	}
	if spec.PageMargin.Top != 80 || spec.PageMargin.Left != 72 {
		t.Errorf("page margin not overridden: %+v", spec.PageMargin)
	}
	// Keys the file omits keep their defaults.
	if spec.References.FirstLineIndent != -2 {
		t.Errorf("references should keep default hanging indent, got %+v", spec.References)
	}
	if spec.Tables.FontSize != 10.5 {
		t.Errorf("tables should keep defaults, got %+v", spec.Tables)
	}
}

func TestParseJSON_OverlaysDefaults(t *testing.T) {
	data := []byte(`{"heading1": {"font_size": 15, "font_name": "黑体", "bold": true}}`)
	spec, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if spec.Heading1.FontSize != 15 || spec.Heading1.FontName != "黑体" {
		t.Errorf("heading1 not overridden: %+v", spec.Heading1)
	}
	if spec.Heading2.FontSize != 13 {
		t.Errorf("heading2 should keep defaults, got %+v", spec.Heading2)
	}
}

func TestParseYAML_Malformed(t *testing.T) {
	if _, err := ParseYAML([]byte("title: [not a map")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(yamlPath, []byte("title:\n  font_size: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	if spec.Title.FontSize != 20 {
		t.Errorf("yaml title size = %v, want 20", spec.Title.FontSize)
	}

	jsonPath := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(jsonPath, []byte(`{"title": {"font_size": 22}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err = Load(jsonPath)
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if spec.Title.FontSize != 22 {
		t.Errorf("json title size = %v, want 22", spec.Title.FontSize)
	}

	tomlPath := filepath.Join(dir, "spec.toml")
	if err := os.WriteFile(tomlPath, []byte("title = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tomlPath); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
