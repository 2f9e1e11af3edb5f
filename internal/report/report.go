// Package report renders validation results as markdown and HTML for
// display outside the service (CLI output, preview pane).
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/paperforge/paperfmt/internal/validator"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// BuildMarkdown renders results as a markdown report grouped by section,
// with a pass/fail summary up top.
func BuildMarkdown(results []validator.Result) string {
	var sb strings.Builder

	passed, failed := 0, 0
	for _, r := range results {
		if r.Valid {
			passed++
		} else {
			failed++
		}
	}

	sb.WriteString("# Format validation report\n\n")
	fmt.Fprintf(&sb, "**%d checks**: %d passed, %d failed\n\n", len(results), passed, failed)

	if len(results) == 0 {
		sb.WriteString("No checks were performed.\n")
		return sb.String()
	}

	var section string
	for _, r := range results {
		if r.Section != section {
			section = r.Section
			fmt.Fprintf(&sb, "## %s\n\n", section)
		}
		mark := "PASS"
		if !r.Valid {
			mark = "FAIL"
		}
		fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", mark, r.Element, r.Message)
	}

	return sb.String()
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML converts a markdown report to an HTML fragment.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
