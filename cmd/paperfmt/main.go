// Command paperfmt is the command-line surface of the formatter: it
// classifies, formats, validates and previews academic-paper .docx
// files without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "paperfmt",
		Short: "Academic paper formatter for Word documents",
		Long: `paperfmt applies formatting rules (fonts, spacing, indentation,
page setup) to academic-paper .docx files.

Document structure (title, abstract, keywords, sections, references) is
inferred from named styles first, text heuristics second, and optionally
a language-model oracle when both fail.`,
		Version: version,
	}

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(previewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
