package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/formatter"
	"github.com/paperforge/paperfmt/internal/oracle"
	"github.com/paperforge/paperfmt/internal/preview"
	"github.com/paperforge/paperfmt/internal/report"
	"github.com/paperforge/paperfmt/internal/structure"
	"github.com/paperforge/paperfmt/internal/validator"
	"github.com/spf13/cobra"
)

// classifierFlags are shared by every command that runs the cascade.
type classifierFlags struct {
	ai      bool
	model   string
	baseURL string
}

func (f *classifierFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.ai, "ai", false, "enable model-assisted classification (reads "+oracle.EnvAPIKey+")")
	cmd.Flags().StringVar(&f.model, "model", "gpt-4o-mini", "oracle model name")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "oracle API base URL")
}

func (f *classifierFlags) classifier(log *slog.Logger) (*structure.Classifier, error) {
	if !f.ai {
		return structure.NewClassifier(nil, log), nil
	}
	oc, err := oracle.NewClientFromEnv(f.model, f.baseURL)
	if err != nil {
		return nil, err
	}
	return structure.NewClassifier(oc, log), nil
}

func loadTemplate(path string) (*formatspec.DocumentFormat, error) {
	if path == "" {
		return formatspec.Default(), nil
	}
	return formatspec.Load(path)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func inspectCmd() *cobra.Command {
	var flags classifierFlags
	cmd := &cobra.Command{
		Use:   "inspect <document.docx>",
		Short: "Classify a document and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := flags.classifier(quietLogger())
			if err != nil {
				return err
			}
			doc, err := docmodel.Load(args[0])
			if err != nil {
				return err
			}

			idx := classifier.Classify(cmd.Context(), doc)
			if idx.Empty() {
				fmt.Println("document is unstructured: no title, sections or abstract found")
				return nil
			}

			if idx.Title != nil {
				fmt.Printf("Title:    %s\n", idx.Title.Text())
			}
			if idx.Abstract != nil {
				fmt.Printf("Abstract: %s\n", truncate(idx.Abstract.Text(), 60))
			}
			if idx.Keywords != nil {
				fmt.Printf("Keywords: %s\n", idx.Keywords.Text())
			}
			for _, sec := range idx.Sections() {
				marker := " "
				if structure.IsMainHeading(sec.Title) {
					marker = "*"
				}
				fmt.Printf("%s %-40s %d paragraphs\n", marker, sec.Title, len(sec.Body))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func applyCmd() *cobra.Command {
	var flags classifierFlags
	var templatePath, output string
	cmd := &cobra.Command{
		Use:   "apply <document.docx>",
		Short: "Apply a format template to a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := flags.classifier(quietLogger())
			if err != nil {
				return err
			}
			spec, err := loadTemplate(templatePath)
			if err != nil {
				return err
			}
			doc, err := docmodel.Load(args[0])
			if err != nil {
				return err
			}

			idx := classifier.Classify(cmd.Context(), doc)
			if err := formatter.Apply(doc, idx, spec); err != nil {
				return err
			}

			if output == "" {
				ext := filepath.Ext(args[0])
				output = strings.TrimSuffix(args[0], ext) + "_formatted" + ext
			}
			if err := doc.Save(output); err != nil {
				return err
			}
			fmt.Printf("formatted document written to %s\n", output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "format template file (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <input>_formatted.docx)")
	return cmd
}

func validateCmd() *cobra.Command {
	var flags classifierFlags
	var templatePath, format string
	cmd := &cobra.Command{
		Use:   "validate <document.docx>",
		Short: "Validate a document's formatting against a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := flags.classifier(quietLogger())
			if err != nil {
				return err
			}
			spec, err := loadTemplate(templatePath)
			if err != nil {
				return err
			}
			doc, err := docmodel.Load(args[0])
			if err != nil {
				return err
			}

			idx := classifier.Classify(cmd.Context(), doc)
			results := validator.ValidateAll(doc, idx, spec)
			md := report.BuildMarkdown(results)

			switch format {
			case "html":
				html, err := report.RenderHTML(md)
				if err != nil {
					return err
				}
				fmt.Println(html)
			default:
				fmt.Println(md)
			}

			for _, r := range results {
				if !r.Valid {
					os.Exit(1)
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "format template file (yaml or json)")
	cmd.Flags().StringVar(&format, "format", "markdown", "report format: markdown or html")
	return cmd
}

func previewCmd() *cobra.Command {
	var converter, outDir string
	cmd := &cobra.Command{
		Use:   "preview <document.docx>",
		Short: "Render a PDF preview of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := preview.NewConverter(converter)
			pdfPath, err := conv.ToPDF(cmd.Context(), args[0], outDir)
			if err != nil {
				return err
			}
			info, err := preview.Inspect(pdfPath)
			if err != nil {
				return err
			}
			fmt.Printf("preview written to %s (%d pages, %d bytes)\n", info.Path, info.PageCount, info.SizeBytes)
			return nil
		},
	}
	cmd.Flags().StringVar(&converter, "converter", "", "converter binary (default soffice)")
	cmd.Flags().StringVar(&outDir, "outdir", "", "output directory (default next to the input)")
	return cmd
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
