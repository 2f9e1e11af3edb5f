// Package preview converts a .docx file to PDF with an external
// word-processor CLI and inspects the result. Conversion quality is the
// converter's business; this package only drives it and reports what
// came out.
package preview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// DefaultBinary is the LibreOffice CLI used for headless conversion.
const DefaultBinary = "soffice"

// Converter renders .docx files to PDF.
type Converter struct {
	// Binary is the converter executable (soffice or compatible).
	Binary string
}

// NewConverter returns a converter using the given binary, defaulting to
// soffice on PATH.
func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Converter{Binary: binary}
}

// ToPDF converts docxPath to a PDF in outDir and returns the PDF path.
// The conversion is synchronous; cancel it through ctx.
func (c *Converter) ToPDF(ctx context.Context, docxPath, outDir string) (string, error) {
	if outDir == "" {
		outDir = filepath.Dir(docxPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Binary,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("convert to pdf: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("converter produced no output: %w", err)
	}
	return pdfPath, nil
}

// Info is what the preview pane needs to know about a rendered PDF.
type Info struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	SizeBytes int64  `json:"size_bytes"`
}

// Inspect opens a rendered PDF and reports its page count and size.
func Inspect(path string) (Info, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("stat pdf: %w", err)
	}

	return Info{
		Path:      path,
		PageCount: r.NumPage(),
		SizeBytes: st.Size(),
	}, nil
}
