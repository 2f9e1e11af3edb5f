package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/preview"
	"github.com/paperforge/paperfmt/internal/report"
	"github.com/paperforge/paperfmt/internal/validator"
)

// structureResponse is the JSON shape of a classification result.
type structureResponse struct {
	Title    string            `json:"title,omitempty"`
	Abstract string            `json:"abstract,omitempty"`
	Keywords string            `json:"keywords,omitempty"`
	Sections []sectionResponse `json:"sections"`
}

type sectionResponse struct {
	Title      string `json:"title"`
	Paragraphs int    `json:"paragraphs"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, err := docmodel.LoadBytes(data)
	if err != nil {
		jsonError(w, "parse docx: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	idx := s.classifier.Classify(r.Context(), doc)

	resp := structureResponse{Sections: []sectionResponse{}}
	if idx.Title != nil {
		resp.Title = idx.Title.Text()
	}
	if idx.Abstract != nil {
		resp.Abstract = idx.Abstract.Text()
	}
	if idx.Keywords != nil {
		resp.Keywords = idx.Keywords.Text()
	}
	for _, sec := range idx.Sections() {
		resp.Sections = append(resp.Sections, sectionResponse{
			Title:      sec.Title,
			Paragraphs: len(sec.Body),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	spec, err := s.readTemplate(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := docmodel.LoadBytes(data)
	if err != nil {
		jsonError(w, "parse docx: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	idx := s.classifier.Classify(r.Context(), doc)
	results := validator.ValidateAll(doc, idx, spec)

	switch r.URL.Query().Get("format") {
	case "html":
		html, err := report.RenderHTML(report.BuildMarkdown(results))
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, html)
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.BuildMarkdown(results))
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	tmpDir, err := os.MkdirTemp(s.cfg.PreviewDir, "paperfmt-preview-")
	if err != nil {
		jsonError(w, "create preview dir: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docxPath := filepath.Join(tmpDir, filename)
	if err := os.WriteFile(docxPath, data, 0o644); err != nil {
		jsonError(w, "write preview file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pdfPath, err := s.converter.ToPDF(r.Context(), docxPath, tmpDir)
	if err != nil {
		jsonError(w, "convert: "+err.Error(), http.StatusBadGateway)
		return
	}

	info, err := preview.Inspect(pdfPath)
	if err != nil {
		jsonError(w, "inspect pdf: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}
