package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/jobs"
	"github.com/paperforge/paperfmt/internal/report"
)

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	spec, err := s.readTemplate(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := jobs.NewJob(filename, data, spec)
	if err := s.runner.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/format/%s/status", job.ID),
	})
}

func (s *Server) handleFormatStatus(w http.ResponseWriter, r *http.Request) {
	job := s.runner.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleFormatResult(w http.ResponseWriter, r *http.Request) {
	job := s.runner.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	result := job.Result()
	if result == nil {
		jsonError(w, "job has no result yet", http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.Filename))
	w.Write(result)
}

func (s *Server) handleFormatReport(w http.ResponseWriter, r *http.Request) {
	job := s.runner.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	results := job.Report()
	if results == nil {
		jsonError(w, "job has no report yet", http.StatusConflict)
		return
	}

	switch r.URL.Query().Get("format") {
	case "html":
		md := report.BuildMarkdown(results)
		html, err := report.RenderHTML(md)
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

// readUpload extracts the uploaded .docx from a multipart form, honoring
// the configured size limit. It writes the error response itself.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	return data, filename, true
}

// readTemplate resolves the format specification for a request: an
// uploaded template part wins, then the configured template file, then
// the built-in defaults.
func (s *Server) readTemplate(r *http.Request) (*formatspec.DocumentFormat, error) {
	file, header, err := r.FormFile("template")
	if err == nil {
		defer file.Close()
		return parseTemplateUpload(file, header.Filename)
	}
	if s.cfg.TemplatePath != "" {
		spec, err := formatspec.Load(s.cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("configured template: %w", err)
		}
		return spec, nil
	}
	return formatspec.Default(), nil
}

func parseTemplateUpload(file multipart.File, filename string) (*formatspec.DocumentFormat, error) {
	data, err := io.ReadAll(io.LimitReader(file, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return formatspec.ParseYAML(data)
	case ".json":
		return formatspec.ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported template format: %s", filepath.Ext(filename))
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
