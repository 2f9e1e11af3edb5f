package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paperforge/paperfmt/internal/config"
	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/jobs"
	"github.com/paperforge/paperfmt/internal/preview"
	"github.com/paperforge/paperfmt/internal/structure"
	"github.com/paperforge/paperfmt/internal/validator"
)

const testKey = "test-api-key"

func testServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		APIKey:         testKey,
		MaxUploadBytes: 10 << 20,
		PreviewDir:     t.TempDir(),
	}
	classifier := structure.NewClassifier(nil, log)
	runner := jobs.NewRunner(classifier, log, 1, 8, time.Minute)
	runner.Start(context.Background())
	t.Cleanup(runner.Stop)
	return NewServer(runner, classifier, nil, preview.NewConverter(""), log, cfg)
}

func sampleDocx(t *testing.T) []byte {
	t.Helper()
	doc := docmodel.New()
	doc.AddParagraph("基于深度学习的文本分类研究")
	doc.AddParagraph("摘要：本文提出一种方法。")
	doc.AddParagraph("1. 引言")
	doc.AddParagraph("正文内容。")
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("build sample docx: %v", err)
	}
	return data
}

func uploadRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testKey)
	return req
}

func TestHealth_NoAuthRequired(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestAuth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stages", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing auth status = %d, want 401", rec.Code)
	}

	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want 401", rec.Code)
	}

	req.Header.Set("Authorization", "Bearer "+testKey)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key status = %d, want 200", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/classify", "paper.docx", sampleDocx(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("classify status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp structureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "基于深度学习的文本分类研究" {
		t.Errorf("title = %q", resp.Title)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Title != "1. 引言" {
		t.Errorf("sections = %+v", resp.Sections)
	}
}

func TestClassify_RejectsNonDocx(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/classify", "paper.pdf", []byte("x")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassify_CorruptDocx(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/classify", "paper.docx", []byte("not a zip")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestValidate(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/validate", "paper.docx", sampleDocx(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d: %s", rec.Code, rec.Body.String())
	}

	var results []validator.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) == 0 {
		t.Error("expected validation results")
	}
}

func TestFormatJobLifecycle(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/format", "paper.docx", sampleDocx(t)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("format status = %d: %s", rec.Code, rec.Body.String())
	}

	var submitted struct {
		JobID   string `json:"job_id"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if submitted.JobID == "" || submitted.PollURL == "" {
		t.Fatalf("submit response incomplete: %+v", submitted)
	}

	var snap jobs.Snapshot
	deadline := time.After(5 * time.Second)
	for {
		req := httptest.NewRequest(http.MethodGet, submitted.PollURL, nil)
		req.Header.Set("Authorization", "Bearer "+testKey)
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status poll = %d", rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if snap.Status == jobs.StatusCompleted {
			break
		}
		if snap.Status == jobs.StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not complete, status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/format/"+submitted.JobID+"/result", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("result status = %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("result body empty")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/format/"+submitted.JobID+"/report?format=markdown", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("# Format validation report")) {
		t.Errorf("markdown report missing header: %s", rec.Body.String())
	}
}

func TestFormatStatus_UnknownJob(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/format/no-such-job/status", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestOracleStats_Disabled(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/stats/oracle", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Enabled {
		t.Error("oracle should report disabled when no client is configured")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"paper.docx", "paper.docx"},
		{"../../etc/passwd.docx", "passwd.docx"},
		{"dir/paper.docx", "paper.docx"},
		{"", "unnamed"},
	}
	for _, c := range cases {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
