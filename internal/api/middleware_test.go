package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogger_RecordsStatusAndSizes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("rejected"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/format", strings.NewReader("payload"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	if !strings.Contains(line, "status=422") {
		t.Errorf("status missing from log line: %s", line)
	}
	if !strings.Contains(line, "resp_bytes=8") {
		t.Errorf("response size missing from log line: %s", line)
	}
	if !strings.Contains(line, "req_bytes=7") {
		t.Errorf("request size missing from log line: %s", line)
	}
}

func TestAuthMiddleware_LogsRejectedKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := AuthMiddleware("real-key", log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a bad key")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/x", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(buf.String(), "invalid api key") {
		t.Errorf("rejection not logged: %s", buf.String())
	}
}
