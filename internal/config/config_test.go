package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "PAPERFMT_API_KEY", "PAPERFMT_AI_ENABLED",
		"WORKER_COUNT", "MAX_QUEUE_SIZE", "JOB_TTL", "MAX_UPLOAD_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("port = %q, want 8091", cfg.Port)
	}
	if cfg.AIEnabled {
		t.Error("AI should be disabled by default")
	}
	if cfg.WorkerCount != 2 || cfg.MaxQueueSize != 100 {
		t.Errorf("worker/queue = %d/%d, want 2/100", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("job ttl = %s, want 1h", cfg.JobTTL)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("max upload = %d, want 50MB", cfg.MaxUploadBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PAPERFMT_AI_ENABLED", "true")
	t.Setenv("PAPERFMT_ORACLE_MODEL", "gpt-4o")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9000" || !cfg.AIEnabled || cfg.OracleModel != "gpt-4o" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.WorkerCount != 8 || cfg.JobTTL != 30*time.Minute {
		t.Errorf("worker/ttl overrides not applied: %d/%s", cfg.WorkerCount, cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("JOB_TTL", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg := Load()
	if cfg.WorkerCount != 2 {
		t.Errorf("bad worker count should fall back, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("bad ttl should fall back, got %s", cfg.JobTTL)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("non-positive upload limit should fall back, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("missing api key should fail validation")
	}
	cfg.APIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
