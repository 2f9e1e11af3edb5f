package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the local HTTP API.
	APIKey string

	// Model-assisted classification.
	AIEnabled     bool
	OracleModel   string
	OracleBaseURL string

	// Formatting defaults.
	TemplatePath string

	// Preview rendering.
	ConverterBinary string
	PreviewDir      string

	// Upload limits.
	MaxUploadBytes int64

	// Job state.
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("PAPERFMT_API_KEY"),

		AIEnabled:     envBool("PAPERFMT_AI_ENABLED", false),
		OracleModel:   envOr("PAPERFMT_ORACLE_MODEL", "gpt-4o-mini"),
		OracleBaseURL: os.Getenv("PAPERFMT_ORACLE_BASE_URL"),

		TemplatePath: os.Getenv("PAPERFMT_TEMPLATE"),

		ConverterBinary: envOr("PAPERFMT_CONVERTER", "soffice"),
		PreviewDir:      envOr("PAPERFMT_PREVIEW_DIR", os.TempDir()),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks what the HTTP server needs up front. The oracle
// credential is deliberately not checked here: its absence only matters
// when the model-assisted stage is actually constructed.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PAPERFMT_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
