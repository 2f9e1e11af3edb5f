package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperforge/paperfmt/internal/api"
	"github.com/paperforge/paperfmt/internal/config"
	"github.com/paperforge/paperfmt/internal/jobs"
	"github.com/paperforge/paperfmt/internal/oracle"
	"github.com/paperforge/paperfmt/internal/preview"
	"github.com/paperforge/paperfmt/internal/structure"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The oracle client only exists when model assistance is enabled;
	// a missing credential is a startup failure in that case only.
	var oc *oracle.Client
	if cfg.AIEnabled {
		var err error
		oc, err = oracle.NewClientFromEnv(cfg.OracleModel, cfg.OracleBaseURL)
		if err != nil {
			log.Error("model assistance enabled but unusable", "error", err)
			os.Exit(1)
		}
	}

	classifier := newClassifier(oc, log)
	conv := preview.NewConverter(cfg.ConverterBinary)

	runner := jobs.NewRunner(classifier, log, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL)
	runner.Start(ctx)

	srv := api.NewServer(runner, classifier, oc, conv, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		runner.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if oc != nil {
			oc.Close()
		}
	}()

	log.Info("starting paperfmt", "port", cfg.Port, "ai_enabled", cfg.AIEnabled)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newClassifier wires the cascade, leaving the model stage out when no
// oracle client exists.
func newClassifier(oc *oracle.Client, log *slog.Logger) *structure.Classifier {
	if oc == nil {
		return structure.NewClassifier(nil, log)
	}
	return structure.NewClassifier(oc, log)
}
