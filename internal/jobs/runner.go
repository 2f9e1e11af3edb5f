package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/formatter"
	"github.com/paperforge/paperfmt/internal/structure"
	"github.com/paperforge/paperfmt/internal/validator"
)

// Runner owns the job queue and worker pool.
type Runner struct {
	store      *Store
	classifier *structure.Classifier
	log        *slog.Logger

	queue   chan *Job
	workers int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner builds a runner; Start must be called before Submit.
func NewRunner(classifier *structure.Classifier, log *slog.Logger, workers, queueSize int, ttl time.Duration) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		store:      NewStore(ttl),
		classifier: classifier,
		log:        log,
		queue:      make(chan *Job, queueSize),
		workers:    workers,
	}
}

// Start launches the worker pool and the TTL sweeper.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-r.queue:
					r.process(ctx, job)
				}
			}
		}()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.store.Cleanup()
			}
		}
	}()
}

// Stop cancels workers and waits for them to drain.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Submit enqueues a job. It fails when the queue is full.
func (r *Runner) Submit(job *Job) error {
	r.store.Put(job)
	select {
	case r.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue full")
		return fmt.Errorf("job queue is full")
	}
}

// GetJob returns a job by ID, or nil.
func (r *Runner) GetJob(id string) *Job {
	return r.store.Get(id)
}

// process runs classify, apply and validate for one job.
func (r *Runner) process(ctx context.Context, job *Job) {
	log := r.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusClassifying, "classifying")
	doc, err := docmodel.LoadBytes(job.fileData)
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(fmt.Sprintf("load: %s", err))
		job.SetStatus(StatusFailed, "classifying")
		return
	}
	idx := r.classifier.Classify(ctx, doc)
	if idx.Empty() {
		log.Warn("document classified as unstructured")
	}

	job.SetStatus(StatusFormatting, "formatting")
	if err := formatter.Apply(doc, idx, job.spec); err != nil {
		log.Error("apply failed", "error", err)
		job.AddError(fmt.Sprintf("apply: %s", err))
		job.SetStatus(StatusFailed, "formatting")
		return
	}

	job.SetStatus(StatusValidating, "validating")
	report := validator.ValidateAll(doc, idx, job.spec)

	data, err := doc.Bytes()
	if err != nil {
		log.Error("serialize failed", "error", err)
		job.AddError(fmt.Sprintf("serialize: %s", err))
		job.SetStatus(StatusFailed, "validating")
		return
	}

	job.SetResult(data, report)
	job.SetStatus(StatusCompleted, "completed")
	log.Info("job completed", "checks", len(report))
}
