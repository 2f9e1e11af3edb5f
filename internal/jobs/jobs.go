// Package jobs runs format jobs asynchronously for the HTTP API: a
// bounded in-memory queue, a small worker pool and a TTL-evicted job
// registry the GUI polls.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paperforge/paperfmt/internal/formatspec"
	"github.com/paperforge/paperfmt/internal/validator"
)

// Status represents the state of a format job.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusClassifying Status = "classifying"
	StatusFormatting  Status = "formatting"
	StatusValidating  Status = "validating"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Job tracks one document through classify, apply and validate.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`

	Status Status `json:"status"`
	Phase  string `json:"phase"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	spec     *formatspec.DocumentFormat
	result   []byte
	report   []validator.Result
	errors   []string
}

// NewJob creates a queued job holding the uploaded document and the
// format specification to apply.
func NewJob(filename string, data []byte, spec *formatspec.DocumentFormat) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
		spec:      spec,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status Status, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error message.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult stores the formatted document bytes and validation report.
func (j *Job) SetResult(data []byte, report []validator.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.report = report
	j.UpdatedAt = time.Now()
}

// Result returns the formatted document bytes, nil until completion.
func (j *Job) Result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Report returns the validation report, nil until completion.
func (j *Job) Report() []validator.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// Snapshot is a read-only, JSON-safe copy of job state.
type Snapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   Status    `json:"status"`
	Phase    string    `json:"phase"`
	Errors   []string  `json:"errors"`
	Created  time.Time `json:"created_at"`
	Updated  time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.errors
	if errs == nil {
		errs = []string{}
	}
	return Snapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Errors:   errs,
		Created:  j.CreatedAt,
		Updated:  j.UpdatedAt,
	}
}

// Store is a thread-safe in-memory job registry with TTL eviction.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *Store) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *Store) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
