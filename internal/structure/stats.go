package structure

import "sync"

// StageID identifies one tier of the classification cascade.
type StageID int

const (
	StageStyle StageID = iota
	StageHeuristic
	StageModel
	stageCount
)

func (s StageID) String() string {
	switch s {
	case StageStyle:
		return "style"
	case StageHeuristic:
		return "heuristic"
	case StageModel:
		return "model"
	}
	return "unknown"
}

// StageStats counts cascade stage entries and successes. It backs both
// the stats endpoint and the tests that assert later stages are skipped
// when an earlier one succeeds.
type StageStats struct {
	mu        sync.Mutex
	entered   [stageCount]int64
	succeeded [stageCount]int64
}

// NewStageStats returns zeroed counters.
func NewStageStats() *StageStats {
	return &StageStats{}
}

func (s *StageStats) enter(id StageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entered[id]++
}

func (s *StageStats) succeed(id StageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.succeeded[id]++
}

// StageSnapshot is a JSON-safe copy of one stage's counters.
type StageSnapshot struct {
	Stage     string `json:"stage"`
	Entered   int64  `json:"entered"`
	Succeeded int64  `json:"succeeded"`
}

// Snapshot returns per-stage counters in cascade order.
func (s *StageStats) Snapshot() []StageSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StageSnapshot, 0, stageCount)
	for id := StageID(0); id < stageCount; id++ {
		out = append(out, StageSnapshot{
			Stage:     id.String(),
			Entered:   s.entered[id],
			Succeeded: s.succeeded[id],
		})
	}
	return out
}

// Entered returns how many times the given stage was attempted.
func (s *StageStats) Entered(id StageID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered[id]
}

// Succeeded returns how many times the given stage satisfied its success
// predicate.
func (s *StageStats) Succeeded(id StageID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.succeeded[id]
}
