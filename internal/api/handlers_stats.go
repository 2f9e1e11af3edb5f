package api

import (
	"encoding/json"
	"net/http"

	"github.com/paperforge/paperfmt/internal/oracle"
)

func (s *Server) handleOracleStats(w http.ResponseWriter, r *http.Request) {
	snapshot := oracle.StatsSnapshot{}
	if s.oracle != nil {
		snapshot = s.oracle.Stats().Snapshot()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"enabled": s.oracle != nil,
		"latency": snapshot,
	})
}

func (s *Server) handleStageStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.classifier.Stats().Snapshot())
}
