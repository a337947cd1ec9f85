package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	gemini := s.orchestrator.Gemini()
	if gemini == nil || gemini.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":       gemini.Model(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       gemini.Stats.Snapshot(),
	})
}
