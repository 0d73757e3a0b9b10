package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleBuildStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "build stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"sessions": s.sessions.Len(),
		"stats":    s.stats.Snapshot(),
	})
}
