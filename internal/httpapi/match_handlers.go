package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"jobmatch-engine/internal/match"
)

type MatchHandler struct {
	Engine *match.Engine
}

type matchRunRequest struct {
	JobIDs []int64 `json:"job_ids"`
}

// Run starts a manual matching pass in the background and returns
// immediately. Empty job_ids means all active postings.
func (h MatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req matchRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
			return
		}
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[match] manual run panic: %v", rec)
			}
		}()
		h.Engine.Run(context.Background(), req.JobIDs, log.Printf)
	}()

	writeJSON(w, map[string]any{"ok": true, "status": "started"})
}
