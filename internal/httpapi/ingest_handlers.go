package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"jobmatch-engine/internal/ingest"
)

type IngestHandler struct {
	Orch       *ingest.Orchestrator
	PollStatus *atomic.Value
}

type ingestRequest struct {
	Rows         []map[string]any `json:"rows"`
	Source       string           `json:"source"`
	SkipMatching bool             `json:"skip_matching"`
}

// Run accepts a batch of raw scraped rows and returns the batch outcome.
// The response is final when it leaves here: background matching can neither
// amend it nor fail it.
func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	res, err := h.Orch.Ingest(r.Context(), req.Rows, ingest.Options{
		Source:       req.Source,
		SkipMatching: req.SkipMatching,
	})
	if err != nil {
		if errors.Is(err, ingest.ErrNoRows) {
			WriteError(w, r, http.StatusBadRequest, "no_rows", "rows is required and must be non-empty")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "ingest_failed", err.Error())
		return
	}
	writeJSON(w, res)
}

// Status serves the poller's last-run snapshot.
func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	if v := h.PollStatus.Load(); v != nil {
		writeJSON(w, v)
		return
	}
	writeJSON(w, map[string]any{"running": false})
}
