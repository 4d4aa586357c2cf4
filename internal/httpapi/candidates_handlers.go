package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/store"
	"jobmatch-engine/internal/tier"
)

type CandidatesHandler struct {
	DB *sql.DB
}

func (h CandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	cands, err := store.ListActiveCandidates(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if cands == nil {
		cands = []domain.Candidate{}
	}
	writeJSON(w, map[string]any{"candidates": cands, "count": len(cands)})
}

func (h CandidatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(c.FullName) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_name", "full_name is required")
		return
	}
	c.IsActive = true
	id, err := store.InsertCandidate(r.Context(), h.DB, c)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	c.ID = id
	writeJSON(w, c)
}

// tieredMatch decorates a stored match with its tier and the apply gate so
// the UI never re-derives thresholds.
type tieredMatch struct {
	store.MatchRow
	Tier     string `json:"tier"`
	CanApply bool   `json:"canApply"`
}

// Matches serves /candidates/{id}/matches: stored matches, best first, each
// annotated with tier and apply eligibility.
func (h CandidatesHandler) Matches(w http.ResponseWriter, r *http.Request) {
	// path: /candidates/{id}/matches
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "matches" {
		WriteError(w, r, http.StatusNotFound, "not_found", "not found")
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "candidate id must be a positive integer")
		return
	}

	rows, err := store.ListMatchesForCandidate(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	out := make([]tieredMatch, 0, len(rows))
	for _, m := range rows {
		out = append(out, tieredMatch{
			MatchRow: m,
			Tier:     tier.Tier(m.FitScore),
			CanApply: tier.CanApply(m.FitScore),
		})
	}
	writeJSON(w, map[string]any{"matches": out, "count": len(out)})
}
