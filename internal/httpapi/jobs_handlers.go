package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/store"
)

type JobsHandler struct {
	DB *sql.DB
}

// List serves active postings, newest first. ?window=24h|7d|all, ?limit=N.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	jobs, err := store.ListPostings(r.Context(), h.DB, store.ListPostingsOpts{
		Window: q.Get("window"),
		Limit:  limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	writeJSON(w, map[string]any{"jobs": jobs, "count": len(jobs)})
}
