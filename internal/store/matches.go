package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobmatch-engine/internal/domain"
)

// UpsertMatch writes a scored pairing keyed (candidate_id, job_id). A rescore
// replaces the previous score instead of growing duplicate rows.
func UpsertMatch(ctx context.Context, db *sql.DB, candidateID, jobID int64, fitScore int, matchedAt time.Time) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO candidate_job_matches(candidate_id, job_id, fit_score, matched_at)
VALUES(?,?,?,?)
ON CONFLICT(candidate_id, job_id) DO UPDATE SET
  fit_score = excluded.fit_score,
  matched_at = excluded.matched_at;`,
		candidateID, jobID, fitScore, matchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

// MatchRow is a match joined with enough posting context to render a list.
type MatchRow struct {
	domain.CandidateJobMatch
	JobTitle   string  `json:"jobTitle"`
	JobCompany string  `json:"jobCompany"`
	JobURL     *string `json:"jobUrl,omitempty"`
}

// ListMatchesForCandidate returns a candidate's stored matches, best first.
func ListMatchesForCandidate(ctx context.Context, db *sql.DB, candidateID int64) ([]MatchRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT m.id, m.candidate_id, m.job_id, m.fit_score, m.matched_at,
       p.title, p.company, p.url
FROM candidate_job_matches m
JOIN job_postings p ON p.id = m.job_id
WHERE m.candidate_id = ?
ORDER BY m.fit_score DESC, m.matched_at DESC;`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRow
	for rows.Next() {
		var m MatchRow
		var matchedAt string
		if err := rows.Scan(&m.ID, &m.CandidateID, &m.JobID, &m.FitScore, &matchedAt,
			&m.JobTitle, &m.JobCompany, &m.JobURL); err != nil {
			return nil, err
		}
		m.MatchedAt, _ = time.Parse(time.RFC3339, matchedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountMatchesForJob exists for diagnostics and tests.
func CountMatchesForJob(ctx context.Context, db *sql.DB, jobID int64) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidate_job_matches WHERE job_id = ?;`, jobID).Scan(&n)
	return n, err
}
