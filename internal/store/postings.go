package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobmatch-engine/internal/domain"
)

// PostingExists reports whether an admitted posting collides with the given
// fingerprint, or (when sourceJobID is non-empty) with the same
// (source, source_job_id) pair. The dual condition catches identical content
// re-scraped under a new external id and the same external id re-scraped
// with reformatted text.
func PostingExists(ctx context.Context, db *sql.DB, hash, source, sourceJobID string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `
SELECT 1 FROM job_postings
WHERE dedupe_hash = ?
   OR (? != '' AND source = ? AND source_job_id = ?)
LIMIT 1;`,
		hash, sourceJobID, source, sourceJobID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("posting exists: %w", err)
	}
	return true, nil
}

// InsertPostingIgnore admits a canonical job. inserted=false means the unique
// index swallowed the row (a concurrent batch won the race); the caller
// should count it as a duplicate, not a failure.
func InsertPostingIgnore(ctx context.Context, db *sql.DB, j domain.CanonicalJob, hash string, scrapedAt time.Time) (id int64, inserted bool, err error) {
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO job_postings
(source, source_job_id, title, company, location, url, jd_raw, jd_clean,
 salary_min, salary_max, job_type, remote_type, dedupe_hash, is_active, scraped_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,1,?);`,
		j.Source, j.SourceJobID, j.Title, j.Company, j.Location, j.URL,
		j.JDRaw, j.JDClean, j.SalaryMin, j.SalaryMax, j.JobType, j.RemoteType,
		hash, scrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert posting: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, false, nil
	}
	id, _ = res.LastInsertId()
	return id, true, nil
}

// ListActivePostings returns every posting eligible for (re)scoring.
func ListActivePostings(ctx context.Context, db *sql.DB) ([]domain.JobPosting, error) {
	return queryPostings(ctx, db, `WHERE is_active = 1`, nil)
}

// GetPostingsByIDs returns the postings with the given ids, active or not.
func GetPostingsByIDs(ctx context.Context, db *sql.DB, ids []int64) ([]domain.JobPosting, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return queryPostings(ctx, db, fmt.Sprintf(`WHERE id IN (%s)`, marks), args)
}

type ListPostingsOpts struct {
	Window string // 24h | 7d | all
	Limit  int
}

// ListPostings is the read used by the HTTP API: newest first, optional
// recency window.
func ListPostings(ctx context.Context, db *sql.DB, opts ListPostingsOpts) ([]domain.JobPosting, error) {
	where := `WHERE is_active = 1`
	switch opts.Window {
	case "24h":
		where += ` AND scraped_at >= datetime('now','-24 hours')`
	case "all":
	default:
		where += ` AND scraped_at >= datetime('now','-7 days')`
	}
	if opts.Limit <= 0 {
		opts.Limit = 500
	}
	return queryPostings(ctx, db,
		fmt.Sprintf(`%s ORDER BY scraped_at DESC LIMIT %d`, where, opts.Limit), nil)
}

func queryPostings(ctx context.Context, db *sql.DB, tail string, args []any) ([]domain.JobPosting, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, source, source_job_id, title, company, location, url, jd_raw, jd_clean,
       salary_min, salary_max, job_type, remote_type, dedupe_hash, is_active, scraped_at
FROM job_postings `+tail+`;`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobPosting
	for rows.Next() {
		var p domain.JobPosting
		var active int
		var scrapedAt string
		if err := rows.Scan(
			&p.ID, &p.Source, &p.SourceJobID, &p.Title, &p.Company,
			&p.Location, &p.URL, &p.JDRaw, &p.JDClean,
			&p.SalaryMin, &p.SalaryMax, &p.JobType, &p.RemoteType,
			&p.DedupeHash, &active, &scrapedAt,
		); err != nil {
			return nil, err
		}
		p.IsActive = active != 0
		p.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeactivateStalePostings flips postings older than the cutoff to inactive.
// Retention is an admin concern; the ingestion core never touches this.
func DeactivateStalePostings(db *sql.DB, olderThanDays int) (int64, error) {
	res, err := db.Exec(fmt.Sprintf(`
UPDATE job_postings
SET is_active = 0
WHERE is_active = 1
  AND scraped_at < datetime('now', '-%d days');`, olderThanDays))
	if err != nil {
		return 0, fmt.Errorf("deactivate stale postings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
