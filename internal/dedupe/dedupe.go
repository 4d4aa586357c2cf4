package dedupe

import (
	"context"
	"database/sql"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/store"
)

// IsDuplicate asks the store whether an admitted posting already matches the
// given fingerprint, or the job's (source, sourceJobId) pair when an external
// id is present.
func IsDuplicate(ctx context.Context, db *sql.DB, j domain.CanonicalJob, hash string) (bool, error) {
	sourceJobID := ""
	if j.SourceJobID != nil {
		sourceJobID = *j.SourceJobID
	}
	return store.PostingExists(ctx, db, hash, j.Source, sourceJobID)
}

// Admit persists a canonical job on a dedup miss: fingerprint attached,
// active, scraped now. inserted=false means a concurrent batch admitted the
// same content between our check and our insert; the unique index absorbed
// the race and the caller should treat the row as a duplicate.
func Admit(ctx context.Context, db *sql.DB, j domain.CanonicalJob, hash string) (domain.JobPosting, bool, error) {
	now := time.Now().UTC()
	id, inserted, err := store.InsertPostingIgnore(ctx, db, j, hash, now)
	if err != nil || !inserted {
		return domain.JobPosting{}, false, err
	}

	return domain.JobPosting{
		ID:          id,
		Source:      j.Source,
		SourceJobID: j.SourceJobID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		URL:         j.URL,
		JDRaw:       j.JDRaw,
		JDClean:     j.JDClean,
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		JobType:     j.JobType,
		RemoteType:  j.RemoteType,
		DedupeHash:  hash,
		IsActive:    true,
		ScrapedAt:   now,
	}, true, nil
}
