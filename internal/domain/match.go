package domain

import "time"

// CandidateJobMatch is a scored candidate/job pairing. Rows are keyed
// (candidate_id, job_id) and upserted, so a rescore replaces the old score.
type CandidateJobMatch struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidateId"`
	JobID       int64     `json:"jobId"`
	FitScore    int       `json:"fitScore"`
	MatchedAt   time.Time `json:"matchedAt"`
}

const (
	MatchingStarted = "started"
	MatchingSkipped = "skipped"
)

const (
	SkipReasonNoNewJobs = "no new jobs inserted"
	SkipReasonDisabled  = "matching disabled by caller"
)

// MatchingStatus tells the ingestion caller whether background scoring was
// started, and if not, why.
type MatchingStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// BatchResult is the transient outcome of one ingestion batch. It is returned
// to the caller and never persisted.
type BatchResult struct {
	BatchID    string         `json:"batchId"`
	Inserted   int            `json:"inserted"`
	Duplicates int            `json:"duplicates"`
	Skipped    int            `json:"skipped"`
	Total      int            `json:"total"`
	Matching   MatchingStatus `json:"matching"`
}
