package domain

import "time"

// CanonicalJob is the normalized, source-agnostic form of a scraped row.
// It is what the normalizer hands to the dedup engine; nothing in it has
// touched the store yet.
type CanonicalJob struct {
	Source      string
	SourceJobID *string
	Title       string
	Company     string
	Location    *string
	URL         *string
	JDRaw       *string // original description when it arrived as HTML
	JDClean     *string // plain-text description
	SalaryMin   *float64
	SalaryMax   *float64
	JobType     string
	RemoteType  *string
}

// JobPosting is an admitted listing as stored. The core creates postings on
// a dedup miss and never updates or deletes them afterwards; deactivation is
// a retention/admin concern.
type JobPosting struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	SourceJobID *string   `json:"sourceJobId,omitempty"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    *string   `json:"location,omitempty"`
	URL         *string   `json:"url,omitempty"`
	JDRaw       *string   `json:"-"`
	JDClean     *string   `json:"jdClean,omitempty"`
	SalaryMin   *float64  `json:"salaryMin,omitempty"`
	SalaryMax   *float64  `json:"salaryMax,omitempty"`
	JobType     string    `json:"jobType"`
	RemoteType  *string   `json:"remoteType,omitempty"`
	DedupeHash  string    `json:"-"`
	IsActive    bool      `json:"isActive"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}
