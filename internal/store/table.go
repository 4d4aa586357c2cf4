package store

import "database/sql"

// Migrate brings the schema to v1. The unique indexes on dedupe_hash and
// (source, source_job_id) close the check-then-insert window: two concurrent
// batches can both see a dedup miss, but only one insert lands.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS job_postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  source_job_id TEXT,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT,
  url TEXT,
  jd_raw TEXT,
  jd_clean TEXT,
  salary_min REAL,
  salary_max REAL,
  job_type TEXT NOT NULL DEFAULT '',
  remote_type TEXT,
  dedupe_hash TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  scraped_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS candidates (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  headline TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '[]',
  resume_text TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS candidate_job_matches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  candidate_id INTEGER NOT NULL,
  job_id INTEGER NOT NULL,
  fit_score INTEGER NOT NULL,
  matched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_dedupe_hash
ON job_postings(dedupe_hash);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_source_job
ON job_postings(source, source_job_id)
WHERE source_job_id IS NOT NULL AND source_job_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_scraped_at
ON job_postings(scraped_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_candidate_job
ON candidate_job_matches(candidate_id, job_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
