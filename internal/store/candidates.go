package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"jobmatch-engine/internal/domain"
)

// ListActiveCandidates enumerates candidates eligible for scoring. The core
// reads candidates, never writes them.
func ListActiveCandidates(ctx context.Context, db *sql.DB) ([]domain.Candidate, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, full_name, email, headline, skills, resume_text, is_active
FROM candidates
WHERE is_active = 1;`)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertCandidate exists for seeding and admin plumbing, not for the
// ingestion/matching core.
func InsertCandidate(ctx context.Context, db *sql.DB, c domain.Candidate) (int64, error) {
	skillsB, _ := json.Marshal(c.Skills)
	res, err := db.ExecContext(ctx, `
INSERT INTO candidates(full_name, email, headline, skills, resume_text, is_active)
VALUES(?,?,?,?,?,?);`,
		c.FullName, c.Email, c.Headline, string(skillsB), c.ResumeText, boolToInt(c.IsActive),
	)
	if err != nil {
		return 0, fmt.Errorf("insert candidate: %w", err)
	}
	return res.LastInsertId()
}

func scanCandidate(rows *sql.Rows) (domain.Candidate, error) {
	var c domain.Candidate
	var skillsJSON string
	var active int
	if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Headline, &skillsJSON, &c.ResumeText, &active); err != nil {
		return c, err
	}
	_ = json.Unmarshal([]byte(skillsJSON), &c.Skills)
	c.IsActive = active != 0
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
