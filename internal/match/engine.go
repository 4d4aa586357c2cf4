// Package match orchestrates candidate-job scoring. The engine runs detached
// from whatever triggered it: nothing is returned, failures surface only
// through the progress sink and the resulting store state.
package match

import (
	"context"
	"database/sql"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/store"
	"jobmatch-engine/internal/tier"
)

// ProgressFunc receives diagnostics from an unattended run; log.Printf
// satisfies it.
type ProgressFunc func(format string, args ...any)

type Engine struct {
	DB     *sql.DB
	Scorer Scorer
}

// Run scores every active candidate against the postings in scope and
// persists pairs that clear tier.ScoreMinStored. jobIDs nil or empty means
// all active postings; ingestion scopes it to the batch's new postings to
// bound cost.
//
// Failure semantics: a failure scoring one pair is logged and the run moves
// on; a failure enumerating candidates or postings, or persisting a match,
// aborts the run. Either way the only visibility is onProgress.
func (e *Engine) Run(ctx context.Context, jobIDs []int64, onProgress ProgressFunc) {
	if onProgress == nil {
		onProgress = func(string, ...any) {}
	}

	postings, err := e.loadPostings(ctx, jobIDs)
	if err != nil {
		onProgress("[match] list postings: %v", err)
		return
	}
	candidates, err := store.ListActiveCandidates(ctx, e.DB)
	if err != nil {
		onProgress("[match] list candidates: %v", err)
		return
	}
	if len(postings) == 0 || len(candidates) == 0 {
		onProgress("[match] nothing to score (postings=%d candidates=%d)", len(postings), len(candidates))
		return
	}

	onProgress("[match] scoring %d candidates x %d postings", len(candidates), len(postings))

	stored, failed := 0, 0
	for _, c := range candidates {
		for _, p := range postings {
			score, err := e.Scorer.Score(ctx, c, p)
			if err != nil {
				failed++
				onProgress("[match] score candidate=%d job=%d: %v", c.ID, p.ID, err)
				continue
			}
			if score < tier.ScoreMinStored {
				continue
			}
			if err := store.UpsertMatch(ctx, e.DB, c.ID, p.ID, score, time.Now()); err != nil {
				onProgress("[match] persist candidate=%d job=%d: %v; aborting run", c.ID, p.ID, err)
				return
			}
			stored++
		}
	}

	onProgress("[match] done stored=%d pair_failures=%d", stored, failed)
}

func (e *Engine) loadPostings(ctx context.Context, jobIDs []int64) ([]domain.JobPosting, error) {
	if len(jobIDs) == 0 {
		return store.ListActivePostings(ctx, e.DB)
	}
	return store.GetPostingsByIDs(ctx, e.DB, jobIDs)
}
