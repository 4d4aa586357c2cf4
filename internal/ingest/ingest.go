// Package ingest drives a batch of raw rows through normalization and dedup,
// then kicks off background matching for whatever was admitted.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"jobmatch-engine/internal/dedupe"
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/match"
	"jobmatch-engine/internal/normalize"
)

// ErrNoRows is returned when a batch arrives empty; nothing has been
// processed when you see it.
var ErrNoRows = errors.New("ingest: batch has no rows")

type Options struct {
	// Source tags admitted postings (scraper origin). Defaults to "api".
	Source string
	// SkipMatching suppresses the post-batch matching trigger.
	SkipMatching bool
}

type Orchestrator struct {
	DB  *sql.DB
	Hub *events.Hub // optional; batch events are dropped when nil

	// RunMatching is the detached matching entrypoint. main wires it to
	// (*match.Engine).Run; tests swap it out to observe the trigger.
	RunMatching func(ctx context.Context, jobIDs []int64, onProgress match.ProgressFunc)
}

// Ingest processes rows sequentially: normalize, dedup-check, admit. A later
// row that duplicates an earlier row of the same batch is counted as a
// duplicate because the earlier one has already been admitted. Per-row
// conditions (rejection, duplicate, persistence failure) never fail the
// batch; store-level query errors do.
//
// When at least one row was inserted and matching is not skipped, a matching
// run over the new posting ids is started in the background. Its outcome
// never amends the returned result.
func (o *Orchestrator) Ingest(ctx context.Context, rows []map[string]any, opts Options) (domain.BatchResult, error) {
	if len(rows) == 0 {
		return domain.BatchResult{}, ErrNoRows
	}
	if opts.Source == "" {
		opts.Source = "api"
	}

	res := domain.BatchResult{
		BatchID: uuid.NewString(),
		Total:   len(rows),
	}

	var insertedIDs []int64
	for i, raw := range rows {
		job, ok := normalize.Normalize(raw)
		if !ok {
			res.Skipped++
			continue
		}
		job.Source = opts.Source

		hash := dedupe.Fingerprint(job)
		dup, err := dedupe.IsDuplicate(ctx, o.DB, job, hash)
		if err != nil {
			return domain.BatchResult{}, fmt.Errorf("ingest: duplicate check: %w", err)
		}
		if dup {
			res.Duplicates++
			continue
		}

		posting, inserted, err := dedupe.Admit(ctx, o.DB, job, hash)
		if err != nil {
			// Persistence failure for one row: log, drop from counts, move on.
			log.Printf("[ingest] insert failed batch=%s row=%d title=%q: %v",
				res.BatchID, i, job.Title, err)
			continue
		}
		if !inserted {
			// Lost the check-then-insert race to a concurrent batch.
			res.Duplicates++
			continue
		}

		res.Inserted++
		insertedIDs = append(insertedIDs, posting.ID)
		o.publish(events.TypePostingCreated, map[string]any{"id": posting.ID, "title": posting.Title})
	}

	switch {
	case opts.SkipMatching:
		res.Matching = domain.MatchingStatus{
			Status: domain.MatchingSkipped,
			Reason: domain.SkipReasonDisabled,
		}
	case res.Inserted == 0:
		res.Matching = domain.MatchingStatus{
			Status: domain.MatchingSkipped,
			Reason: domain.SkipReasonNoNewJobs,
		}
	default:
		res.Matching = domain.MatchingStatus{
			Status:  domain.MatchingStarted,
			Message: fmt.Sprintf("scoring %d new postings in background", res.Inserted),
		}
		o.startMatching(res.BatchID, insertedIDs)
	}

	o.publish(events.TypeBatchFinished, res)
	return res, nil
}

// startMatching launches the detached run on a fresh context: the run
// outlives the ingestion request and has no cancellation handle.
func (o *Orchestrator) startMatching(batchID string, jobIDs []int64) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ingest] matching panic batch=%s: %v", batchID, r)
			}
		}()
		o.RunMatching(context.Background(), jobIDs, log.Printf)
		o.publish(events.TypeMatchingFinished, map[string]any{"batchId": batchID, "jobs": len(jobIDs)})
	}()
}

func (o *Orchestrator) publish(typ string, data any) {
	if o.Hub == nil {
		return
	}
	o.Hub.Publish(events.MakeEvent("", typ, 1, data))
}
