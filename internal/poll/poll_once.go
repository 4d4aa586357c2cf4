package poll

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/ingest"
	"jobmatch-engine/internal/source"
)

// RunOnce fetches every enabled board source concurrently and feeds each
// source's rows through one ingestion batch. Fetch failures are best-effort:
// a dead board never cancels its siblings.
func RunOnce(cfg config.Config, orch *ingest.Orchestrator) (inserted int, err error) {
	parent := context.Background()

	limiter := source.NewHostLimiter(1.0, 2)

	var fetchers []source.Fetcher
	if cfg.Sources.Greenhouse.Enabled {
		fetchers = append(fetchers, source.NewGreenhouse(cfg.Sources.Greenhouse.Boards, limiter))
	}
	if cfg.Sources.Lever.Enabled {
		fetchers = append(fetchers, source.NewLever(cfg.Sources.Lever.Boards, limiter))
	}
	if cfg.Sources.SmartRecruiters.Enabled {
		fetchers = append(fetchers, source.NewSmartRecruiters(cfg.Sources.SmartRecruiters.Boards, limiter))
	}
	if cfg.Sources.Workday.Enabled {
		fetchers = append(fetchers, source.NewWorkday(cfg.Sources.Workday.Boards, limiter))
	}
	if len(fetchers) == 0 {
		return 0, nil
	}

	var g errgroup.Group
	results := make(chan source.Result, len(fetchers))

	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(parent, 5*time.Minute)
			defer cancel()

			log.Printf("[%s] fetching...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[source:%s] error: %v", f.Name(), err)
				return nil
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	ingestCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for res := range results {
		log.Printf("[poll] got source=%s rows=%d", res.Source, len(res.Rows))
		if len(res.Rows) == 0 {
			continue
		}
		batch, err := orch.Ingest(ingestCtx, res.Rows, ingest.Options{
			Source:       res.Source,
			SkipMatching: cfg.Ingest.SkipMatching,
		})
		if err != nil {
			if !errors.Is(err, ingest.ErrNoRows) {
				log.Printf("[poll] ingest source=%s: %v", res.Source, err)
			}
			continue
		}
		log.Printf("[poll] source=%s inserted=%d duplicates=%d skipped=%d matching=%s",
			res.Source, batch.Inserted, batch.Duplicates, batch.Skipped, batch.Matching.Status)
		inserted += batch.Inserted
	}

	return inserted, nil
}
