package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db.Pool
}

func seedPosting(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	jd := "description for " + title
	id, inserted, err := store.InsertPostingIgnore(context.Background(), db, domain.CanonicalJob{
		Source:  "test",
		Title:   title,
		Company: "Acme",
		JDClean: &jd,
	}, "hash-"+title, time.Now())
	if err != nil || !inserted {
		t.Fatalf("seed posting %q: inserted=%v err=%v", title, inserted, err)
	}
	return id
}

func seedCandidate(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	id, err := store.InsertCandidate(context.Background(), db, domain.Candidate{
		FullName: name,
		Skills:   []string{"golang"},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed candidate %q: %v", name, err)
	}
	return id
}

func fixedScorer(score int) Scorer {
	return ScorerFunc(func(context.Context, domain.Candidate, domain.JobPosting) (int, error) {
		return score, nil
	})
}

func TestRunPersistsOnlyAtOrAboveMinStored(t *testing.T) {
	db := testDB(t)
	jobID := seedPosting(t, db, "engineer")
	candID := seedCandidate(t, db, "Ada")

	e := &Engine{DB: db, Scorer: fixedScorer(49)}
	e.Run(context.Background(), nil, nil)

	matches, err := store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("score 49 must never be persisted, got %d rows", len(matches))
	}

	e.Scorer = fixedScorer(50)
	e.Run(context.Background(), nil, nil)

	matches, err = store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("score 50 must be persisted, got %d rows", len(matches))
	}
	if matches[0].JobID != jobID || matches[0].FitScore != 50 {
		t.Errorf("stored match = job %d score %d, want job %d score 50",
			matches[0].JobID, matches[0].FitScore, jobID)
	}
}

func TestRunRescoreUpsertsInsteadOfDuplicating(t *testing.T) {
	db := testDB(t)
	seedPosting(t, db, "engineer")
	candID := seedCandidate(t, db, "Ada")

	e := &Engine{DB: db, Scorer: fixedScorer(60)}
	e.Run(context.Background(), nil, nil)
	e.Scorer = fixedScorer(90)
	e.Run(context.Background(), nil, nil)

	matches, err := store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("rescore must upsert, got %d rows", len(matches))
	}
	if matches[0].FitScore != 90 {
		t.Errorf("fit score = %d, want 90 after rescore", matches[0].FitScore)
	}
}

func TestRunIsolatesPerPairFailures(t *testing.T) {
	db := testDB(t)
	badJob := seedPosting(t, db, "cursed")
	goodJob := seedPosting(t, db, "engineer")
	candID := seedCandidate(t, db, "Ada")

	scorer := ScorerFunc(func(_ context.Context, _ domain.Candidate, p domain.JobPosting) (int, error) {
		if p.ID == badJob {
			return 0, errors.New("scorer blew up")
		}
		return 80, nil
	})

	var progress []string
	e := &Engine{DB: db, Scorer: scorer}
	e.Run(context.Background(), nil, func(format string, args ...any) {
		progress = append(progress, fmt.Sprintf(format, args...))
	})

	matches, err := store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].JobID != goodJob {
		t.Fatalf("the surviving pair should still be scored, got %+v", matches)
	}
	if len(progress) == 0 {
		t.Error("pair failure should be reported via progress")
	}
}

func TestRunAbortsWhenPersistFails(t *testing.T) {
	db := testDB(t)
	seedPosting(t, db, "engineer")
	seedPosting(t, db, "analyst")
	candID := seedCandidate(t, db, "Ada")

	// Every match write fails at the storage layer.
	if _, err := db.Exec(`
CREATE TRIGGER matches_unwritable BEFORE INSERT ON candidate_job_matches
BEGIN SELECT RAISE(ABORT, 'storage failure'); END;`); err != nil {
		t.Fatal(err)
	}

	var progress []string
	e := &Engine{DB: db, Scorer: fixedScorer(80)}
	e.Run(context.Background(), nil, func(format string, args ...any) {
		progress = append(progress, fmt.Sprintf(format, args...))
	})

	matches, err := store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("no match should be stored, got %+v", matches)
	}

	aborted, completed := false, false
	for _, line := range progress {
		if strings.Contains(line, "aborting run") {
			aborted = true
		}
		if strings.Contains(line, "done stored=") {
			completed = true
		}
	}
	if !aborted {
		t.Error("persist failure must be reported via progress and abort the run")
	}
	if completed {
		t.Error("an aborted run must not report completion")
	}
}

func TestRunScopedToJobIDs(t *testing.T) {
	db := testDB(t)
	inScope := seedPosting(t, db, "in-scope")
	seedPosting(t, db, "out-of-scope")
	candID := seedCandidate(t, db, "Ada")

	e := &Engine{DB: db, Scorer: fixedScorer(70)}
	e.Run(context.Background(), []int64{inScope}, nil)

	matches, err := store.ListMatchesForCandidate(context.Background(), db, candID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].JobID != inScope {
		t.Fatalf("run must score only the scoped postings, got %+v", matches)
	}
}
