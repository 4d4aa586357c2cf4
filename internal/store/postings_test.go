package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"jobmatch-engine/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db.Pool
}

func TestInsertPostingIgnoreSwallowsDuplicateHash(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	job := domain.CanonicalJob{Source: "api", Title: "Engineer", Company: "Acme"}

	id1, inserted, err := InsertPostingIgnore(ctx, db, job, "hash-1", time.Now())
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}
	if id1 == 0 {
		t.Fatal("first insert should return an id")
	}

	// Same fingerprint, different metadata: the unique index must swallow it.
	job.Company = "Acme Inc"
	_, inserted, err = InsertPostingIgnore(ctx, db, job, "hash-1", time.Now())
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if inserted {
		t.Error("second insert with the same hash should be ignored")
	}
}

func TestSourceJobIDIndexIgnoresEmptyIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Two postings without an external id must both land: the partial index
	// only guards non-empty source_job_id.
	for i, hash := range []string{"hash-a", "hash-b"} {
		_, inserted, err := InsertPostingIgnore(ctx, db, domain.CanonicalJob{
			Source: "api", Title: "Engineer", Company: "Acme",
		}, hash, time.Now())
		if err != nil || !inserted {
			t.Fatalf("insert %d: inserted=%v err=%v", i, inserted, err)
		}
	}

	// Same (source, source_job_id) pair with different content must not.
	sid := "ext-1"
	_, inserted, err := InsertPostingIgnore(ctx, db, domain.CanonicalJob{
		Source: "board", SourceJobID: &sid, Title: "Engineer", Company: "Acme",
	}, "hash-c", time.Now())
	if err != nil || !inserted {
		t.Fatalf("insert ext-1: inserted=%v err=%v", inserted, err)
	}
	_, inserted, err = InsertPostingIgnore(ctx, db, domain.CanonicalJob{
		Source: "board", SourceJobID: &sid, Title: "Engineer v2", Company: "Acme",
	}, "hash-d", time.Now())
	if err != nil {
		t.Fatalf("insert ext-1 again: %v", err)
	}
	if inserted {
		t.Error("re-insert with same (source, source_job_id) should be ignored")
	}
}

func TestPostingExistsChecksBothIdentities(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	sid := "ext-9"
	if _, _, err := InsertPostingIgnore(ctx, db, domain.CanonicalJob{
		Source: "board", SourceJobID: &sid, Title: "Engineer", Company: "Acme",
	}, "hash-x", time.Now()); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name              string
		hash, source, sid string
		want              bool
	}{
		{"by hash", "hash-x", "other", "", true},
		{"by source pair", "hash-different", "board", "ext-9", true},
		{"same id other source", "hash-different", "other", "ext-9", false},
		{"unknown", "hash-different", "board", "ext-404", false},
	}
	for _, tc := range cases {
		got, err := PostingExists(ctx, db, tc.hash, tc.source, tc.sid)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: exists=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDeactivateStalePostings(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -90)
	if _, _, err := InsertPostingIgnore(ctx, db, domain.CanonicalJob{
		Source: "api", Title: "Old", Company: "Acme",
	}, "hash-old", old); err != nil {
		t.Fatal(err)
	}
	if _, _, err := InsertPostingIgnore(ctx, db, domain.CanonicalJob{
		Source: "api", Title: "Fresh", Company: "Acme",
	}, "hash-fresh", time.Now()); err != nil {
		t.Fatal(err)
	}

	n, err := DeactivateStalePostings(db, 60)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("deactivated = %d, want 1", n)
	}

	active, err := ListActivePostings(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Title != "Fresh" {
		t.Errorf("active postings = %+v, want only Fresh", active)
	}
}
