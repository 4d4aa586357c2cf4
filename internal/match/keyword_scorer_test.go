package match

import (
	"context"
	"testing"

	"jobmatch-engine/internal/domain"
)

func TestKeywordScorerOverlap(t *testing.T) {
	jd := "We build backend services in golang and kubernetes with postgres"
	posting := domain.JobPosting{Title: "Backend Engineer", JDClean: &jd}

	full := domain.Candidate{Skills: []string{"golang", "kubernetes", "postgres"}}
	none := domain.Candidate{Skills: []string{"photoshop", "illustrator"}}

	s := KeywordScorer{}
	fullScore, err := s.Score(context.Background(), full, posting)
	if err != nil {
		t.Fatal(err)
	}
	noneScore, _ := s.Score(context.Background(), none, posting)

	if fullScore != 100 {
		t.Errorf("all skills present should score 100, got %d", fullScore)
	}
	if noneScore != 0 {
		t.Errorf("no overlap should score 0, got %d", noneScore)
	}
}

func TestKeywordScorerEmptyInputs(t *testing.T) {
	s := KeywordScorer{}
	score, err := s.Score(context.Background(), domain.Candidate{}, domain.JobPosting{Title: "Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 {
		t.Errorf("empty candidate profile should score 0, got %d", score)
	}
}

func TestKeywordsPreserveTechTokens(t *testing.T) {
	kw := keywords("Knows C++ and node.js; ignores the and for")
	for _, want := range []string{"c++", "node.js"} {
		if !kw[want] {
			t.Errorf("keywords should contain %q, got %v", want, kw)
		}
	}
	if kw["the"] || kw["and"] || kw["for"] {
		t.Error("stop words must be filtered")
	}
}
