package match

import (
	"context"
	"testing"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/domain"
)

func TestRuleScorerBoostsAndPenalties(t *testing.T) {
	jd := "We build backend services in golang and kubernetes, TS/SCI clearance required"
	posting := domain.JobPosting{Title: "Backend Engineer", JDClean: &jd}
	cand := domain.Candidate{Skills: []string{"golang", "kubernetes"}}

	base, err := KeywordScorer{}.Score(context.Background(), cand, posting)
	if err != nil {
		t.Fatal(err)
	}

	s := RuleScorer{
		Boosts: []config.Rule{
			{Tag: "golang", Weight: 10, Any: []string{"golang"}},
			{Tag: "rust", Weight: 10, Any: []string{"rust"}},
		},
		Penalties: []config.Penalty{
			{Reason: "clearance", Weight: -30, Any: []string{"ts/sci", "security clearance"}},
		},
	}
	got, err := s.Score(context.Background(), cand, posting)
	if err != nil {
		t.Fatal(err)
	}

	want := base + 10 - 30
	if want < 0 {
		want = 0
	}
	if got != want {
		t.Errorf("score = %d, want base(%d) + golang boost - clearance penalty = %d", got, base, want)
	}
}

func TestRuleScorerClampsToRange(t *testing.T) {
	jd := "golang everywhere"
	posting := domain.JobPosting{Title: "Engineer", JDClean: &jd}
	cand := domain.Candidate{Skills: []string{"golang"}}

	high := RuleScorer{Boosts: []config.Rule{{Weight: 500, Any: []string{"golang"}}}}
	low := RuleScorer{Penalties: []config.Penalty{{Weight: -500, Any: []string{"golang"}}}}

	if got, _ := high.Score(context.Background(), cand, posting); got != 100 {
		t.Errorf("boosted score should clamp to 100, got %d", got)
	}
	if got, _ := low.Score(context.Background(), cand, posting); got != 0 {
		t.Errorf("penalized score should clamp to 0, got %d", got)
	}
}
