package match

import (
	"context"
	"strings"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/domain"
)

// RuleScorer layers config-driven boosts and penalties on top of the keyword
// overlap baseline. Each rule whose needles appear in the posting text adds
// its weight once; penalty weights are negative in config. The result is
// clamped to [0,100] so downstream tiering never sees an out-of-range score.
type RuleScorer struct {
	Boosts    []config.Rule
	Penalties []config.Penalty
}

func (s RuleScorer) Score(ctx context.Context, c domain.Candidate, p domain.JobPosting) (int, error) {
	base, err := KeywordScorer{}.Score(ctx, c, p)
	if err != nil {
		return 0, err
	}

	jd := ""
	if p.JDClean != nil {
		jd = *p.JDClean
	}
	text := strings.ToLower(p.Title + " " + jd)

	score := base
	for _, r := range s.Boosts {
		if anyNeedle(text, r.Any) {
			score += r.Weight
		}
	}
	for _, pen := range s.Penalties {
		if anyNeedle(text, pen.Any) {
			score += pen.Weight
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

func anyNeedle(text string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
