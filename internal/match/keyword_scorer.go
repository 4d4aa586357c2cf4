package match

import (
	"context"
	"strings"
	"unicode"

	"jobmatch-engine/internal/domain"
)

// stopWords filters common English words that add noise to keyword overlap.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "good": true,
	"able": true, "get": true, "set": true, "such": true,
}

// KeywordScorer is the default Scorer: keyword overlap between the
// candidate's skills/resume and the posting's title/description, scaled to
// 0..100. It is deliberately simple; a smarter scorer plugs in behind the
// same interface.
type KeywordScorer struct{}

func (KeywordScorer) Score(_ context.Context, c domain.Candidate, p domain.JobPosting) (int, error) {
	want := keywords(strings.Join(c.Skills, " ") + " " + c.ResumeText)
	jd := ""
	if p.JDClean != nil {
		jd = *p.JDClean
	}
	have := keywords(p.Title + " " + jd)
	if len(want) == 0 || len(have) == 0 {
		return 0, nil
	}

	hits := 0
	for w := range want {
		if have[w] {
			hits++
		}
	}
	score := hits * 100 / len(want)
	if score > 100 {
		score = 100
	}
	return score, nil
}

// keywords tokenizes text into lowercase terms of 3+ runes, skipping stop
// words. + # . count as word characters so "c++" and "node.js" survive
// tokenization.
func keywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}
