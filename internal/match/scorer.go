package match

import (
	"context"

	"jobmatch-engine/internal/domain"
)

// Scorer is the compatibility-scoring capability the engine orchestrates
// around. Implementations must return a score in [0,100], be deterministic
// for the same inputs, and have no side effects; the engine owns persistence
// and failure isolation.
type Scorer interface {
	Score(ctx context.Context, c domain.Candidate, p domain.JobPosting) (int, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, c domain.Candidate, p domain.JobPosting) (int, error)

func (f ScorerFunc) Score(ctx context.Context, c domain.Candidate, p domain.JobPosting) (int, error) {
	return f(ctx, c, p)
}
