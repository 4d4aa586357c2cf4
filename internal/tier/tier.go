// Package tier gates what a candidate may do with a fit score. The three
// thresholds are part of the system's observable contract: badges, apply
// buttons and eligibility checks elsewhere must use exactly these values.
package tier

const (
	// ScoreApplyOK and above: apply freely.
	ScoreApplyOK = 82
	// ScoreApplyCaution and above: apply allowed but flagged.
	ScoreApplyCaution = 75
	// ScoreMinStored and above: match row is persisted at all.
	// Scores in [ScoreMinStored, ScoreApplyCaution) are visible as weak
	// matches but do not permit applying.
	ScoreMinStored = 50
)

const (
	OK      = "ok"
	Caution = "caution"
	Blocked = "blocked"
)

func Tier(score int) string {
	switch {
	case score >= ScoreApplyOK:
		return OK
	case score >= ScoreApplyCaution:
		return Caution
	default:
		return Blocked
	}
}

func CanApply(score int) bool {
	return score >= ScoreApplyCaution
}
