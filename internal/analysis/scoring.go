package analysis

// Score weights. Longevity dominates: an ad that keeps running has kept
// earning its budget.
const (
	scoreUnknownDate   = 30
	originalBonus      = 20
	perVariantBonus    = 15
	durationTier90Days = 100
	durationTier60Days = 80
	durationTier30Days = 60
	durationTier14Days = 40
	durationTierFloor  = 20
)

// scoreScript computes the winner score for one script. durationDays below
// zero means the start date is unknown.
func scoreScript(durationDays int, isOriginal bool, variantCount int) int {
	var score int
	switch {
	case durationDays < 0:
		score = scoreUnknownDate
	case durationDays >= 90:
		score = durationTier90Days
	case durationDays >= 60:
		score = durationTier60Days
	case durationDays >= 30:
		score = durationTier30Days
	case durationDays >= 14:
		score = durationTier14Days
	default:
		score = durationTierFloor
	}
	if isOriginal {
		score += originalBonus
	}
	score += variantCount * perVariantBonus
	return score
}
