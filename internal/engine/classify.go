package engine

import "math"

// FitLevel is one of the six ordered fit tiers.
type FitLevel string

const (
	FitNoMatch    FitLevel = "No Match"
	FitFallback   FitLevel = "Fallback"
	FitPartial    FitLevel = "Partial Match"
	FitStrong     FitLevel = "Strong Match"
	FitVeryStrong FitLevel = "Very Strong Match"
	FitPerfect    FitLevel = "Perfect Match"
)

// Tier boundaries on matchedWeight/minFitScore. Each bound is inclusive on
// the lower side, so a ratio of exactly 1.0 is a Partial Match, not Fallback.
const (
	fallbackRatio   = 0.75
	partialRatio    = 1.00
	strongRatio     = 1.25
	veryStrongRatio = 1.75
	perfectRatio    = 1.90
)

// Classify converts a matched weight and a position's minimum fit score into
// a fit tier. The index guarantees minFitScore > 0 for every scored position.
func Classify(matchedWeight, minFitScore float64) FitLevel {
	ratio := matchedWeight / minFitScore
	switch {
	case ratio >= perfectRatio:
		return FitPerfect
	case ratio >= veryStrongRatio:
		return FitVeryStrong
	case ratio >= strongRatio:
		return FitStrong
	case ratio >= partialRatio:
		return FitPartial
	case ratio >= fallbackRatio:
		return FitFallback
	default:
		return FitNoMatch
	}
}

// AtLeast reports whether the tier is f or a higher tier.
func (f FitLevel) AtLeast(other FitLevel) bool {
	return f.rank() >= other.rank()
}

func (f FitLevel) rank() int {
	switch f {
	case FitPerfect:
		return 5
	case FitVeryStrong:
		return 4
	case FitStrong:
		return 3
	case FitPartial:
		return 2
	case FitFallback:
		return 1
	default:
		return 0
	}
}

// Percentage is the display percentage for the category, rounded to two
// decimals, or 0 when the position has no requirements in the category.
func (c CategoryWeights) Percentage() float64 {
	if c.Total <= 0 {
		return 0
	}
	return round2(c.Matched / c.Total * 100)
}

// OverallPercentage is the position's overall display percentage
// (matched weight over total weight, rounded to two decimals).
func (p PositionScore) OverallPercentage() float64 {
	if p.TotalWeight <= 0 {
		return 0
	}
	return round2(p.MatchedWeight / p.TotalWeight * 100)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
