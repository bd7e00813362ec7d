package engine

import "sort"

// TriageOptions configures result selection policy for one request.
type TriageOptions struct {
	// IncludeNoMatch controls whether No Match positions are returned as an
	// informational set when no better bucket exists.
	IncludeNoMatch bool
	// PreviousFallbackIDs are position ids from a prior run's fallback set,
	// used to report promotion after a retry.
	PreviousFallbackIDs map[int64]bool
}

// TriageResult is the selected recommendation set for one scoring run.
type TriageResult struct {
	Positions []PositionScore
	// FallbackTriggered is true when the returned set is the fallback bucket.
	FallbackTriggered bool
	// FallbackPossible is true when at least one position classified into the
	// Fallback tier, whether or not that bucket was selected.
	FallbackPossible bool
	// WasPromotedFromFallback is true when a position from
	// PreviousFallbackIDs now classifies above the Fallback tier.
	WasPromotedFromFallback bool
}

// Triage partitions classified scores into priority buckets and selects the
// recommendation set. Precedence is fixed: a perfect match wins alone, then
// the full strong set, then the fallback set, then (policy permitting) the
// no-match set.
func Triage(scores []PositionScore, opts TriageOptions) TriageResult {
	var perfect, strong, fallback, noMatch []PositionScore
	for _, s := range scores {
		switch s.Fit {
		case FitPerfect:
			perfect = append(perfect, s)
		case FitVeryStrong, FitStrong, FitPartial:
			strong = append(strong, s)
		case FitFallback:
			fallback = append(fallback, s)
		default:
			noMatch = append(noMatch, s)
		}
	}

	result := TriageResult{
		FallbackPossible:        len(fallback) > 0,
		WasPromotedFromFallback: anyPromoted(scores, opts.PreviousFallbackIDs),
	}

	switch {
	case len(perfect) > 0:
		sortByScore(perfect)
		result.Positions = perfect[:1]
	case len(strong) > 0:
		sortByScore(strong)
		result.Positions = strong
	case len(fallback) > 0:
		sortByScore(fallback)
		result.Positions = fallback
		result.FallbackTriggered = true
	case len(noMatch) > 0 && opts.IncludeNoMatch:
		sortByScore(noMatch)
		result.Positions = noMatch
	default:
		result.Positions = []PositionScore{}
	}

	return result
}

// sortByScore orders by descending overall match percentage with ascending
// position id as the deterministic tie-break.
func sortByScore(scores []PositionScore) {
	sort.Slice(scores, func(i, j int) bool {
		pi, pj := scores[i].OverallPercentage(), scores[j].OverallPercentage()
		if pi != pj {
			return pi > pj
		}
		return scores[i].PositionID < scores[j].PositionID
	})
}

func anyPromoted(scores []PositionScore, previous map[int64]bool) bool {
	if len(previous) == 0 {
		return false
	}
	for _, s := range scores {
		if previous[s.PositionID] && s.Fit.AtLeast(FitPartial) {
			return true
		}
	}
	return false
}
