package engine

// Gap is the missing-attribute analysis for the candidate's best fallback
// position. Applicable is false when no fallback-tier position exists; that
// is a distinct outcome, not an error.
type Gap struct {
	Applicable   bool
	PositionID   int64
	PositionName string
	// Missing attribute ids per category, deduplicated and sorted ascending.
	// All lists empty means the position's requirements are fully covered but
	// its matched weight still sits below the qualifying ratio.
	Subjects           []int64
	TechnicalSkills    []int64
	NonTechnicalSkills []int64
}

// AnalyzeGap picks the first fallback-tier position after the triager's sort
// (highest overall percentage, lowest position id on ties) and computes the
// required attributes the candidate has not selected, grouped by category.
func AnalyzeGap(idx *Index, scores []PositionScore, sel Selection) Gap {
	var fallback []PositionScore
	for _, s := range scores {
		if s.Fit == FitFallback {
			fallback = append(fallback, s)
		}
	}
	if len(fallback) == 0 {
		return Gap{}
	}
	sortByScore(fallback)

	target := fallback[0]
	pos := idx.Positions[target.PositionID]
	if pos == nil {
		return Gap{}
	}

	return Gap{
		Applicable:         true,
		PositionID:         pos.PositionID,
		PositionName:       pos.Name,
		Subjects:           missingIDs(pos.Subjects, sel.Subjects),
		TechnicalSkills:    missingIDs(pos.TechnicalSkills, sel.TechnicalSkills),
		NonTechnicalSkills: missingIDs(pos.NonTechnicalSkills, sel.NonTechnicalSkills),
	}
}

// MissingAttributeIDs returns every missing id across the three categories,
// for resolving display names through the catalog.
func (g Gap) MissingAttributeIDs() []int64 {
	ids := make([]int64, 0, len(g.Subjects)+len(g.TechnicalSkills)+len(g.NonTechnicalSkills))
	ids = append(ids, g.Subjects...)
	ids = append(ids, g.TechnicalSkills...)
	ids = append(ids, g.NonTechnicalSkills...)
	return ids
}

// missingIDs relies on the index's sorted requirement lists; duplicates in
// the catalog collapse through the seen set.
func missingIDs(attrs []WeightedAttribute, selected map[int64]bool) []int64 {
	seen := make(map[int64]bool, len(attrs))
	var missing []int64
	for _, attr := range attrs {
		if selected[attr.AttributeID] || seen[attr.AttributeID] {
			continue
		}
		seen[attr.AttributeID] = true
		missing = append(missing, attr.AttributeID)
	}
	return missing
}
