package engine

import "sort"

// Selection holds the candidate's chosen attribute ids, one set per category.
// Duplicates in the request collapse here; order is irrelevant.
type Selection struct {
	Subjects           map[int64]bool
	TechnicalSkills    map[int64]bool
	NonTechnicalSkills map[int64]bool
}

// NewSelection builds a Selection from raw id slices.
func NewSelection(subjects, technicalSkills, nonTechnicalSkills []int64) Selection {
	return Selection{
		Subjects:           toSet(subjects),
		TechnicalSkills:    toSet(technicalSkills),
		NonTechnicalSkills: toSet(nonTechnicalSkills),
	}
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id > 0 {
			set[id] = true
		}
	}
	return set
}

// CategoryWeights accumulates matched and total requirement weight for one
// category of one position.
type CategoryWeights struct {
	Matched float64
	Total   float64
}

// PositionScore is the per-request aggregation for one position. It is
// constructed by Score, consumed by the triager and discarded with the
// response.
type PositionScore struct {
	PositionID         int64
	PositionName       string
	MinFitScore        float64
	MatchedWeight      float64
	TotalWeight        float64
	Subjects           CategoryWeights
	TechnicalSkills    CategoryWeights
	NonTechnicalSkills CategoryWeights
	Fit                FitLevel
}

// Score aggregates the candidate's selection against every indexed position
// and classifies each result. Positions with no scorable weight or with no
// matched weight carry no signal and are excluded rather than scored as zero.
// Identical inputs always produce identical ordered output.
func Score(idx *Index, sel Selection) []PositionScore {
	scores := make([]PositionScore, 0, len(idx.Positions))

	for _, pos := range idx.Positions {
		score := PositionScore{
			PositionID:         pos.PositionID,
			PositionName:       pos.Name,
			MinFitScore:        pos.MinFitScore,
			Subjects:           sumCategory(pos.Subjects, sel.Subjects),
			TechnicalSkills:    sumCategory(pos.TechnicalSkills, sel.TechnicalSkills),
			NonTechnicalSkills: sumCategory(pos.NonTechnicalSkills, sel.NonTechnicalSkills),
		}
		score.MatchedWeight = score.Subjects.Matched + score.TechnicalSkills.Matched + score.NonTechnicalSkills.Matched
		score.TotalWeight = score.Subjects.Total + score.TechnicalSkills.Total + score.NonTechnicalSkills.Total

		if score.TotalWeight <= 0 || score.MatchedWeight <= 0 {
			continue
		}

		score.Fit = Classify(score.MatchedWeight, score.MinFitScore)
		scores = append(scores, score)
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].PositionID < scores[j].PositionID
	})
	return scores
}

func sumCategory(attrs []WeightedAttribute, selected map[int64]bool) CategoryWeights {
	var cw CategoryWeights
	for _, attr := range attrs {
		cw.Total += attr.Weight
		if selected[attr.AttributeID] {
			cw.Matched += attr.Weight
		}
	}
	return cw
}
