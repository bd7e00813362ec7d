// Package engine implements the fit-scoring and recommendation engine: it
// aggregates a candidate's selected attributes against each position's
// weighted requirements, classifies the result into fit tiers, triages the
// tiers into a recommendation set and computes the attribute gap for
// near-miss positions. The engine is stateless and performs no I/O; the
// catalog collaborator supplies requirement rows and attribute names.
package engine

import (
	"fmt"
	"sort"

	"github.com/traintrack/traintrack-api/internal/types"
)

// RequirementRow is one catalog row: a position/attribute edge joined with
// the attribute's category and the position's minimum fit score.
type RequirementRow struct {
	PositionID    int64
	PositionName  string
	MinFitScore   float64
	AttributeID   int64
	AttributeName string
	Category      string
	Weight        float64
}

// WeightedAttribute is one scorable requirement of a position.
type WeightedAttribute struct {
	AttributeID int64
	Name        string
	Weight      float64
}

// PositionRequirements groups a position's scorable requirements by category.
type PositionRequirements struct {
	PositionID         int64
	Name               string
	MinFitScore        float64
	Subjects           []WeightedAttribute
	TechnicalSkills    []WeightedAttribute
	NonTechnicalSkills []WeightedAttribute
}

// Index maps position ids to their scorable requirements. It is never
// mutated after construction, so it may be shared across concurrent
// scoring requests.
type Index struct {
	Positions map[int64]*PositionRequirements
}

// BuildIndex builds the requirement index from raw catalog rows.
//
// Rows are dropped silently when they are catalog noise rather than errors:
// Major-category rows, rows with a missing category, rows with non-positive
// weight, and rows for positions with a non-positive minimum fit score
// (placeholder positions). A non-empty category outside the known set is a
// data-quality error and fails the build.
func BuildIndex(rows []RequirementRow) (*Index, error) {
	idx := &Index{Positions: make(map[int64]*PositionRequirements)}

	for _, row := range rows {
		if row.Category == "" {
			continue
		}
		category, err := types.ParseCategory(row.Category)
		if err != nil {
			return nil, fmt.Errorf("requirement for position %d: %w", row.PositionID, err)
		}
		if !category.Scorable() {
			continue
		}
		if row.Weight <= 0 || row.MinFitScore <= 0 {
			continue
		}

		pos, ok := idx.Positions[row.PositionID]
		if !ok {
			pos = &PositionRequirements{
				PositionID:  row.PositionID,
				Name:        row.PositionName,
				MinFitScore: row.MinFitScore,
			}
			idx.Positions[row.PositionID] = pos
		}

		attr := WeightedAttribute{
			AttributeID: row.AttributeID,
			Name:        row.AttributeName,
			Weight:      row.Weight,
		}
		switch category {
		case types.CategorySubject:
			pos.Subjects = append(pos.Subjects, attr)
		case types.CategoryTechnicalSkill:
			pos.TechnicalSkills = append(pos.TechnicalSkills, attr)
		case types.CategoryNonTechnicalSkill:
			pos.NonTechnicalSkills = append(pos.NonTechnicalSkills, attr)
		}
	}

	// Fixed attribute order keeps scoring and gap output deterministic
	// regardless of catalog row order.
	for _, pos := range idx.Positions {
		sortAttributes(pos.Subjects)
		sortAttributes(pos.TechnicalSkills)
		sortAttributes(pos.NonTechnicalSkills)
	}

	return idx, nil
}

func sortAttributes(attrs []WeightedAttribute) {
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].AttributeID < attrs[j].AttributeID
	})
}
