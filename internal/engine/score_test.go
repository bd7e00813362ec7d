package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleIndex holds one position: subjects A=10, B=5, technical C=8,
// minimum fit score 15.
func sampleIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := BuildIndex([]RequirementRow{
		{PositionID: 1, PositionName: "Junior Developer", MinFitScore: 15, AttributeID: 100, AttributeName: "A", Category: "Subject", Weight: 10},
		{PositionID: 1, PositionName: "Junior Developer", MinFitScore: 15, AttributeID: 101, AttributeName: "B", Category: "Subject", Weight: 5},
		{PositionID: 1, PositionName: "Junior Developer", MinFitScore: 15, AttributeID: 102, AttributeName: "C", Category: "Technical Skill", Weight: 8},
	})
	require.NoError(t, err)
	return idx
}

func TestScore_PartialMatchBreakdown(t *testing.T) {
	idx := sampleIndex(t)
	sel := NewSelection([]int64{100}, []int64{102}, nil)

	scores := Score(idx, sel)
	require.Len(t, scores, 1)

	s := scores[0]
	assert.Equal(t, 18.0, s.MatchedWeight)
	assert.Equal(t, 23.0, s.TotalWeight)
	assert.Equal(t, FitPartial, s.Fit) // ratio 18/15 = 1.2
	assert.Equal(t, 66.67, s.Subjects.Percentage())
	assert.Equal(t, 100.0, s.TechnicalSkills.Percentage())
	assert.Equal(t, 0.0, s.NonTechnicalSkills.Percentage())
}

func TestScore_MatchedZeroExcluded(t *testing.T) {
	idx := sampleIndex(t)
	sel := NewSelection([]int64{999}, nil, nil)

	scores := Score(idx, sel)
	assert.Empty(t, scores)
}

func TestScore_InvariantMatchedNotAboveTotal(t *testing.T) {
	idx := sampleIndex(t)
	sel := NewSelection([]int64{100, 101}, []int64{102}, []int64{300})

	scores := Score(idx, sel)
	require.Len(t, scores, 1)
	s := scores[0]
	assert.LessOrEqual(t, s.MatchedWeight, s.TotalWeight)
	assert.LessOrEqual(t, s.Subjects.Matched, s.Subjects.Total)
	assert.LessOrEqual(t, s.TechnicalSkills.Matched, s.TechnicalSkills.Total)
	assert.LessOrEqual(t, s.NonTechnicalSkills.Matched, s.NonTechnicalSkills.Total)
}

func TestScore_Idempotent(t *testing.T) {
	idx, err := BuildIndex([]RequirementRow{
		row(1, 10, "Subject", 5, 10),
		row(1, 11, "Technical Skill", 5, 10),
		row(2, 10, "Subject", 7, 5),
		row(3, 11, "Technical Skill", 2, 4),
	})
	require.NoError(t, err)
	sel := NewSelection([]int64{10}, []int64{11}, nil)

	first := Score(idx, sel)
	second := Score(idx, sel)
	assert.Equal(t, first, second)
}

func TestScore_DeterministicOrder(t *testing.T) {
	idx, err := BuildIndex([]RequirementRow{
		row(3, 10, "Subject", 5, 10),
		row(1, 10, "Subject", 5, 10),
		row(2, 10, "Subject", 5, 10),
	})
	require.NoError(t, err)
	sel := NewSelection([]int64{10}, nil, nil)

	scores := Score(idx, sel)
	require.Len(t, scores, 3)
	assert.Equal(t, int64(1), scores[0].PositionID)
	assert.Equal(t, int64(2), scores[1].PositionID)
	assert.Equal(t, int64(3), scores[2].PositionID)
}

// Adding an attribute to a set never decreases matched weight and never
// lowers a position's tier.
func TestScore_Monotonicity(t *testing.T) {
	idx := sampleIndex(t)

	smaller := NewSelection([]int64{100}, nil, nil)
	larger := NewSelection([]int64{100}, []int64{102}, nil)

	before := Score(idx, smaller)
	after := Score(idx, larger)
	require.Len(t, before, 1)
	require.Len(t, after, 1)

	assert.GreaterOrEqual(t, after[0].MatchedWeight, before[0].MatchedWeight)
	assert.True(t, after[0].Fit.AtLeast(before[0].Fit))
}

func TestNewSelection_DropsDuplicatesAndBadIDs(t *testing.T) {
	sel := NewSelection([]int64{1, 1, 2, 0, -5}, nil, nil)
	assert.Len(t, sel.Subjects, 2)
	assert.True(t, sel.Subjects[1])
	assert.True(t, sel.Subjects[2])
}
