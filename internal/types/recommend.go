package types

import "github.com/go-playground/validator/v10"

// RecommendationRequest is the scoring request body. The count bounds on each
// selection set are enforced by the engine's input validator; the struct tags
// only reject malformed ids.
type RecommendationRequest struct {
	Subjects            []int64 `json:"subjects" validate:"dive,gt=0"`
	TechnicalSkills     []int64 `json:"technical_skills" validate:"dive,gt=0"`
	NonTechnicalSkills  []int64 `json:"non_technical_skills" validate:"dive,gt=0"`
	IsFallbackRetry     bool    `json:"is_fallback_retry"`
	PreviousFallbackIDs []int64 `json:"previous_fallback_ids,omitempty" validate:"dive,gt=0"`
	UserID              string  `json:"user_id,omitempty"`
}

// Validate validates the RecommendationRequest using the validator.
func (r *RecommendationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RecommendedPosition is one entry of the recommendation list.
type RecommendedPosition struct {
	PositionID                     int64   `json:"positionId"`
	PositionName                   string  `json:"positionName"`
	Tier                           string  `json:"tier"`
	MatchScorePercentage           float64 `json:"matchScorePercentage"`
	SubjectFitPercentage           float64 `json:"subjectFitPercentage"`
	TechnicalSkillFitPercentage    float64 `json:"technicalSkillFitPercentage"`
	NonTechnicalSkillFitPercentage float64 `json:"nonTechnicalSkillFitPercentage"`
}

// RecommendationResponse is the scoring response body.
type RecommendationResponse struct {
	FallbackTriggered    bool                  `json:"fallbackTriggered"`
	FallbackPossible     bool                  `json:"fallbackPossible"`
	WasFallbackPromoted  bool                  `json:"wasFallbackPromoted"`
	RecommendedPositions []RecommendedPosition `json:"recommendedPositions"`
}

// GapAnalysisRequest asks which attributes are missing against the best
// fallback-tier position for the given selection.
type GapAnalysisRequest struct {
	Subjects           []int64 `json:"subjects" validate:"dive,gt=0"`
	TechnicalSkills    []int64 `json:"technical_skills" validate:"dive,gt=0"`
	NonTechnicalSkills []int64 `json:"non_technical_skills" validate:"dive,gt=0"`
}

// Validate validates the GapAnalysisRequest using the validator.
func (r *GapAnalysisRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MissingAttribute is a catalog attribute the candidate has not selected.
type MissingAttribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MissingAttributes groups missing attributes by category.
type MissingAttributes struct {
	Subjects           []MissingAttribute `json:"subjects"`
	TechnicalSkills    []MissingAttribute `json:"technicalSkills"`
	NonTechnicalSkills []MissingAttribute `json:"nonTechnicalSkills"`
}

// GapAnalysisResponse reports the gap against the target fallback position.
// Applicable is false when no fallback-tier position exists for the selection.
type GapAnalysisResponse struct {
	Applicable   bool              `json:"applicable"`
	PositionID   int64             `json:"positionId,omitempty"`
	PositionName string            `json:"positionName,omitempty"`
	Missing      MissingAttributes `json:"missing"`
}
