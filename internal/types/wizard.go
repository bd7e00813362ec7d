package types

import "github.com/go-playground/validator/v10"

// Major is a study program shown in the first wizard step. Majors are
// informational and never participate in scoring.
type Major struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubjectCategory is a subject grouping with display metadata.
type SubjectCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// AttributeRef is an id/name pair for a selectable catalog attribute.
type AttributeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AttributeGroup is a set of attributes under one subject category.
type AttributeGroup struct {
	CategoryID   int64          `json:"category_id"`
	CategoryName string         `json:"category_name"`
	Attributes   []AttributeRef `json:"attributes"`
}

// PreferencesRequest carries the advanced-preferences wizard step.
type PreferencesRequest struct {
	TrainingMode string   `json:"training_mode" validate:"required,oneof=Onsite Remote Hybrid"`
	CompanySize  string   `json:"preferred_company_size" validate:"required,oneof=Small Medium Large"`
	Culture      []string `json:"preferred_culture" validate:"required,max=2"`
	Industry     []string `json:"preferred_industry" validate:"required,max=2"`
}

// Validate validates the PreferencesRequest using the validator.
func (r *PreferencesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SummaryRequest asks for a human-readable recap of the wizard selections.
type SummaryRequest struct {
	FullName           string              `json:"full_name"`
	Gender             string              `json:"gender,omitempty"`
	MajorID            int64               `json:"major_id" validate:"required,gt=0"`
	Subjects           []int64             `json:"subjects" validate:"dive,gt=0"`
	TechnicalSkills    []int64             `json:"technical_skills" validate:"dive,gt=0"`
	NonTechnicalSkills []int64             `json:"non_technical_skills" validate:"dive,gt=0"`
	Preferences        *PreferencesRequest `json:"preferences,omitempty"`
}

// Validate validates the SummaryRequest using the validator.
func (r *SummaryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Summary is the recap returned by the summary endpoint.
type Summary struct {
	FullName           string              `json:"full_name"`
	Gender             string              `json:"gender,omitempty"`
	Major              string              `json:"major"`
	Subjects           []AttributeGroup    `json:"subjects"`
	TechnicalSkills    []AttributeGroup    `json:"technical_skills"`
	NonTechnicalSkills []string            `json:"non_technical_skills"`
	Preferences        *PreferencesRequest `json:"preferences,omitempty"`
}
