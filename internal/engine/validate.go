package engine

import "fmt"

// Selection count bounds for a full wizard submission. A fallback retry only
// adds attributes to an existing near-miss, so it is exempt from the minima.
const (
	minSubjects           = 3
	maxSubjects           = 7
	minTechnicalSkills    = 3
	maxTechnicalSkills    = 8
	minNonTechnicalSkills = 3
	maxNonTechnicalSkills = 5
)

// ValidationError names the constraint a selection violates. It is returned
// to the caller as a structured rejection and short-circuits scoring.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid selection: %s - %s", e.Field, e.Message)
}

// ValidateSelection enforces the selection-count bounds before scoring.
// Counts are over unique ids; duplicate selections are meaningless.
func ValidateSelection(sel Selection, isFallbackRetry bool) error {
	subjects := len(sel.Subjects)
	technical := len(sel.TechnicalSkills)
	nonTechnical := len(sel.NonTechnicalSkills)

	if isFallbackRetry {
		if subjects == 0 && technical == 0 && nonTechnical == 0 {
			return &ValidationError{
				Field:   "selection",
				Message: "a fallback retry must add at least one subject or skill",
			}
		}
	} else {
		if subjects < minSubjects {
			return &ValidationError{
				Field:   "subjects",
				Message: fmt.Sprintf("select at least %d subjects", minSubjects),
			}
		}
		if technical < minTechnicalSkills {
			return &ValidationError{
				Field:   "technical_skills",
				Message: fmt.Sprintf("select at least %d technical skills", minTechnicalSkills),
			}
		}
		if nonTechnical < minNonTechnicalSkills {
			return &ValidationError{
				Field:   "non_technical_skills",
				Message: fmt.Sprintf("select at least %d non-technical skills", minNonTechnicalSkills),
			}
		}
	}

	if subjects > maxSubjects {
		return &ValidationError{
			Field:   "subjects",
			Message: fmt.Sprintf("select at most %d subjects", maxSubjects),
		}
	}
	if technical > maxTechnicalSkills {
		return &ValidationError{
			Field:   "technical_skills",
			Message: fmt.Sprintf("select at most %d technical skills", maxTechnicalSkills),
		}
	}
	if nonTechnical > maxNonTechnicalSkills {
		return &ValidationError{
			Field:   "non_technical_skills",
			Message: fmt.Sprintf("select at most %d non-technical skills", maxNonTechnicalSkills),
		}
	}

	return nil
}
