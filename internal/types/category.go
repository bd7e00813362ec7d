// Package types provides type definitions shared across the TrainTrack API.
package types

import "fmt"

// Category classifies a prerequisite in the catalog.
type Category string

// The closed set of catalog categories. Major is informational only and is
// never scored.
const (
	CategorySubject           Category = "Subject"
	CategoryTechnicalSkill    Category = "Technical Skill"
	CategoryNonTechnicalSkill Category = "Non-Technical Skill"
	CategoryMajor             Category = "Major"
)

// ParseCategory maps a raw catalog category string onto the closed enumeration.
// Unknown values are a data-quality error in the catalog, not something to
// skip silently.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategorySubject, CategoryTechnicalSkill, CategoryNonTechnicalSkill, CategoryMajor:
		return Category(raw), nil
	default:
		return "", fmt.Errorf("unknown prerequisite category %q", raw)
	}
}

// Scorable reports whether requirements in this category participate in fit
// scoring.
func (c Category) Scorable() bool {
	switch c {
	case CategorySubject, CategoryTechnicalSkill, CategoryNonTechnicalSkill:
		return true
	default:
		return false
	}
}
