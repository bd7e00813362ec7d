package catalog

import (
	"context"
	"fmt"

	"github.com/traintrack/traintrack-api/internal/types"
)

// ListMajors returns the study programs offered in the first wizard step.
func (s *Store) ListMajors(ctx context.Context) ([]types.Major, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM prerequisites WHERE type = 'Major' ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list majors: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var majors []types.Major
	for rows.Next() {
		var m types.Major
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan major: %v", ErrUnavailable, err)
		}
		majors = append(majors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read majors: %v", ErrUnavailable, err)
	}
	return majors, nil
}

// ListSubjectCategories returns the subject groupings with display metadata.
func (s *Store) ListSubjectCategories(ctx context.Context) ([]types.SubjectCategory, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(image_path, '')
		 FROM categories
		 WHERE is_subject_category
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list subject categories: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var categories []types.SubjectCategory
	for rows.Next() {
		var c types.SubjectCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: failed to scan subject category: %v", ErrUnavailable, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read subject categories: %v", ErrUnavailable, err)
	}
	return categories, nil
}

// ListSubjectsByCategories returns subjects for the given category ids,
// grouped by category in ascending category id order.
func (s *Store) ListSubjectsByCategories(ctx context.Context, categoryIDs []int64) ([]types.AttributeGroup, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, c.id, c.name
		 FROM prerequisites p
		 JOIN categories c ON p.category_id = c.id
		 WHERE p.type = 'Subject' AND p.category_id = ANY($1)
		 ORDER BY c.id, p.id`,
		categoryIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list subjects: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	return scanAttributeGroups(rows)
}

// ListTechnicalSkills returns technical skills mapped to the given subject
// categories, grouped by category. A skill mapped to several categories
// appears once per category but never twice within one group.
func (s *Store) ListTechnicalSkills(ctx context.Context, categoryIDs []int64) ([]types.AttributeGroup, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT p.id, p.name, c.id, c.name
		 FROM prerequisites p
		 JOIN category_skill_map csm ON p.id = csm.skill_id
		 JOIN categories c ON csm.category_id = c.id
		 WHERE p.type = 'Technical Skill' AND csm.category_id = ANY($1)
		 ORDER BY c.id, p.id`,
		categoryIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list technical skills: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	return scanAttributeGroups(rows)
}

// ListNonTechnicalSkills returns the flat list of non-technical skills.
func (s *Store) ListNonTechnicalSkills(ctx context.Context) ([]types.AttributeRef, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM prerequisites WHERE type = 'Non-Technical Skill' ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list non-technical skills: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var skills []types.AttributeRef
	for rows.Next() {
		var skill types.AttributeRef
		if err := rows.Scan(&skill.ID, &skill.Name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan non-technical skill: %v", ErrUnavailable, err)
		}
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read non-technical skills: %v", ErrUnavailable, err)
	}
	return skills, nil
}

// ListSubjectsByIDs returns the named subjects among the given prerequisite
// ids, grouped by their subject category.
func (s *Store) ListSubjectsByIDs(ctx context.Context, ids []int64) ([]types.AttributeGroup, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, c.id, c.name
		 FROM prerequisites p
		 JOIN categories c ON p.category_id = c.id
		 WHERE p.type = 'Subject' AND p.id = ANY($1)
		 ORDER BY c.id, p.id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list subjects by id: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	return scanAttributeGroups(rows)
}

// ListTechnicalSkillsByIDs returns the named technical skills among the
// given prerequisite ids, grouped by subject category via the skill map.
func (s *Store) ListTechnicalSkillsByIDs(ctx context.Context, ids []int64) ([]types.AttributeGroup, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT p.id, p.name, c.id, c.name
		 FROM prerequisites p
		 JOIN category_skill_map csm ON p.id = csm.skill_id
		 JOIN categories c ON csm.category_id = c.id
		 WHERE p.type = 'Technical Skill' AND p.id = ANY($1)
		 ORDER BY c.id, p.id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list technical skills by id: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	return scanAttributeGroups(rows)
}

// GetMajorName resolves a major's display name; empty when unknown.
func (s *Store) GetMajorName(ctx context.Context, majorID int64) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx,
		`SELECT name FROM prerequisites WHERE id = $1 AND type = 'Major'`,
		majorID,
	).Scan(&name)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to fetch major: %v", ErrUnavailable, err)
	}
	return name, nil
}

type attributeRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAttributeGroups(rows attributeRows) ([]types.AttributeGroup, error) {
	var groups []types.AttributeGroup
	byCategory := make(map[int64]int)

	for rows.Next() {
		var (
			attr         types.AttributeRef
			categoryID   int64
			categoryName string
		)
		if err := rows.Scan(&attr.ID, &attr.Name, &categoryID, &categoryName); err != nil {
			return nil, fmt.Errorf("%w: failed to scan attribute group row: %v", ErrUnavailable, err)
		}

		i, ok := byCategory[categoryID]
		if !ok {
			i = len(groups)
			byCategory[categoryID] = i
			groups = append(groups, types.AttributeGroup{
				CategoryID:   categoryID,
				CategoryName: categoryName,
			})
		}
		groups[i].Attributes = append(groups[i].Attributes, attr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read attribute groups: %v", ErrUnavailable, err)
	}
	return groups, nil
}
