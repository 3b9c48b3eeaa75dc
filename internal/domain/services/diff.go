package services

import (
	"strings"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// DiffService compares a candidate profile against the platform's live
// state, producing a field-level diff in the platform's canonical order.
type DiffService struct{}

// NewDiffService creates a new diff service.
func NewDiffService() *DiffService {
	return &DiffService{}
}

// Diff produces the profile diff for a candidate against an optional
// live snapshot. Fields present only in the live state are never
// reported: the pipeline does not propose deleting platform-owned data
// it did not generate. With no snapshot, every candidate field is
// reported as added.
func (s *DiffService) Diff(candidate *entities.CandidateProfile, live *entities.LiveSnapshot) entities.ProfileDiff {
	diff := entities.ProfileDiff{
		Platform:    candidate.Platform,
		GeneratedAt: candidate.GeneratedAt,
	}

	for _, field := range candidate.Platform.FieldOrder() {
		after, ok := candidate.FieldValue(field)
		if !ok {
			continue
		}

		if field == entities.FieldSkills {
			if fd, ok := diffSkills(candidate, live); ok {
				diff.Fields = append(diff.Fields, fd)
			}
			continue
		}

		var before string
		hasBefore := false
		if live != nil {
			before, hasBefore = live.FieldValue(field)
		}

		switch {
		case !hasBefore:
			diff.Fields = append(diff.Fields, entities.FieldDiff{
				Field: field,
				Kind:  entities.DiffAdded,
				After: after,
			})
		case before != after:
			diff.Fields = append(diff.Fields, entities.FieldDiff{
				Field:  field,
				Kind:   entities.DiffChanged,
				Before: before,
				After:  after,
			})
		}
	}

	return diff
}

// diffSkills computes the set-wise skill diff: candidate skills not in
// the live set, compared case-insensitively after trimming.
func diffSkills(candidate *entities.CandidateProfile, live *entities.LiveSnapshot) (entities.FieldDiff, bool) {
	existing := make(map[string]bool)
	hasBefore := false
	var before []string
	if live != nil && len(live.Skills) > 0 {
		hasBefore = true
		before = live.Skills
		for _, skill := range live.Skills {
			existing[normalizeSkill(skill)] = true
		}
	}

	var added []string
	seen := make(map[string]bool)
	for _, skill := range candidate.Skills {
		key := normalizeSkill(skill)
		if key == "" || existing[key] || seen[key] {
			continue
		}
		seen[key] = true
		added = append(added, strings.TrimSpace(skill))
	}

	if len(added) == 0 {
		return entities.FieldDiff{}, false
	}

	fd := entities.FieldDiff{
		Field:       entities.FieldSkills,
		Kind:        entities.DiffAdded,
		After:       strings.Join(added, ", "),
		SkillsAdded: added,
	}
	if hasBefore {
		fd.Kind = entities.DiffChanged
		fd.Before = strings.Join(before, ", ")
	}
	return fd, true
}

// normalizeSkill lowercases and trims a skill for set comparison.
func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
