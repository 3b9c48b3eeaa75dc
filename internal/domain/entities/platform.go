// Package entities contains the core domain types for the profile
// synchronization pipeline.
package entities

import (
	"fmt"
	"strings"
)

// Platform identifies a supported target platform. The set is closed:
// adding a platform means adding a variant here plus its prompt templates,
// not branching logic throughout the pipeline.
type Platform string

const (
	// PlatformLinkedIn targets LinkedIn profiles.
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUpwork targets Upwork freelancer profiles.
	PlatformUpwork Platform = "upwork"
)

// FieldName identifies one profile field in diffs and automated updates.
type FieldName string

const (
	// FieldHeadline is the LinkedIn headline.
	FieldHeadline FieldName = "headline"
	// FieldTitle is the Upwork professional title.
	FieldTitle FieldName = "title"
	// FieldAbout is the LinkedIn about/summary section.
	FieldAbout FieldName = "about"
	// FieldOverview is the Upwork overview section.
	FieldOverview FieldName = "overview"
	// FieldSkills is the skill list on either platform.
	FieldSkills FieldName = "skills"
	// FieldHourlyRate is the Upwork hourly rate.
	FieldHourlyRate FieldName = "hourly_rate"
)

// ParsePlatform parses a platform name, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformLinkedIn:
		return PlatformLinkedIn, nil
	case PlatformUpwork:
		return PlatformUpwork, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
}

// FieldOrder returns the canonical field order for the platform:
// identity/headline first, then narrative, then skills, then rate.
// Diffing and automated application both follow this order so that
// audit rendering and UI navigation are deterministic.
func (p Platform) FieldOrder() []FieldName {
	switch p {
	case PlatformUpwork:
		return []FieldName{FieldTitle, FieldOverview, FieldSkills, FieldHourlyRate}
	default:
		return []FieldName{FieldHeadline, FieldAbout, FieldSkills}
	}
}

// HeadlineField returns the platform's name for the title-like field.
func (p Platform) HeadlineField() FieldName {
	if p == PlatformUpwork {
		return FieldTitle
	}
	return FieldHeadline
}

// AboutField returns the platform's name for the long-form narrative field.
func (p Platform) AboutField() FieldName {
	if p == PlatformUpwork {
		return FieldOverview
	}
	return FieldAbout
}

// HeadlineLimit returns the maximum character length of the title-like field.
func (p Platform) HeadlineLimit() int {
	if p == PlatformUpwork {
		return 70 // Upwork professional title cap
	}
	return 220 // LinkedIn headline cap
}

// SkillLimit returns the maximum number of skills the platform accepts.
func (p Platform) SkillLimit() int {
	if p == PlatformUpwork {
		return 10
	}
	return 50
}

// UsesHourlyRate reports whether the platform has an hourly rate field.
func (p Platform) UsesHourlyRate() bool {
	return p == PlatformUpwork
}

// PlatformInfo describes a supported platform for presentation.
type PlatformInfo struct {
	ID          Platform `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Platforms returns the closed set of supported platforms.
func Platforms() []PlatformInfo {
	return []PlatformInfo{
		{
			ID:          PlatformUpwork,
			Name:        "Upwork",
			Description: "Freelance marketplace with opportunities across numerous fields",
		},
		{
			ID:          PlatformLinkedIn,
			Name:        "LinkedIn",
			Description: "Professional networking platform for job searching and professional branding",
		},
	}
}
