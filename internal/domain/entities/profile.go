package entities

import (
	"strconv"
	"strings"
	"time"
)

// CandidateProfile is the platform-specific projection generated from a
// PortfolioRecord. It is owned by the pipeline run that created it and is
// discarded after the run unless persisted to the audit log as part of a
// diff.
type CandidateProfile struct {
	Platform    Platform  `json:"platform"`
	GeneratedAt time.Time `json:"generated_at"`

	Headline   string   `json:"headline,omitempty"`
	About      string   `json:"about,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate int      `json:"hourly_rate,omitempty"`

	// FieldIssues records fields whose generation failed. A failed
	// single-field generation degrades the profile, it does not abort it.
	FieldIssues map[FieldName]string `json:"field_issues,omitempty"`
}

// LiveSnapshot is a best-effort observation of the platform's current
// profile state, used as the diff baseline. Absence is a normal outcome:
// diffing without a snapshot degrades to purely additive.
type LiveSnapshot struct {
	Platform   Platform  `json:"platform"`
	ObservedAt time.Time `json:"observed_at"`

	Headline   string   `json:"headline,omitempty"`
	About      string   `json:"about,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate int      `json:"hourly_rate,omitempty"`
}

// AddIssue annotates a field whose generation failed.
func (c *CandidateProfile) AddIssue(field FieldName, reason string) {
	if c.FieldIssues == nil {
		c.FieldIssues = make(map[FieldName]string)
	}
	c.FieldIssues[field] = reason
}

// FieldValue returns the rendered value of a field and whether the
// candidate carries it. List fields render comma-separated, the rate
// renders as a bare integer: the form each platform's input accepts.
func (c *CandidateProfile) FieldValue(field FieldName) (string, bool) {
	switch field {
	case FieldHeadline, FieldTitle:
		return c.Headline, c.Headline != ""
	case FieldAbout, FieldOverview:
		return c.About, c.About != ""
	case FieldSkills:
		if len(c.Skills) == 0 {
			return "", false
		}
		return joinSkills(c.Skills), true
	case FieldHourlyRate:
		if c.HourlyRate == 0 {
			return "", false
		}
		return strconv.Itoa(c.HourlyRate), true
	default:
		return "", false
	}
}

// FieldValue returns the rendered value of a snapshot field and whether
// the snapshot carries it.
func (s *LiveSnapshot) FieldValue(field FieldName) (string, bool) {
	switch field {
	case FieldHeadline, FieldTitle:
		return s.Headline, s.Headline != ""
	case FieldAbout, FieldOverview:
		return s.About, s.About != ""
	case FieldSkills:
		if len(s.Skills) == 0 {
			return "", false
		}
		return joinSkills(s.Skills), true
	case FieldHourlyRate:
		if s.HourlyRate == 0 {
			return "", false
		}
		return strconv.Itoa(s.HourlyRate), true
	default:
		return "", false
	}
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}
