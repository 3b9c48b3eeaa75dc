package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Identity holds basic personal information from the portfolio source.
type Identity struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email"`
	Location string `json:"location,omitempty"`
}

// About holds the narrative section of the portfolio.
type About struct {
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// Position is one professional experience entry.
type Position struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Duration     string   `json:"duration,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Degree is one education entry.
type Degree struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Skills separates technical from soft skills.
type Skills struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
}

// Testimonial is a recommendation quoted on the portfolio.
type Testimonial struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Quote    string `json:"quote"`
}

// PortfolioRecord is an immutable snapshot of the source-of-truth
// professional data. It is created by the extractor and owned by the
// pipeline run for its duration.
type PortfolioRecord struct {
	Identity     Identity      `json:"identity"`
	About        About         `json:"about,omitempty"`
	Experience   []Position    `json:"experience,omitempty"`
	Education    []Degree      `json:"education,omitempty"`
	Skills       Skills        `json:"skills,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`

	ExtractedAt time.Time `json:"extracted_at,omitempty"`
	FromCache   bool      `json:"from_cache,omitempty"`
}

// Validate checks the record invariants. Extraction is all-or-nothing:
// a record that fails validation is never handed to the pipeline.
func (r *PortfolioRecord) Validate() error {
	if r.Identity.Name == "" {
		return errors.New("portfolio identity name is required")
	}
	if r.Identity.Email == "" {
		return errors.New("portfolio identity email is required")
	}
	return nil
}

// AllSkills returns technical and soft skills combined, technical first.
func (r *PortfolioRecord) AllSkills() []string {
	out := make([]string, 0, len(r.Skills.Technical)+len(r.Skills.Soft))
	out = append(out, r.Skills.Technical...)
	out = append(out, r.Skills.Soft...)
	return out
}

// ExperienceYears is a rough estimate of total professional experience,
// counting current positions as two years and past positions as one.
func (r *PortfolioRecord) ExperienceYears() int {
	years := 0
	for _, pos := range r.Experience {
		if strings.Contains(strings.ToLower(pos.Duration), "present") {
			years += 2
		} else {
			years++
		}
	}
	return years
}

// Fingerprint returns a stable content hash of the record, used to key
// the per-run generation cache. Timestamps and cache markers are excluded
// so that re-reading the same source yields the same fingerprint.
func (r *PortfolioRecord) Fingerprint() string {
	stripped := *r
	stripped.ExtractedAt = time.Time{}
	stripped.FromCache = false

	data, err := json.Marshal(&stripped)
	if err != nil {
		// Marshaling a struct of strings and slices cannot fail.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
