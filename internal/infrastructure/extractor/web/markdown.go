package web

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// Portfolio pages are parsed from their markdown rendering by heading
// structure:
//
//	# Name
//	optional title line
//	## About        summary paragraph + highlight bullets
//	## Experience   one ### block per position: "Title — Organization",
//	                then duration and location lines, achievement bullets
//	## Education    one ### block per degree: institution heading,
//	                "Degree in Field", duration and location lines
//	## Skills       optional ### Technical / ### Soft subsections with
//	                bullets, or bare bullets (treated as technical)
//	## Testimonials one ### block per quote: "Name, Position, Company",
//	                blockquote or paragraph body
//
// The identity email may appear anywhere on the page.

var (
	reEmail   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reDateish = regexp.MustCompile(`\d{4}|(?i)present`)
)

type mdSection struct {
	level int
	name  string
	lines []string
	subs  []mdSection
}

// parseMarkdown builds a portfolio record from a markdown page.
func parseMarkdown(markdown string) (*entities.PortfolioRecord, error) {
	record := &entities.PortfolioRecord{}

	record.Identity.Email = reEmail.FindString(markdown)

	sections, intro := splitSections(markdown)
	parseIntro(intro, record)

	for _, sec := range sections {
		switch normalizeHeading(sec.name) {
		case "about", "about me", "summary":
			parseAbout(sec, record)
		case "experience", "work experience", "professional experience":
			parseExperience(sec, record)
		case "education":
			parseEducation(sec, record)
		case "skills":
			parseSkills(sec, record)
		case "testimonials", "recommendations":
			parseTestimonials(sec, record)
		}
	}

	if record.Identity.Name == "" {
		return nil, errors.New("no name heading found on page")
	}
	if record.Identity.Email == "" {
		return nil, errors.New("no contact email found on page")
	}
	return record, nil
}

// splitSections groups the document into level-2 sections with their
// level-3 subsections, returning also the intro lines before the first
// level-2 heading.
func splitSections(markdown string) (sections []mdSection, intro []string) {
	var current *mdSection
	var sub *mdSection

	flushSub := func() {
		if sub != nil && current != nil {
			current.subs = append(current.subs, *sub)
		}
		sub = nil
	}
	flush := func() {
		flushSub()
		if current != nil {
			sections = append(sections, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		m := reHeading.FindStringSubmatch(line)
		if m == nil {
			trimmed := strings.TrimRight(line, " \t")
			switch {
			case sub != nil:
				sub.lines = append(sub.lines, trimmed)
			case current != nil:
				current.lines = append(current.lines, trimmed)
			default:
				intro = append(intro, trimmed)
			}
			continue
		}

		level, name := len(m[1]), strings.TrimSpace(m[2])
		switch {
		case level <= 2:
			flush()
			if level == 1 {
				// Top-level heading is the person's name; it lives in
				// the intro, not a section.
				intro = append(intro, line)
				continue
			}
			current = &mdSection{level: level, name: name}
		default:
			flushSub()
			if current != nil {
				sub = &mdSection{level: level, name: name}
			}
		}
	}
	flush()
	return sections, intro
}

// parseIntro reads the name from the first level-1 heading and the
// professional title from the first plain line after it.
func parseIntro(intro []string, record *entities.PortfolioRecord) {
	for _, line := range intro {
		if m := reHeading.FindStringSubmatch(line); m != nil {
			if len(m[1]) == 1 && record.Identity.Name == "" {
				record.Identity.Name = strings.TrimSpace(m[2])
			}
			continue
		}
		text := strings.TrimSpace(line)
		if text == "" || record.Identity.Name == "" {
			continue
		}
		if record.Identity.Title == "" && !strings.Contains(text, "@") {
			record.Identity.Title = text
		}
	}
}

func parseAbout(sec mdSection, record *entities.PortfolioRecord) {
	var summary []string
	for _, line := range sec.lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if bullet, ok := bulletText(text); ok {
			record.About.Highlights = append(record.About.Highlights, bullet)
			continue
		}
		summary = append(summary, text)
	}
	record.About.Summary = strings.Join(summary, " ")
}

func parseExperience(sec mdSection, record *entities.PortfolioRecord) {
	for _, sub := range sec.subs {
		pos := entities.Position{}
		pos.Title, pos.Organization = splitPair(sub.name)

		for _, line := range sub.lines {
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if bullet, ok := bulletText(text); ok {
				pos.Achievements = append(pos.Achievements, bullet)
				continue
			}
			if pos.Duration == "" && reDateish.MatchString(text) {
				pos.Duration = text
				continue
			}
			if pos.Location == "" {
				pos.Location = text
			}
		}
		record.Experience = append(record.Experience, pos)
	}
}

func parseEducation(sec mdSection, record *entities.PortfolioRecord) {
	for _, sub := range sec.subs {
		deg := entities.Degree{Institution: sub.name}
		for _, line := range sub.lines {
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if b, ok := bulletText(text); ok {
				text = b
			}
			switch {
			case deg.Duration == "" && reDateish.MatchString(text):
				deg.Duration = text
			case deg.Degree == "":
				deg.Degree, deg.Field = splitDegree(text)
			case deg.Location == "":
				deg.Location = text
			}
		}
		record.Education = append(record.Education, deg)
	}
}

func parseSkills(sec mdSection, record *entities.PortfolioRecord) {
	record.Skills.Technical = append(record.Skills.Technical, collectSkills(sec.lines)...)
	for _, sub := range sec.subs {
		skills := collectSkills(sub.lines)
		if strings.EqualFold(strings.TrimSpace(sub.name), "soft") {
			record.Skills.Soft = append(record.Skills.Soft, skills...)
		} else {
			record.Skills.Technical = append(record.Skills.Technical, skills...)
		}
	}
}

// collectSkills gathers skills from bullets or comma-separated lines.
func collectSkills(lines []string) []string {
	var skills []string
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if bullet, ok := bulletText(text); ok {
			text = bullet
		}
		for _, part := range strings.Split(text, ",") {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
	}
	return skills
}

func parseTestimonials(sec mdSection, record *entities.PortfolioRecord) {
	for _, sub := range sec.subs {
		t := entities.Testimonial{}
		parts := strings.SplitN(sub.name, ",", 3)
		t.Name = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			t.Position = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			t.Company = strings.TrimSpace(parts[2])
		}

		var quote []string
		for _, line := range sub.lines {
			text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ">"))
			if text != "" {
				quote = append(quote, text)
			}
		}
		t.Quote = strings.Join(quote, " ")
		record.Testimonials = append(record.Testimonials, t)
	}
}

// bulletText strips a markdown list marker, reporting whether the line
// was a bullet.
func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return line, false
}

// splitPair splits "Title — Organization" style headings on the first
// dash or "at" separator.
func splitPair(heading string) (first, second string) {
	for _, sep := range []string{" — ", " – ", " - ", " | ", " at ", " @ "} {
		if idx := strings.Index(heading, sep); idx >= 0 {
			return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+len(sep):])
		}
	}
	return strings.TrimSpace(heading), ""
}

// splitDegree splits "Degree in Field" lines.
func splitDegree(text string) (degree, field string) {
	if idx := strings.Index(text, " in "); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+4:])
	}
	return strings.TrimSpace(text), ""
}

// normalizeHeading lowercases a heading and strips trailing punctuation.
func normalizeHeading(name string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(name), ":"))
}
