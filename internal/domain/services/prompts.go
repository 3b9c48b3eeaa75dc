package services

import (
	"encoding/json"
	"fmt"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// PromptContext assembles the inputs for one generation task. The same
// context always produces the same prompt, so retries are deterministic.
type PromptContext struct {
	Record   *entities.PortfolioRecord
	Platform entities.Platform

	// Taxonomy is the target platform's skill taxonomy, used by the
	// skill ranking task to keep selections on-platform.
	Taxonomy []string

	// Message is the inbound message for the message reply task.
	Message string

	// MaxSkills caps the skill ranking output. Zero means the platform
	// default.
	MaxSkills int
}

const upworkTitlePrompt = `You are an expert in optimizing Upwork freelancer profiles.
Create a compelling professional title (maximum %d characters) based on the following information:

Current title: %s
Experience:
%s
Skills:
%s

The title should:
1. Include key skills that clients search for
2. Communicate expertise level (Senior, Expert, etc.)
3. Be specific about the value offered
4. Include relevant technologies and tools

Format as a single line without quotes.`

const linkedinHeadlinePrompt = `You are an expert in LinkedIn profile optimization.
Create a compelling LinkedIn headline (maximum %d characters) based on the following information:

Current title: %s
Experience:
%s
Skills:
%s

The headline should:
1. Start with the current role or expertise
2. Include industry specialization
3. Mention key skills or technologies
4. Add a value proposition

Format as a single line without quotes.`

const upworkOverviewPrompt = `You are an expert in Upwork profile optimization.
Create a compelling overview section (600-1000 characters) for an Upwork profile based on:

About:
%s
Experience:
%s
Education:
%s
Skills:
%s

The overview should:
1. Start with an attention-grabbing first sentence
2. Highlight expertise and specializations
3. Mention years of experience in key areas
4. Include technologies and methodologies
5. End with a call to action

Write in first person and focus on client benefits.`

const linkedinAboutPrompt = `You are an expert in LinkedIn profile optimization.
Create a compelling summary/about section (2000-2600 characters) for a LinkedIn profile based on:

About:
%s
Experience:
%s
Education:
%s
Skills:
%s

The summary should:
1. Start with a strong opening paragraph about professional identity
2. Highlight key achievements with measurable results
3. Include industry-relevant keywords for better visibility
4. End with current interests or goals and a call to action for connecting

Write in first person and make it personable yet professional.`

const upworkSkillsPrompt = `You are an Upwork profile optimization expert.
From the following skills and experience, select the most marketable skills for an Upwork profile (maximum %d).
Focus on specific technical skills and technologies that clients search for, rather than general abilities.

Skills:
%s
Experience:
%s
%s
Order skills by relevance and searchability.
Return ONLY the list of skills, with each skill on a new line (no bullets or numbers).`

const linkedinSkillsPrompt = `You are a LinkedIn profile optimization expert.
From the following skills and experience, select the most impactful skills for a LinkedIn profile (maximum %d).
Include both technical skills and relevant soft skills for a well-rounded profile.

Skills:
%s
Experience:
%s
%s
Balance specific technical skills with broader skill categories.
Return ONLY the list of skills, with each skill on a new line (no bullets or numbers).`

const ratePrompt = `You are an expert in freelancer pricing strategies.
Based on the following professional details, suggest an appropriate hourly rate (USD):

Years of experience: %d
Recent positions:
%s

Consider:
1. The calculated base rate: $%d/hr
2. Market rates for similar professionals
3. Value-based pricing principles

Return ONLY a single integer number (no $ symbol, text, or explanation).`

const messageReplyPrompt = `You are a professional replying to a message on %s.
Draft a concise, courteous reply to the following message, grounded in the
professional background below. Do not invent experience that is not listed.

Message:
%s

Background:
%s

Return only the reply text.`

// strictSuffix is appended when a first attempt produced no usable
// answer: the model is told to skip meta-commentary entirely.
const strictSuffix = "\n\nDO NOT include any thinking, reasoning, or commentary in your response. Respond with the final answer only."

// buildPrompt renders the deterministic prompt template for a task and
// platform. Record sections are embedded as indented JSON.
func buildPrompt(task entities.TaskKind, pctx PromptContext) (string, error) {
	rec := pctx.Record
	if rec == nil && task != entities.TaskMessageReply {
		return "", fmt.Errorf("prompt context for %s requires a portfolio record", task)
	}

	switch task {
	case entities.TaskTitle:
		recent := rec.Experience
		if len(recent) > 2 {
			recent = recent[:2]
		}
		tmpl := linkedinHeadlinePrompt
		if pctx.Platform == entities.PlatformUpwork {
			tmpl = upworkTitlePrompt
		}
		return fmt.Sprintf(tmpl,
			pctx.Platform.HeadlineLimit(),
			rec.Identity.Title,
			promptJSON(recent),
			promptJSON(rec.Skills),
		), nil

	case entities.TaskOverview:
		tmpl := linkedinAboutPrompt
		if pctx.Platform == entities.PlatformUpwork {
			tmpl = upworkOverviewPrompt
		}
		return fmt.Sprintf(tmpl,
			promptJSON(rec.About),
			promptJSON(rec.Experience),
			promptJSON(rec.Education),
			promptJSON(rec.Skills),
		), nil

	case entities.TaskSkillRanking:
		maxSkills := pctx.MaxSkills
		if maxSkills <= 0 {
			maxSkills = pctx.Platform.SkillLimit()
		}
		taxonomy := ""
		if len(pctx.Taxonomy) > 0 {
			taxonomy = fmt.Sprintf("Platform skill taxonomy (prefer exact matches):\n%s\n", promptJSON(pctx.Taxonomy))
		}
		tmpl := linkedinSkillsPrompt
		if pctx.Platform == entities.PlatformUpwork {
			tmpl = upworkSkillsPrompt
		}
		return fmt.Sprintf(tmpl,
			maxSkills,
			promptJSON(rec.AllSkills()),
			promptJSON(rec.Experience),
			taxonomy,
		), nil

	case entities.TaskRateSuggestion:
		titles := make([]string, 0, 2)
		for i, pos := range rec.Experience {
			if i >= 2 {
				break
			}
			titles = append(titles, pos.Title)
		}
		years := rec.ExperienceYears()
		return fmt.Sprintf(ratePrompt, years, promptJSON(titles), baseRate(years)), nil

	case entities.TaskMessageReply:
		if pctx.Message == "" {
			return "", fmt.Errorf("prompt context for %s requires a message", task)
		}
		background := "(none provided)"
		if rec != nil {
			background = promptJSON(rec)
		}
		return fmt.Sprintf(messageReplyPrompt, pctx.Platform, pctx.Message, background), nil

	default:
		return "", fmt.Errorf("unknown task kind: %s", task)
	}
}

// promptJSON renders a value as indented JSON for prompt embedding.
func promptJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// baseRate is the heuristic hourly-rate floor by experience years, used
// both in the prompt and as the fallback when the backend returns no
// usable number.
func baseRate(years int) int {
	switch {
	case years < 3:
		return 25
	case years < 5:
		return 40
	case years < 8:
		return 55
	default:
		return 70
	}
}
