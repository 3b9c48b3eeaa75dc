// Package services contains the pipeline's business logic: content
// generation, profile diffing, and change application.
package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// GenerateOptions controls one generation call.
type GenerateOptions struct {
	// MaxLength clamps the answer length in characters. Zero means no clamp.
	MaxLength int
	// Temperature in [0.0, 1.0]. Zero means the default (0.7).
	Temperature float32
	// Timeout bounds the backend call. Zero means the generator default.
	Timeout time.Duration
}

const (
	// DefaultTemperature is used when options leave temperature unset.
	DefaultTemperature float32 = 0.7
	// DefaultMaxTokens bounds backend output per request.
	DefaultMaxTokens = 2000
	// DefaultTimeout bounds one backend call.
	DefaultTimeout = 120 * time.Second
	// DefaultMaxRetries bounds retries of transient backend errors.
	DefaultMaxRetries = 3
	// DefaultBackoff is the linear backoff unit between retries.
	DefaultBackoff = 2 * time.Second

	// rate bounds applied to backend rate suggestions
	minHourlyRate = 15
	maxHourlyRate = 150
)

var reFirstInt = regexp.MustCompile(`\d+`)

// Generator wraps the text-generation backend: it owns prompt assembly,
// readiness checking, response cleanup, and retry policy.
type Generator struct {
	backend    ports.TextBackend
	maxRetries int
	backoff    time.Duration
	sleep      func(time.Duration) // test seam

	readyOnce sync.Once
	readyErr  error

	// cache avoids redundant backend calls within one run, keyed by
	// record fingerprint + task + platform. Generated text is never
	// cached across distinct contexts.
	mu    sync.Mutex
	cache map[string]string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxRetries bounds retries of transient backend errors.
func WithMaxRetries(n int) GeneratorOption {
	return func(g *Generator) { g.maxRetries = n }
}

// WithBackoff sets the linear backoff unit between retries.
func WithBackoff(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.backoff = d }
}

// NewGenerator creates a generator over the given backend.
func NewGenerator(backend ports.TextBackend, opts ...GeneratorOption) *Generator {
	g := &Generator{
		backend:    backend,
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
		sleep:      time.Sleep,
		cache:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces platform-ready text for one task. The backend is
// probed for readiness before first use and the call fails fast with
// entities.ErrBackendUnavailable if the model is not served. Transient
// transport errors are retried with linear backoff; a malformed response
// is retried once with a stricter prompt; exhaustion returns a
// *entities.GenerationError wrapping the last error.
func (g *Generator) Generate(ctx context.Context, task entities.TaskKind, pctx PromptContext, opts GenerateOptions) (string, error) {
	if err := g.ensureReady(ctx); err != nil {
		return "", err
	}

	prompt, err := buildPrompt(task, pctx)
	if err != nil {
		return "", err
	}

	key := g.cacheKey(task, pctx)
	if key != "" {
		g.mu.Lock()
		cached, ok := g.cache[key]
		g.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	answer, err := g.generateWithRetry(ctx, task, prompt, opts)
	if err != nil {
		return "", err
	}

	if opts.MaxLength > 0 {
		answer = clampLength(answer, opts.MaxLength)
	}

	if key != "" {
		g.mu.Lock()
		g.cache[key] = answer
		g.mu.Unlock()
	}
	return answer, nil
}

// GenerateTitle generates the platform's title-like field, cleaned to a
// single line and clamped to the platform limit.
func (g *Generator) GenerateTitle(ctx context.Context, record *entities.PortfolioRecord, platform entities.Platform) (string, error) {
	pctx := PromptContext{Record: record, Platform: platform}
	text, err := g.Generate(ctx, entities.TaskTitle, pctx, GenerateOptions{})
	if err != nil {
		return "", err
	}
	title := firstLine(strings.ReplaceAll(text, `"`, ""))
	return clampLength(title, platform.HeadlineLimit()), nil
}

// GenerateOverview generates the platform's long-form narrative field.
func (g *Generator) GenerateOverview(ctx context.Context, record *entities.PortfolioRecord, platform entities.Platform) (string, error) {
	pctx := PromptContext{Record: record, Platform: platform}
	return g.Generate(ctx, entities.TaskOverview, pctx, GenerateOptions{})
}

// RankSkills selects the platform's skill list: bullets and numbering
// stripped, deduplicated case-insensitively, capped at the platform
// limit.
func (g *Generator) RankSkills(ctx context.Context, record *entities.PortfolioRecord, platform entities.Platform, taxonomy []string) ([]string, error) {
	pctx := PromptContext{Record: record, Platform: platform, Taxonomy: taxonomy}
	text, err := g.Generate(ctx, entities.TaskSkillRanking, pctx, GenerateOptions{})
	if err != nil {
		return nil, err
	}
	return parseSkillList(text, platform.SkillLimit()), nil
}

// SuggestRate suggests an hourly rate in USD, clamped to sane bounds.
// When the backend returns no usable number the heuristic base rate from
// the record's experience is used instead.
func (g *Generator) SuggestRate(ctx context.Context, record *entities.PortfolioRecord, platform entities.Platform) (int, error) {
	pctx := PromptContext{Record: record, Platform: platform}
	text, err := g.Generate(ctx, entities.TaskRateSuggestion, pctx, GenerateOptions{})
	if err != nil {
		return 0, err
	}

	match := reFirstInt.FindString(text)
	if match == "" {
		return baseRate(record.ExperienceYears()), nil
	}
	rate, err := strconv.Atoi(match)
	if err != nil {
		return baseRate(record.ExperienceYears()), nil
	}
	if rate < minHourlyRate {
		rate = minHourlyRate
	}
	if rate > maxHourlyRate {
		rate = maxHourlyRate
	}
	return rate, nil
}

// DraftReply drafts a reply to an inbound platform message.
func (g *Generator) DraftReply(ctx context.Context, record *entities.PortfolioRecord, platform entities.Platform, message string) (string, error) {
	pctx := PromptContext{Record: record, Platform: platform, Message: message}
	return g.Generate(ctx, entities.TaskMessageReply, pctx, GenerateOptions{})
}

// ensureReady verifies backend availability and model readiness once,
// before first use. Failure is remembered: the pipeline fails fast
// instead of degrading silently.
func (g *Generator) ensureReady(ctx context.Context) error {
	g.readyOnce.Do(func() {
		if err := g.backend.Ready(ctx); err != nil {
			g.readyErr = fmt.Errorf("%w: %v", entities.ErrBackendUnavailable, err)
		}
	})
	return g.readyErr
}

// generateWithRetry runs the attempt loop: transient errors retry with
// linear backoff up to the configured bound, a malformed response earns
// exactly one stricter-prompt retry.
func (g *Generator) generateWithRetry(ctx context.Context, task entities.TaskKind, prompt string, opts GenerateOptions) (string, error) {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	var lastErr error
	retriedMalformed := false
	attempts := 0

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
			g.sleep(time.Duration(attempt) * g.backoff)
		}

		attempts++
		raw, err := g.request(ctx, prompt, temperature, timeout)
		if err != nil {
			lastErr = err
			if entities.IsTransient(err) {
				continue
			}
			return "", &entities.GenerationError{Task: task, Attempts: attempts, Err: err}
		}

		resp, err := ParseBackendResponse(raw)
		if err != nil {
			lastErr = err
			if !retriedMalformed {
				// One stricter retry: tell the model to answer only.
				retriedMalformed = true
				prompt += strictSuffix
				continue
			}
			return "", &entities.GenerationError{Task: task, Attempts: attempts, Err: err}
		}

		return resp.Answer, nil
	}

	return "", &entities.GenerationError{Task: task, Attempts: attempts, Err: lastErr}
}

func (g *Generator) request(ctx context.Context, prompt string, temperature float32, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return g.backend.Generate(callCtx, ports.GenerationRequest{
		Prompt:      prompt,
		MaxTokens:   DefaultMaxTokens,
		Temperature: temperature,
	})
}

func (g *Generator) cacheKey(task entities.TaskKind, pctx PromptContext) string {
	// Message replies depend on the inbound message, not just the record;
	// they are never cached.
	if pctx.Record == nil || task == entities.TaskMessageReply {
		return ""
	}
	return pctx.Record.Fingerprint() + ":" + string(task) + ":" + string(pctx.Platform)
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// clampLength truncates text to max characters, ellipsized.
func clampLength(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// parseSkillList parses a one-skill-per-line response into a clean list:
// bullets, numbering, and quotes stripped, deduplicated
// case-insensitively, capped at max.
func parseSkillList(text string, max int) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, line := range strings.Split(text, "\n") {
		skill := strings.TrimSpace(line)
		skill = strings.TrimLeft(skill, "*-0123456789. \t")
		skill = strings.Trim(skill, `"'`)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
		if len(skills) == max {
			break
		}
	}
	return skills
}
