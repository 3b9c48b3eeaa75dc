package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/application/handlers"
	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/mocks"
	"github.com/ersonp/prosync/internal/domain/services"
	"github.com/ersonp/prosync/internal/infrastructure/auditlog/sqlite"
	"github.com/ersonp/prosync/internal/infrastructure/config"
	"github.com/ersonp/prosync/internal/infrastructure/extractor/web"
)

const portfolioJSON = `{
	"identity": {
		"name": "Jane Doe",
		"title": "Software Engineer",
		"email": "jane@example.com"
	},
	"experience": [
		{"title": "Senior Engineer", "organization": "Acme", "duration": "2022 - Present"},
		{"title": "Engineer", "organization": "Initech", "duration": "2019 - 2022"}
	],
	"skills": {"technical": ["Go", "PostgreSQL", "Docker"]}
}`

// TestPipeline_ExtractBuildAudit runs the whole pipeline against real
// adapters where possible: HTTP extraction with a file cache, a SQLite
// audit log on disk, and the full service stack. Only the generation
// backend and the automation driver are mocked.
func TestPipeline_ExtractBuildAudit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	workDir := t.TempDir()

	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(portfolioJSON))
	}))
	defer source.Close()

	extractor := web.NewExtractor(config.ExtractorConfig{
		CacheDir:        filepath.Join(workDir, "cache"),
		CacheTTLMinutes: 60,
		TimeoutSeconds:  5,
	})

	audit, err := sqlite.NewRepository(config.AuditConfig{
		Path: filepath.Join(workDir, "audit.db"),
	})
	require.NoError(t, err)
	defer audit.Close()
	require.NoError(t, audit.EnsureSchema(ctx))

	backend := &mocks.TextBackend{
		Responses: []string{
			"<think>picking a strong title</think>\nExpert Go Developer | Distributed Systems",
			"I build reliable backend systems in Go.",
			"Go\nPostgreSQL\nDocker\nKubernetes",
			"I would charge 75 per hour.",
		},
	}
	automation := &mocks.Automation{}

	generator := services.NewGenerator(backend)
	buildHandler := handlers.NewBuildHandler(
		services.NewBuildService(generator),
		services.NewDiffService(),
		services.NewApplyService(automation, time.Second),
		&mocks.SnapshotFetcher{},
		audit,
	)
	extractHandler := handlers.NewExtractHandler(extractor)
	auditHandler := handlers.NewAuditHandler(audit)

	// Extract: fresh, then cached.
	extracted, err := extractHandler.Handle(ctx, source.URL, handlers.ExtractOptions{UseCache: true})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", extracted.Record.Identity.Name)
	assert.False(t, extracted.Record.FromCache)

	cached, err := extractHandler.Handle(ctx, source.URL, handlers.ExtractOptions{UseCache: true})
	require.NoError(t, err)
	assert.True(t, cached.Record.FromCache)

	// Build with credentials: every field applied.
	result, err := buildHandler.Handle(ctx, handlers.BuildRequest{
		Platform:    entities.PlatformUpwork,
		Record:      extracted.Record,
		ProfileURL:  "https://upwork.com/freelancers/janedoe",
		Credentials: entities.Credentials{Username: "jane", Password: "secret"},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.StateApplied, result.State)
	assert.Equal(t, "Expert Go Developer | Distributed Systems", result.Candidate.Headline)
	assert.Equal(t, 75, result.Candidate.HourlyRate)
	assert.Len(t, result.Diff.Fields, 4)
	require.Len(t, automation.Sessions, 1)
	assert.True(t, automation.Sessions[0].Closed)

	// Audit: the run is on record, newest first, with the diff intact.
	entries, err := auditHandler.List(ctx, "upwork", 10)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, result.AuditID, entry.ID)
	assert.Equal(t, entities.OutcomeRunApplied, entry.Outcome)
	assert.Len(t, entry.Diff.Fields, 4)
	for _, fd := range entry.Diff.Fields {
		assert.Equal(t, entities.OutcomeApplied, fd.Outcome)
	}
}
