package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ersonp/prosync/internal/application/handlers"
	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
	"github.com/ersonp/prosync/internal/domain/services"
	"github.com/ersonp/prosync/internal/infrastructure/auditlog/sqlite"
	"github.com/ersonp/prosync/internal/infrastructure/config"
	"github.com/ersonp/prosync/internal/infrastructure/extractor/web"
	"github.com/ersonp/prosync/internal/infrastructure/llm/ollama"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed - services and repositories stay internal.
type Deps struct {
	Config         *config.Config
	ExtractHandler *handlers.ExtractHandler
	BuildHandler   *handlers.BuildHandler
	ReplyHandler   *handlers.ReplyHandler
	AuditHandler   *handlers.AuditHandler
	StatusHandler  *handlers.StatusHandler
}

// withDeps loads config, builds dependencies, calls fn, and cleans up.
// The automation and snapshot collaborators are external drivers; the
// CLI wires the manual-entry path, so builds without credentials render
// content and builds with credentials fail authentication honestly.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	backend, err := ollama.NewClient(cfg.Backend)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	auditLog, err := sqlite.NewRepository(cfg.Audit)
	if err != nil {
		return fmt.Errorf("creating audit repository: %w", err)
	}
	defer auditLog.Close()

	if err := auditLog.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring audit schema: %w", err)
	}

	generator := services.NewGenerator(backend,
		services.WithMaxRetries(cfg.Backend.MaxRetries),
		services.WithBackoff(time.Duration(cfg.Backend.BackoffSeconds)*time.Second),
	)
	buildService := services.NewBuildService(generator)
	diffService := services.NewDiffService()
	applyService := services.NewApplyService(noDriver{},
		time.Duration(cfg.Apply.FieldTimeoutSeconds)*time.Second)

	extractor := web.NewExtractor(cfg.Extractor)

	deps := &Deps{
		Config:         cfg,
		ExtractHandler: handlers.NewExtractHandler(extractor),
		BuildHandler:   handlers.NewBuildHandler(buildService, diffService, applyService, nil, auditLog),
		ReplyHandler:   handlers.NewReplyHandler(generator),
		AuditHandler:   handlers.NewAuditHandler(auditLog),
		StatusHandler:  handlers.NewStatusHandler(backend),
	}

	return fn(deps)
}

// noDriver stands in for the external automation collaborator when none
// is configured. Credentialed builds fail their automating stage instead
// of pretending fields were applied.
type noDriver struct{}

func (noDriver) OpenSession(ctx context.Context, platform entities.Platform, creds entities.Credentials) (ports.AutomationSession, error) {
	return nil, errors.New("no automation driver configured")
}
