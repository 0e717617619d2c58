package reporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adscribe/internal/analysis"
	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/notifications"
	"adscribe/internal/preflight"
	"adscribe/internal/queue"
	"adscribe/internal/report"
	"adscribe/internal/services"
	"adscribe/internal/stage"
)

// Reporter renders the PDF report for an analyzed queue item.
type Reporter struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	notifier notifications.Service
	generate func(result analysis.Result, outputDir string, now time.Time) (string, error)
	now      func() time.Time
}

// NewReporter constructs the report stage handler with default dependencies.
func NewReporter(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Reporter {
	return NewReporterWithDependencies(cfg, store, logger, notifications.NewService(cfg))
}

// NewReporterWithDependencies allows injecting collaborators (used in tests).
func NewReporterWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) *Reporter {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "reporter"))
	}
	return &Reporter{
		cfg:      cfg,
		store:    store,
		logger:   stageLogger,
		notifier: notifier,
		generate: report.Generate,
		now:      time.Now,
	}
}

func (r *Reporter) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, r.logger)
	item.InitProgress("Reporting", "Rendering PDF report")
	logger.Info("starting report generation")
	return nil
}

func (r *Reporter) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, r.logger)

	result, err := analysis.Parse(item.AnalysisJSON)
	if err != nil || len(result.Scripts) == 0 {
		return services.Wrap(
			services.ErrValidation, "reporting", "validate inputs",
			"No analysis present; run the analysis stage first", err)
	}

	item.SetProgress("Reporting", "Rendering PDF report", 50)
	if err := r.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist report progress", logging.Error(err))
	}

	path, err := r.generate(result, r.cfg.Paths.ReportsDir, r.now())
	if err != nil {
		return services.Wrap(services.ErrTransient, "reporting", "render pdf", "Failed to render the PDF report", err)
	}
	item.ReportPath = path
	item.SetProgressComplete("Completed", fmt.Sprintf("Report ready with %d scripts", len(result.Scripts)))

	if err := r.notifier.NotifyReportReady(ctx, result.PageName, path); err != nil {
		logger.Warn("report notification failed", logging.Error(err))
	}

	logger.Info(
		"report complete",
		logging.String("report_path", path),
		logging.Int("scripts", len(result.Scripts)),
	)
	return nil
}

func (r *Reporter) HealthCheck(ctx context.Context) stage.Health {
	const name = "reporter"
	if result := preflight.CheckDirectoryAccess("Reports directory", r.cfg.Paths.ReportsDir); !result.Passed {
		return stage.Unhealthy(name, result.Detail)
	}
	return stage.Healthy(name)
}
