package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adscribe/internal/analysis"
	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/stage"
)

// Analyzer runs transcript grouping and scoring for a queue item.
type Analyzer struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyzer constructs the analysis stage handler.
func NewAnalyzer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Analyzer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "analyzer"))
	}
	return &Analyzer{cfg: cfg, store: store, logger: stageLogger, now: time.Now}
}

func (a *Analyzer) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, a.logger)
	item.InitProgress("Analyzing", "Grouping transcripts")
	logger.Info("starting analysis", logging.Int64("ads_transcribed", item.AdsTranscribed))
	return nil
}

func (a *Analyzer) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, a.logger)

	env, err := stage.ParseAds(item.AdsJSON)
	if err != nil {
		return err
	}
	if env.TranscribedCount() == 0 {
		return services.Wrap(
			services.ErrValidation, "analyzing", "validate inputs",
			"No transcripts present; run the transcription stage first", nil)
	}

	item.SetProgress("Analyzing", "Scoring scripts", 50)
	if err := a.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist analysis progress", logging.Error(err))
	}

	result := analysis.Analyze(env, a.cfg.Analysis.SimilarityThreshold, a.now())
	encoded, err := result.Encode()
	if err != nil {
		return services.Wrap(services.ErrTransient, "analyzing", "encode analysis", "Failed to encode analysis results", err)
	}
	item.AnalysisJSON = encoded
	item.SetProgressComplete("Analyzed", fmt.Sprintf("Found %d original scripts and %d variants", result.Originals, result.Variants))

	logger.Info(
		"analysis complete",
		logging.Int("scripts", len(result.Scripts)),
		logging.Int("originals", result.Originals),
		logging.Int("variants", result.Variants),
	)
	return nil
}

func (a *Analyzer) HealthCheck(ctx context.Context) stage.Health {
	return stage.Healthy("analyzer")
}
