package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"

	"adscribe/internal/ads"
	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/media"
	"adscribe/internal/notifications"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/services/whisper"
	"adscribe/internal/stage"
)

// transcriptionService is the part of the whisper service the stage needs.
type transcriptionService interface {
	Transcribe(ctx context.Context, audioPath, outputDir string) (whisper.Result, error)
}

// Transcriber converts downloaded ad audio into transcripts.
type Transcriber struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	service  transcriptionService
	cache    *whisper.Cache
	notifier notifications.Service
}

// NewTranscriber constructs the transcription stage handler with default
// dependencies.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	return NewTranscriberWithDependencies(cfg, store, logger,
		whisper.NewService(cfg),
		whisper.NewCache(cfg.Paths.TranscriptCacheDir),
		notifications.NewService(cfg))
}

// NewTranscriberWithDependencies allows injecting collaborators (used in tests).
func NewTranscriberWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, service transcriptionService, cache *whisper.Cache, notifier notifications.Service) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "transcriber"))
	}
	return &Transcriber{cfg: cfg, store: store, logger: stageLogger, service: service, cache: cache, notifier: notifier}
}

func (t *Transcriber) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)
	item.InitProgress("Transcribing", "Preparing transcription")
	logger.Info("starting transcription preparation", logging.Int64("ads_found", item.AdsFound))
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, t.logger)

	env, err := stage.ParseAds(item.AdsJSON)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(t.cfg.Paths.StagingDir, strconv.FormatInt(item.ID, 10), "transcripts")

	transcribed := 0
	cacheHits := 0
	eligible := 0
	for i := range env.Ads {
		ad := &env.Ads[i]
		if ad.SkipReason != "" || ad.AudioPath == "" {
			continue
		}
		eligible++

		percent := float64(i) / float64(len(env.Ads)) * 100
		item.SetProgress("Transcribing", fmt.Sprintf("Transcribing ad %d/%d", i+1, len(env.Ads)), percent)
		if err := t.store.Update(ctx, item); err != nil {
			logger.Warn("failed to persist transcription progress", logging.Error(err))
		}

		if text, ok := t.cache.Lookup(ad.ArchiveID); ok {
			ad.Transcript = text
			ad.TranscriptPath = t.cache.Path(ad.ArchiveID)
			ad.TranscriptFromCache = true
			transcribed++
			cacheHits++
			t.cleanupMedia(logger, ad)
			continue
		}

		result, err := t.service.Transcribe(ctx, ad.AudioPath, outputDir)
		if err != nil {
			if ctx.Err() != nil {
				return services.Wrap(services.ErrTransient, "transcribing", "transcribe audio", "Transcription interrupted", ctx.Err())
			}
			logger.Warn(
				"skipping ad after failed transcription",
				logging.String("ad_id", ad.ArchiveID),
				logging.Error(err),
			)
			ad.SkipReason = "transcription failed"
			continue
		}

		ad.Transcript = result.Text
		ad.TranscriptPath = result.JSONPath
		if err := t.cache.Store(ad.ArchiveID, result.Text); err != nil {
			logger.Warn("failed to cache transcript", logging.String("ad_id", ad.ArchiveID), logging.Error(err))
		} else if t.cache.Enabled() {
			ad.TranscriptPath = t.cache.Path(ad.ArchiveID)
		}
		transcribed++
		t.cleanupMedia(logger, ad)
	}

	if eligible == 0 {
		return services.Wrap(
			services.ErrValidation, "transcribing", "validate inputs",
			"No downloaded audio present; run the download stage first", nil)
	}
	if transcribed == 0 {
		return services.Wrap(
			services.ErrExternalTool, "transcribing", "transcribe audio",
			"Whisper produced no transcript for any ad", nil)
	}

	encoded, err := env.Encode()
	if err != nil {
		return services.Wrap(services.ErrTransient, "transcribing", "encode envelope", "Failed to encode transcription results", err)
	}
	item.AdsJSON = encoded
	item.AdsTranscribed = int64(transcribed)
	item.SetProgressComplete("Transcribed", fmt.Sprintf("Transcribed %d of %d ads", transcribed, len(env.Ads)))

	if err := t.notifier.NotifyTranscriptionComplete(ctx, env.PageName, transcribed, len(env.Ads)); err != nil {
		logger.Warn("transcription notification failed", logging.Error(err))
	}

	logger.Info(
		"transcription complete",
		logging.Int("transcribed", transcribed),
		logging.Int("cache_hits", cacheHits),
		logging.Int("total", len(env.Ads)),
	)
	return nil
}

// cleanupMedia removes the ad's video and audio once a transcript exists.
func (t *Transcriber) cleanupMedia(logger *slog.Logger, ad *ads.Ad) {
	if t.cfg.Report.KeepMedia {
		return
	}
	removed, err := media.RemoveArtifacts(ad.VideoPath, ad.AudioPath)
	if err != nil {
		logger.Warn("failed to remove media artefacts", logging.String("ad_id", ad.ArchiveID), logging.Error(err))
		return
	}
	if removed > 0 {
		ad.VideoPath = ""
		ad.AudioPath = ""
	}
}

func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	const name = "transcriber"
	if _, err := exec.LookPath(whisper.UVXCommand); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("uvx not found: %v", err))
	}
	return stage.Healthy(name)
}
