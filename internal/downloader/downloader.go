package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"

	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/media"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/stage"
)

// Downloader fetches ad videos and extracts audio for transcription.
type Downloader struct {
	cfg       *config.Config
	store     *queue.Store
	logger    *slog.Logger
	videos    *media.Downloader
	extractor *media.Extractor
}

// NewDownloader constructs the download stage handler using default dependencies.
func NewDownloader(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Downloader {
	return NewDownloaderWithDependencies(cfg, store, logger, media.NewDownloader(), media.NewExtractor())
}

// NewDownloaderWithDependencies allows injecting collaborators (used in tests).
func NewDownloaderWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, videos *media.Downloader, extractor *media.Extractor) *Downloader {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "downloader"))
	}
	return &Downloader{cfg: cfg, store: store, logger: stageLogger, videos: videos, extractor: extractor}
}

func (d *Downloader) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, d.logger)
	item.InitProgress("Downloading", "Preparing media downloads")
	logger.Info("starting download preparation", logging.Int64("ads_found", item.AdsFound))
	return nil
}

func (d *Downloader) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, d.logger)

	env, err := stage.ParseAds(item.AdsJSON)
	if err != nil {
		return err
	}
	if len(env.Ads) == 0 {
		return services.Wrap(
			services.ErrValidation, "downloading", "validate inputs",
			"No scanned ads present; run the scan stage first", nil)
	}

	itemDir := filepath.Join(d.cfg.Paths.StagingDir, strconv.FormatInt(item.ID, 10))
	videoDir := filepath.Join(itemDir, "videos")
	audioDir := filepath.Join(itemDir, "audio")

	succeeded := 0
	for i := range env.Ads {
		ad := &env.Ads[i]
		baseName := "ad_" + ad.ArchiveID
		percent := float64(i) / float64(len(env.Ads)) * 100
		item.SetProgress("Downloading", fmt.Sprintf("Downloading ad %d/%d", i+1, len(env.Ads)), percent)
		if err := d.store.Update(ctx, item); err != nil {
			logger.Warn("failed to persist download progress", logging.Error(err))
		}

		videoPath, err := d.videos.Download(ctx, ad.LibraryURL, videoDir, baseName, nil)
		if err != nil {
			if ctx.Err() != nil {
				return services.Wrap(services.ErrTransient, "downloading", "download video", "Download interrupted", ctx.Err())
			}
			logger.Warn(
				"skipping ad after failed download",
				logging.String("ad_id", ad.ArchiveID),
				logging.Error(err),
			)
			ad.SkipReason = "video download failed"
			continue
		}
		ad.VideoPath = videoPath

		audioPath := filepath.Join(audioDir, baseName+".wav")
		if err := d.extractor.Extract(ctx, videoPath, audioPath); err != nil {
			if ctx.Err() != nil {
				return services.Wrap(services.ErrTransient, "downloading", "extract audio", "Audio extraction interrupted", ctx.Err())
			}
			logger.Warn(
				"skipping ad after failed audio extraction",
				logging.String("ad_id", ad.ArchiveID),
				logging.Error(err),
			)
			ad.SkipReason = "audio extraction failed"
			continue
		}
		ad.AudioPath = audioPath
		succeeded++
	}

	if succeeded == 0 {
		return services.Wrap(
			services.ErrExternalTool, "downloading", "download videos",
			"No ad video could be downloaded; the creatives may have expired", nil)
	}

	encoded, err := env.Encode()
	if err != nil {
		return services.Wrap(services.ErrTransient, "downloading", "encode envelope", "Failed to encode download results", err)
	}
	item.AdsJSON = encoded
	item.SetProgressComplete("Downloaded", fmt.Sprintf("Downloaded %d of %d ads", succeeded, len(env.Ads)))

	logger.Info(
		"download complete",
		logging.Int("downloaded", succeeded),
		logging.Int("total", len(env.Ads)),
	)
	return nil
}

func (d *Downloader) HealthCheck(ctx context.Context) stage.Health {
	const name = "downloader"
	if _, err := exec.LookPath(d.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("ffmpeg not found: %v", err))
	}
	return stage.Healthy(name)
}
