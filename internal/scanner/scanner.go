package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adscribe/internal/ads"
	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/notifications"
	"adscribe/internal/preflight"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/services/adslibrary"
	"adscribe/internal/stage"
)

// Scanner resolves the page and collects its video ads from the library.
type Scanner struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	client   *adslibrary.Client
	notifier notifications.Service
}

// NewScanner constructs the scan stage handler using default dependencies.
func NewScanner(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Scanner {
	return NewScannerWithDependencies(cfg, store, logger, adslibrary.NewClient(cfg), notifications.NewService(cfg))
}

// NewScannerWithDependencies allows injecting collaborators (used in tests).
func NewScannerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, client *adslibrary.Client, notifier notifications.Service) *Scanner {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "scanner"))
	}
	return &Scanner{cfg: cfg, store: store, logger: stageLogger, client: client, notifier: notifier}
}

func (s *Scanner) Prepare(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, s.logger)
	item.InitProgress("Scanning", "Resolving page")
	logger.Info("starting scan preparation", logging.String("page_ref", strings.TrimSpace(item.PageRef)))
	return nil
}

func (s *Scanner) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, s.logger)

	ref, err := adslibrary.ParsePageRef(item.PageRef)
	if err != nil {
		return services.Wrap(
			services.ErrValidation, "scanning", "parse page reference",
			"Unrecognized page reference; provide a Facebook or Instagram page URL, numeric page ID, or page name", err)
	}

	pageID, err := s.client.ResolvePageID(ctx, ref)
	if err != nil {
		if ref.SearchName != "" {
			return services.Wrap(
				services.ErrNotFound, "scanning", "resolve page",
				fmt.Sprintf("No page found for %q in the ads library", ref.SearchName), err)
		}
		return services.Wrap(
			services.ErrExternalTool, "scanning", "resolve page",
			"Ads library request failed while resolving the page", err)
	}
	item.PageID = pageID
	item.SetProgress("Scanning", "Fetching ads", 25)
	if err := s.store.Update(ctx, item); err != nil {
		logger.Warn("failed to persist scan progress", logging.Error(err))
	}

	html, err := s.client.FetchVideoAdsPage(ctx, pageID)
	if err != nil {
		return services.Wrap(
			services.ErrExternalTool, "scanning", "fetch ads",
			"Ads library request failed while listing video ads", err)
	}

	pageName := adslibrary.ExtractPageName(html)
	found := adslibrary.ExtractAds(html, s.cfg.AdsLibrary.MaxAds)
	if len(found) == 0 {
		return services.Wrap(
			services.ErrNotFound, "scanning", "extract ads",
			"The page runs no video ads; nothing to analyze", nil)
	}

	envelope := ads.Envelope{
		PageID:    pageID,
		PageName:  pageName,
		PageURL:   fmt.Sprintf("https://www.facebook.com/%s", pageID),
		Country:   s.cfg.AdsLibrary.Country,
		ScannedAt: time.Now().UTC(),
		Ads:       found,
	}
	encoded, err := envelope.Encode()
	if err != nil {
		return services.Wrap(services.ErrTransient, "scanning", "encode envelope", "Failed to encode scan results", err)
	}

	item.PageName = pageName
	item.AdsJSON = encoded
	item.AdsFound = int64(len(found))
	item.SetProgressComplete("Scanned", fmt.Sprintf("Found %d video ads", len(found)))

	logger.Info(
		"scan complete",
		logging.String("page_id", pageID),
		logging.String("page_name", pageName),
		logging.Int("ads_found", len(found)),
	)
	if s.notifier != nil {
		if err := s.notifier.NotifyScanComplete(ctx, item.DisplayName(), len(found)); err != nil {
			logger.Warn("scan notification failed", logging.Error(err))
		}
	}
	return nil
}

func (s *Scanner) HealthCheck(ctx context.Context) stage.Health {
	const name = "scanner"
	result := preflight.CheckAdsLibrary(ctx, s.cfg.AdsLibrary.BaseURL, s.cfg.AdsLibrary.UserAgent)
	if !result.Passed {
		return stage.Unhealthy(name, result.Detail)
	}
	return stage.Healthy(name)
}
