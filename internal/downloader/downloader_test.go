package downloader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"adscribe/internal/ads"
	"adscribe/internal/logging"
	"adscribe/internal/media"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/testsupport"
)

func seedScannedItem(t *testing.T, store *queue.Store, archiveIDs ...string) *queue.Item {
	t.Helper()
	item := testsupport.NewAnalysis(t, store, "123456789012345")

	env := ads.Envelope{PageID: "123456789012345", PageName: "Acme Tools"}
	for _, id := range archiveIDs {
		env.Ads = append(env.Ads, ads.Ad{
			ArchiveID:  id,
			LibraryURL: fmt.Sprintf("https://www.facebook.com/ads/library/?id=%s", id),
		})
	}
	encoded, err := env.Encode()
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	item.AdsJSON = encoded
	item.AdsFound = int64(len(archiveIDs))
	item.Status = queue.StatusScanned
	if err := store.Update(context.Background(), item); err != nil {
		t.Fatalf("update item: %v", err)
	}
	return item
}

func containsID(url, id string) bool {
	return len(url) >= len(id) && url[len(url)-len(id):] == id
}

func testWrite(t *testing.T, path string) {
	t.Helper()
	testsupport.WriteFile(t, path, 4096)
}

func TestExecuteDownloadsAllAds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedScannedItem(t, store, "111122223333", "444455556666")

	videos := media.NewStubDownloader(func(_ context.Context, _ string, outputPath string) error {
		testWrite(t, outputPath)
		return nil
	})
	extractor := media.NewStubExtractor(func(_ context.Context, _, audioPath string) error {
		testWrite(t, audioPath)
		return nil
	})
	handler := NewDownloaderWithDependencies(cfg, store, logging.NewNop(), videos, extractor)

	if err := handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	env, err := ads.Parse(item.AdsJSON)
	if err != nil {
		t.Fatalf("parse envelope: %v", err)
	}
	for _, ad := range env.Ads {
		if ad.VideoPath == "" || ad.AudioPath == "" {
			t.Errorf("ad %s missing artefacts: %+v", ad.ArchiveID, ad)
		}
		if ad.SkipReason != "" {
			t.Errorf("unexpected skip reason for %s: %s", ad.ArchiveID, ad.SkipReason)
		}
	}
}

func TestExecuteToleratesPartialFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedScannedItem(t, store, "111122223333", "444455556666")

	videos := media.NewStubDownloader(func(_ context.Context, url string, outputPath string) error {
		if containsID(url, "444455556666") {
			return errors.New("gone")
		}
		testWrite(t, outputPath)
		return nil
	})
	extractor := media.NewStubExtractor(func(_ context.Context, _, audioPath string) error {
		testWrite(t, audioPath)
		return nil
	})
	handler := NewDownloaderWithDependencies(cfg, store, logging.NewNop(), videos, extractor)

	if err := handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	env, _ := ads.Parse(item.AdsJSON)
	var skipped, downloaded int
	for _, ad := range env.Ads {
		if ad.SkipReason != "" {
			skipped++
		}
		if ad.AudioPath != "" {
			downloaded++
		}
	}
	if skipped != 1 || downloaded != 1 {
		t.Fatalf("skipped=%d downloaded=%d, want 1/1", skipped, downloaded)
	}
}

func TestExecuteFailsWhenNothingDownloads(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedScannedItem(t, store, "111122223333")

	videos := media.NewStubDownloader(func(context.Context, string, string) error {
		return errors.New("all gone")
	})
	extractor := media.NewStubExtractor(func(context.Context, string, string) error {
		return nil
	})
	handler := NewDownloaderWithDependencies(cfg, store, logging.NewNop(), videos, extractor)

	err := handler.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got: %v", err)
	}
}

func TestExecuteWithoutScanIsValidationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.NewAnalysis(t, store, "123456789012345")

	handler := NewDownloaderWithDependencies(cfg, store, logging.NewNop(), media.NewDownloader(), media.NewExtractor())
	err := handler.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}
