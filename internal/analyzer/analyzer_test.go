package analyzer

import (
	"context"
	"errors"
	"testing"

	"adscribe/internal/ads"
	"adscribe/internal/analysis"
	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/testsupport"
)

func seedTranscribedItem(t *testing.T, store *queue.Store, transcripts map[string]string) *queue.Item {
	t.Helper()
	item := testsupport.NewAnalysis(t, store, "123456789012345")

	env := ads.Envelope{PageID: "123456789012345", PageName: "Acme Tools"}
	for id, transcript := range transcripts {
		env.Ads = append(env.Ads, ads.Ad{ArchiveID: id, Transcript: transcript})
	}
	encoded, err := env.Encode()
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	item.AdsJSON = encoded
	item.AdsTranscribed = int64(len(transcripts))
	item.Status = queue.StatusTranscribed
	if err := store.Update(context.Background(), item); err != nil {
		t.Fatalf("update item: %v", err)
	}
	return item
}

func TestExecuteStoresAnalysis(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedTranscribedItem(t, store, map[string]string{
		"111122223333": "this kitchen gadget replaced five tools and saves me time every day",
		"444455556666": "our accounting software closes your books in minutes with no stress",
	})

	handler := NewAnalyzer(cfg, store, logging.NewNop())
	if err := handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	result, err := analysis.Parse(item.AnalysisJSON)
	if err != nil {
		t.Fatalf("parse analysis: %v", err)
	}
	if len(result.Scripts) != 2 {
		t.Fatalf("scripts = %d, want 2", len(result.Scripts))
	}
	if result.PageName != "Acme Tools" {
		t.Errorf("page name = %q", result.PageName)
	}
	for _, s := range result.Scripts {
		if s.Score == 0 || s.Rank == 0 {
			t.Errorf("script missing score or rank: %+v", s)
		}
	}
}

func TestExecuteWithoutTranscriptsIsValidationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedTranscribedItem(t, store, nil)

	handler := NewAnalyzer(cfg, store, logging.NewNop())
	err := handler.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestHealthCheckAlwaysHealthy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewAnalyzer(cfg, store, logging.NewNop())
	if health := handler.HealthCheck(context.Background()); !health.Ready {
		t.Fatalf("expected healthy, got %+v", health)
	}
}
