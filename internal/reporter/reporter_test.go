package reporter

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"adscribe/internal/analysis"
	"adscribe/internal/logging"
	"adscribe/internal/notifications"
	"adscribe/internal/queue"
	"adscribe/internal/services"
	"adscribe/internal/testsupport"
)

func seedAnalyzedItem(t *testing.T, store *queue.Store) *queue.Item {
	t.Helper()
	item := testsupport.NewAnalysis(t, store, "123456789012345")

	result := analysis.Result{
		PageID:    "123456789012345",
		PageName:  "Acme Tools",
		TotalAds:  1,
		Originals: 1,
		Scripts: []analysis.Script{{
			ArchiveID:    "111122223333",
			Transcript:   "Stop scrolling, this gadget replaced five tools.",
			DurationDays: 104,
			IsOriginal:   true,
			Score:        120,
			Rank:         1,
		}},
	}
	encoded, err := result.Encode()
	if err != nil {
		t.Fatalf("encode analysis: %v", err)
	}
	item.AnalysisJSON = encoded
	item.Status = queue.StatusAnalyzed
	if err := store.Update(context.Background(), item); err != nil {
		t.Fatalf("update item: %v", err)
	}
	return item
}

func TestExecuteRendersReport(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedAnalyzedItem(t, store)

	handler := NewReporterWithDependencies(cfg, store, logging.NewNop(), notifications.NewService(cfg))
	if err := handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if item.ReportPath == "" {
		t.Fatal("report path not recorded")
	}
	if filepath.Dir(item.ReportPath) != cfg.Paths.ReportsDir {
		t.Errorf("report written outside reports dir: %s", item.ReportPath)
	}
	if !strings.HasSuffix(item.ReportPath, ".pdf") {
		t.Errorf("unexpected report name: %s", item.ReportPath)
	}
}

func TestExecuteUsesInjectedGenerator(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedAnalyzedItem(t, store)

	handler := NewReporterWithDependencies(cfg, store, logging.NewNop(), notifications.NewService(cfg))
	handler.generate = func(result analysis.Result, outputDir string, now time.Time) (string, error) {
		return filepath.Join(outputDir, "stub.pdf"), nil
	}

	if err := handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if filepath.Base(item.ReportPath) != "stub.pdf" {
		t.Fatalf("generator not used: %s", item.ReportPath)
	}
}

func TestExecuteGeneratorFailureIsTransient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := seedAnalyzedItem(t, store)

	handler := NewReporterWithDependencies(cfg, store, logging.NewNop(), notifications.NewService(cfg))
	handler.generate = func(analysis.Result, string, time.Time) (string, error) {
		return "", errors.New("disk full")
	}

	err := handler.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got: %v", err)
	}
}

func TestExecuteWithoutAnalysisIsValidationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.NewAnalysis(t, store, "123456789012345")

	handler := NewReporterWithDependencies(cfg, store, logging.NewNop(), notifications.NewService(cfg))
	err := handler.Execute(context.Background(), item)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	handler := NewReporterWithDependencies(cfg, store, logging.NewNop(), notifications.NewService(cfg))
	if health := handler.HealthCheck(context.Background()); !health.Ready {
		t.Fatalf("expected healthy, got %+v", health)
	}
}
