package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"adscribe/internal/testsupport"
)

func TestDownloadReusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ad_111122223333.mp4")
	testsupport.WriteFile(t, existing, 4096)

	downloader := &Downloader{run: func(context.Context, string, string, ProgressFn) error {
		t.Error("run must not be called when a valid file exists")
		return nil
	}}

	path, err := downloader.Download(context.Background(), "https://example.com/ad", dir, "ad_111122223333", nil)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != existing {
		t.Fatalf("path = %q, want %q", path, existing)
	}
}

func TestDownloadWritesNewFile(t *testing.T) {
	dir := t.TempDir()
	downloader := &Downloader{run: func(_ context.Context, _ string, outputPath string, _ ProgressFn) error {
		testsupport.WriteFile(t, outputPath, 4096)
		return nil
	}}

	path, err := downloader.Download(context.Background(), "https://example.com/ad", dir, "ad_1", nil)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !ValidFile(path) {
		t.Fatalf("expected valid file at %s", path)
	}
}

func TestDownloadRejectsTinyResult(t *testing.T) {
	dir := t.TempDir()
	downloader := &Downloader{run: func(_ context.Context, _ string, outputPath string, _ ProgressFn) error {
		testsupport.WriteFile(t, outputPath, 10)
		return nil
	}}

	if _, err := downloader.Download(context.Background(), "https://example.com/ad", dir, "ad_1", nil); err == nil {
		t.Fatal("expected error for truncated download")
	}
}

func TestDownloadPropagatesRunError(t *testing.T) {
	dir := t.TempDir()
	runErr := errors.New("extractor failed")
	downloader := &Downloader{run: func(context.Context, string, string, ProgressFn) error {
		return runErr
	}}

	_, err := downloader.Download(context.Background(), "https://example.com/ad", dir, "ad_1", nil)
	if !errors.Is(err, runErr) {
		t.Fatalf("expected wrapped run error, got: %v", err)
	}
}

func TestExtractReusesExistingAudio(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "ad_1.wav")
	testsupport.WriteFile(t, audioPath, 4096)

	extractor := &Extractor{run: func(context.Context, string, string) error {
		t.Error("run must not be called when audio already exists")
		return nil
	}}

	if err := extractor.Extract(context.Background(), filepath.Join(dir, "ad_1.mp4"), audioPath); err != nil {
		t.Fatalf("Extract: %v", err)
	}
}

func TestExtractRejectsEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{run: func(context.Context, string, string) error {
		return nil
	}}

	err := extractor.Extract(context.Background(), filepath.Join(dir, "ad_1.mp4"), filepath.Join(dir, "ad_1.wav"))
	if err == nil {
		t.Fatal("expected error when conversion produces nothing")
	}
}

func TestValidFile(t *testing.T) {
	dir := t.TempDir()
	if ValidFile(filepath.Join(dir, "missing.mp4")) {
		t.Fatal("missing file must not validate")
	}

	small := filepath.Join(dir, "small.mp4")
	testsupport.WriteFile(t, small, 10)
	if ValidFile(small) {
		t.Fatal("tiny file must not validate")
	}

	ok := filepath.Join(dir, "ok.mp4")
	testsupport.WriteFile(t, ok, 4096)
	if !ValidFile(ok) {
		t.Fatal("expected valid file")
	}

	if ValidFile(dir) {
		t.Fatal("directory must not validate")
	}
}

func TestRemoveArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.wav")
	testsupport.WriteFile(t, a, 2048)
	testsupport.WriteFile(t, b, 2048)

	removed, err := RemoveArtifacts(a, b, filepath.Join(dir, "missing.mp4"), "")
	if err != nil {
		t.Fatalf("RemoveArtifacts: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, statErr := os.Stat(a); !os.IsNotExist(statErr) {
		t.Fatal("expected a.mp4 removed")
	}
}
