package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// minValidFileSize filters out empty or truncated downloads.
const minValidFileSize = 1000

// downloadTimeout bounds a single ad video download.
const downloadTimeout = 2 * time.Minute

// ProgressFn receives throttled download progress updates.
type ProgressFn func(percent float64, message string)

// Downloader fetches ad videos via yt-dlp.
type Downloader struct {
	// run executes the download command. Overridable for tests.
	run func(ctx context.Context, url, outputPath string, progress ProgressFn) error
}

// NewDownloader constructs a yt-dlp backed downloader.
func NewDownloader() *Downloader {
	return &Downloader{run: runYtdlp}
}

// Download fetches the video behind url into destDir using the given base
// name. An existing non-trivial file is reused. Returns the video path.
func (d *Downloader) Download(ctx context.Context, url, destDir, baseName string, progress ProgressFn) (string, error) {
	outputPath := filepath.Join(destDir, baseName+".mp4")
	if ValidFile(outputPath) {
		return outputPath, nil
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	dlCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	if err := d.run(dlCtx, url, outputPath, progress); err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if !ValidFile(outputPath) {
		return "", fmt.Errorf("download %s: produced no usable file", url)
	}
	return outputPath, nil
}

func runYtdlp(ctx context.Context, url, outputPath string, progress ProgressFn) error {
	dl := ytdlp.New().
		Format("best[ext=mp4]/best").
		NoPlaylist().
		Output(outputPath).
		Progress().
		Newline()

	if progress != nil {
		dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			if update.Status != ytdlp.ProgressStatusDownloading {
				return
			}
			progress(update.Percent(), update.PercentString())
		})
	}

	_, err := dl.Run(ctx, url)
	return err
}

// ValidFile reports whether path holds a plausibly complete media file.
func ValidFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > minValidFileSize
}
