package media

import "context"

// NewStubDownloader returns a Downloader whose fetch step is replaced by fn.
// Intended for stage tests that should not shell out to yt-dlp.
func NewStubDownloader(fn func(ctx context.Context, url, outputPath string) error) *Downloader {
	return &Downloader{run: func(ctx context.Context, url, outputPath string, _ ProgressFn) error {
		return fn(ctx, url, outputPath)
	}}
}

// NewStubExtractor returns an Extractor whose conversion step is replaced by
// fn. Intended for stage tests that should not shell out to ffmpeg.
func NewStubExtractor(fn func(ctx context.Context, videoPath, audioPath string) error) *Extractor {
	return &Extractor{run: fn}
}
