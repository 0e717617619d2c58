package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// Extractor converts downloaded videos into transcription-ready audio.
type Extractor struct {
	// run executes the conversion. Overridable for tests.
	run func(ctx context.Context, videoPath, audioPath string) error
}

// NewExtractor constructs an ffmpeg backed audio extractor.
func NewExtractor() *Extractor {
	return &Extractor{run: runFFmpeg}
}

// Extract produces a mono 16 kHz WAV at audioPath from the given video.
// An existing non-trivial file is reused.
func (e *Extractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	if ValidFile(audioPath) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(audioPath), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}
	if err := e.run(ctx, videoPath, audioPath); err != nil {
		return fmt.Errorf("extract audio from %s: %w", filepath.Base(videoPath), err)
	}
	if !ValidFile(audioPath) {
		return fmt.Errorf("extract audio from %s: produced no usable file", filepath.Base(videoPath))
	}
	return nil
}

func runFFmpeg(ctx context.Context, videoPath, audioPath string) error {
	audioStream := ffmpeg_go.Input(videoPath).Audio()
	return ffmpeg_go.OutputContext(ctx, []*ffmpeg_go.Stream{audioStream}, audioPath,
		ffmpeg_go.KwArgs{
			"ac":       "1",
			"ar":       "16000",
			"vn":       "",
			"loglevel": "error",
		}).
		OverWriteOutput().
		Run()
}
