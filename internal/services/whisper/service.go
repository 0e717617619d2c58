package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"adscribe/internal/config"
	"adscribe/internal/language"
)

// UVXCommand is the uv tool runner used to execute whisper.
const UVXCommand = "uvx"

// whisperPackage is the PyPI distribution that provides the whisper CLI.
const whisperPackage = "openai-whisper"

// Service transcribes audio files by shelling out to whisper via uvx.
type Service struct {
	model    string
	language string
	timeout  time.Duration
	run      func(ctx context.Context, name string, args ...string) error
}

// Result holds the output of a single transcription run.
type Result struct {
	Text     string
	JSONPath string
}

// NewService creates a transcription service from configuration.
func NewService(cfg *config.Config) *Service {
	lang := language.Normalize(cfg.Transcription.Language)
	if lang == "" {
		lang = "en"
	}
	return &Service{
		model:    cfg.Transcription.Model,
		language: lang,
		timeout:  time.Duration(cfg.Transcription.TimeoutSeconds) * time.Second,
		run:      runCommand,
	}
}

// WithCommandRunner replaces the command execution function. Used by tests
// to avoid invoking uvx.
func (s *Service) WithCommandRunner(run func(ctx context.Context, name string, args ...string) error) *Service {
	s.run = run
	return s
}

// Transcribe runs whisper on an audio file and returns the transcript text.
// The JSON sidecar whisper produces is left in outputDir for inspection.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) (Result, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return Result{}, fmt.Errorf("audio file not accessible: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create transcription output dir: %w", err)
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.run(runCtx, UVXCommand, s.buildArgs(audioPath, outputDir)...); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("transcription timed out after %s: %w", s.timeout, err)
		}
		return Result{}, err
	}

	jsonPath := transcriptJSONPath(audioPath, outputDir)
	text, err := LoadTranscript(jsonPath)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, JSONPath: jsonPath}, nil
}

func (s *Service) buildArgs(audioPath, outputDir string) []string {
	return []string{
		"--from", whisperPackage,
		"whisper", audioPath,
		"--model", s.model,
		"--language", s.language,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--fp16", "False",
		"--verbose", "False",
	}
}

// transcriptJSONPath returns where whisper writes its JSON output for a
// given input file: the input base name with the extension swapped.
func transcriptJSONPath(audioPath, outputDir string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+".json")
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
