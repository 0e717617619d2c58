package setup

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"adscribe/internal/config"
	"adscribe/internal/deps"
	"adscribe/internal/logging"
)

// Runner executes the environment bootstrap sequence.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	installer Installer

	// fetchYtdlp places the managed yt-dlp binary at the given path.
	// Overridable for tests.
	fetchYtdlp func(ctx context.Context, dest string) error
	// probe returns the first version line of a tool, or "" on failure.
	// Overridable for tests.
	probe func(ctx context.Context, command string, args ...string) string
}

// NewRunner constructs a Runner with the platform installer.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "setup"),
		installer:  NewInstaller(),
		fetchYtdlp: installManagedYtdlp,
		probe:      deps.Version,
	}
}

// Run provisions the host. It stops at the first failing step and returns
// a wrapped error naming it; completed steps are never rolled back since
// every step is idempotent.
func (r *Runner) Run(ctx context.Context) error {
	if runtime.GOOS == "darwin" {
		if err := r.ensurePackageManager(ctx); err != nil {
			return err
		}
		if err := r.installFFmpeg(ctx); err != nil {
			return err
		}
	} else {
		r.logger.Info("skipping package manager bootstrap", "os", runtime.GOOS)
	}

	if err := r.createDirectories(); err != nil {
		return err
	}
	if err := r.installYtdlp(ctx); err != nil {
		return err
	}
	if err := r.verifyTools(ctx); err != nil {
		return err
	}

	r.logger.Info("environment ready")
	return nil
}

func (r *Runner) ensurePackageManager(ctx context.Context) error {
	r.logger.Info("checking package manager", "installer", r.installer.Name())
	if err := r.installer.EnsureSelf(ctx); err != nil {
		return fmt.Errorf("bootstrap %s: %w", r.installer.Name(), err)
	}
	return nil
}

func (r *Runner) installFFmpeg(ctx context.Context) error {
	r.logger.Info("installing ffmpeg")
	if err := r.installer.Install(ctx, "ffmpeg"); err != nil {
		return fmt.Errorf("install ffmpeg: %w", err)
	}
	return nil
}

func (r *Runner) createDirectories() error {
	r.logger.Info("creating runtime directories")
	if err := r.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("create runtime directories: %w", err)
	}
	return nil
}

func (r *Runner) installYtdlp(ctx context.Context) error {
	dest := r.cfg.YtdlpBinary()
	r.logger.Info("installing managed yt-dlp", "path", dest)
	if err := r.fetchYtdlp(ctx, dest); err != nil {
		return fmt.Errorf("install managed yt-dlp: %w", err)
	}
	return nil
}

// verifyTools probes each external tool for a version response. A tool that
// cannot report its version is treated as broken.
func (r *Runner) verifyTools(ctx context.Context) error {
	probes := []struct {
		name    string
		command string
		args    []string
	}{
		{name: "ffmpeg", command: r.cfg.FFmpegBinary(), args: []string{"-version"}},
		{name: "yt-dlp", command: r.cfg.YtdlpBinary(), args: []string{"--version"}},
		{name: "uvx", command: "uvx", args: []string{"--version"}},
	}
	for _, p := range probes {
		version := r.probe(ctx, p.command, p.args...)
		if version == "" {
			return fmt.Errorf("verify %s: %q did not respond to a version probe", p.name, p.command)
		}
		r.logger.Info("verified tool", "tool", p.name, "version", version)
	}
	return nil
}
