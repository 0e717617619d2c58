// Package daemonrun wires the daemon process together: logging, queue
// store, workflow stages, IPC, and signal handling.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"adscribe/internal/analyzer"
	"adscribe/internal/config"
	"adscribe/internal/daemon"
	"adscribe/internal/downloader"
	"adscribe/internal/ipc"
	"adscribe/internal/logging"
	"adscribe/internal/notifications"
	"adscribe/internal/queue"
	"adscribe/internal/reporter"
	"adscribe/internal/scanner"
	"adscribe/internal/services/whisper"
	"adscribe/internal/transcriber"
	"adscribe/internal/workflow"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the adscribe daemon runtime loop and blocks until SIGINT or
// SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("adscribe-%s.log", runID))

	logger, err := logging.New(logging.Options{
		Level:            opts.LogLevel,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logDependencySnapshot(logger, cfg)
	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update adscribe.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "adscribe-*.log", Exclude: []string{logPath}},
		logging.RetentionTarget{Dir: filepath.Join(cfg.Paths.LogDir, "items"), Pattern: "*.log"},
	)

	pidPath := filepath.Join(cfg.Paths.LogDir, "adscribed.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := queue.Open(cfg)
	if err != nil {
		logger.Error("open queue store", logging.Error(err))
		return err
	}
	defer store.Close()

	notifier := notifications.NewService(cfg)
	manager := workflow.NewManagerWithNotifier(cfg, store, logger, notifier)
	registerStages(manager, cfg, store, logger, notifier)

	if err := manager.RunPreflightChecks(signalCtx, logger); err != nil {
		logger.Warn("preflight checks reported problems",
			logging.Error(err),
			logging.String(logging.FieldEventType, "preflight_warning"),
			logging.String(logging.FieldImpact, "some stages may fail until resolved"),
		)
	}

	d, err := daemon.New(cfg, store, logger, manager, logPath)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	socketPath := filepath.Join(cfg.Paths.LogDir, "adscribed.sock")
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check configuration and queue database access"),
			logging.String(logging.FieldImpact, "daemon will not process queue items"),
		)
	}

	<-signalCtx.Done()
	logger.Info("adscribe daemon shutting down")
	return nil
}

func registerStages(mgr *workflow.Manager, cfg *config.Config, store *queue.Store, logger *slog.Logger, notifier notifications.Service) {
	if mgr == nil || cfg == nil {
		return
	}
	mgr.ConfigureStages(workflow.StageSet{
		Scanner:     scanner.NewScanner(cfg, store, logger),
		Downloader:  downloader.NewDownloader(cfg, store, logger),
		Transcriber: transcriber.NewTranscriber(cfg, store, logger),
		Analyzer:    analyzer.NewAnalyzer(cfg, store, logger),
		Reporter:    reporter.NewReporterWithDependencies(cfg, store, logger, notifier),
	})
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "adscribe.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	ffmpeg := cfg.FFmpegBinary()
	ytdlp := cfg.YtdlpBinary()
	logger.Info("dependency snapshot",
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.Bool("ffmpeg_available", binaryAvailable(ffmpeg)),
		logging.String("ffmpeg_binary", ffmpeg),
		logging.Bool("uvx_available", binaryAvailable(whisper.UVXCommand)),
		logging.Bool("ytdlp_managed", binaryAvailable(ytdlp)),
		logging.String("ytdlp_binary", ytdlp),
	)
}

func binaryAvailable(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
