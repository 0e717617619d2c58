package workflow

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adscribe/internal/config"
	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/textutil"
)

// ItemLogger manages dedicated log files for individual analysis runs.
type ItemLogger struct {
	baseDir string
	cfg     *config.Config
}

// NewItemLogger creates a per-item logger rooted in the configured log
// directory.
func NewItemLogger(cfg *config.Config) *ItemLogger {
	dir := ""
	if cfg != nil && cfg.Paths.LogDir != "" {
		dir = filepath.Join(cfg.Paths.LogDir, "items")
	}
	return &ItemLogger{baseDir: dir, cfg: cfg}
}

// Ensure prepares the log directory and file path for an item. The second
// return value reports whether a new path was assigned.
func (l *ItemLogger) Ensure(item *queue.Item) (string, bool, error) {
	if item == nil {
		return "", false, fmt.Errorf("queue item is nil")
	}
	if strings.TrimSpace(l.baseDir) == "" {
		return "", false, fmt.Errorf("item log directory not configured")
	}
	created := false
	if strings.TrimSpace(item.ItemLogPath) == "" {
		item.ItemLogPath = filepath.Join(l.baseDir, l.filename(item))
		created = true
	}
	if err := os.MkdirAll(filepath.Dir(item.ItemLogPath), 0o755); err != nil {
		return "", false, fmt.Errorf("ensure item log directory: %w", err)
	}
	return item.ItemLogPath, created, nil
}

// CreateHandler builds a slog.Handler writing to the specified path.
func (l *ItemLogger) CreateHandler(path string) (slog.Handler, error) {
	level := "info"
	format := "json"
	if l.cfg != nil {
		if strings.TrimSpace(l.cfg.Logging.Level) != "" {
			level = l.cfg.Logging.Level
		}
		if strings.TrimSpace(l.cfg.Logging.Format) != "" {
			format = l.cfg.Logging.Format
		}
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           format,
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	})
	if err != nil {
		return nil, err
	}
	return logger.Handler(), nil
}

func (l *ItemLogger) filename(item *queue.Item) string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	name := textutil.SanitizeToken(item.DisplayName())
	return fmt.Sprintf("%s-item-%d-%s.log", timestamp, item.ID, name)
}
