// Package logging provides the diagnostic logs written next to each board build.
// Two append-only files live in build/<board>/: idf_invocations.log holds one
// command line per idf.py call, pio_targets.log one line per requested target list.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/runoshun/uf2idf/internal/domain"
)

// Ensure RunLog implements domain.RunLog interface.
var _ domain.RunLog = (*RunLog)(nil)

// RunLog appends records to the per-board log files.
// Files are opened lazily and kept open until Close.
type RunLog struct {
	files map[string]*os.File
	mu    sync.Mutex
}

// NewRunLog creates a RunLog with no open files.
func NewRunLog() *RunLog {
	return &RunLog{
		files: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, levelStr string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}))
}

// AppendInvocation records one invoked command line.
func (l *RunLog) AppendInvocation(buildDir, commandLine string) error {
	return l.appendLine(domain.InvocationLogPath(buildDir), commandLine)
}

// AppendTargets records the requested targets as one comma-joined line.
func (l *RunLog) AppendTargets(buildDir string, targets []string) error {
	return l.appendLine(domain.TargetLogPath(buildDir), strings.Join(targets, ","))
}

func (l *RunLog) appendLine(path, line string) error {
	f, err := l.ensureFile(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, line+"\n"); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ensureFile opens or returns the log file at path, creating its directory.
func (l *RunLog) ensureFile(path string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.files[path]; ok {
		return f, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// Log files are append-only and need read access by the build user's group
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.files[path] = f
	return f, nil
}

// Close closes all open log files.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	for path, f := range l.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.files, path)
	}
	return lastErr
}
