package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/runoshun/uf2idf/internal/domain"
)

// ShowLogsInput contains the parameters for showing a board's diagnostic log.
type ShowLogsInput struct {
	ProjectDir string // Project root containing platformio.ini
	Env        string // PlatformIO environment; empty selects the default
	Board      string // Board override
	Lines      int    // Number of lines to display from the end (0 = all)
	Targets    bool   // Show the target log instead of the invocation log
}

// ShowLogsOutput contains the result of showing a diagnostic log.
type ShowLogsOutput struct {
	Board   string // Resolved board identifier
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the per-board diagnostic logs.
type ShowLogs struct {
	project domain.ProjectReader
	logger  *slog.Logger
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(project domain.ProjectReader, logger *slog.Logger) *ShowLogs {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ShowLogs{
		project: project,
		logger:  logger,
	}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	opts, err := readProject(uc.project, in.Env, uc.logger)
	if err != nil {
		return nil, err
	}
	override := opts.BoardOverride
	if in.Board != "" {
		override = in.Board
	}
	board, err := domain.ResolveBoard(opts.Env, override)
	if err != nil {
		return nil, err
	}

	buildDir := domain.BuildDir(in.ProjectDir, board)
	logPath := domain.InvocationLogPath(buildDir)
	if in.Targets {
		logPath = domain.TargetLogPath(buildDir)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", board, domain.ErrNoLog)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// If lines is specified, get only the last N lines
	result := strings.TrimSuffix(string(content), "\n")
	if in.Lines > 0 {
		lines := strings.Split(result, "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n")
	}
	if result != "" {
		result += "\n"
	}

	return &ShowLogsOutput{
		Board:   board,
		LogPath: logPath,
		Content: result,
	}, nil
}
