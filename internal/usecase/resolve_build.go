// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runoshun/uf2idf/internal/domain"
)

// ResolveBuildInput contains the parameters for resolving a board build.
// Flag values override what platformio.ini says.
type ResolveBuildInput struct {
	ProjectDir  string   // Project root containing platformio.ini (required)
	Env         string   // PlatformIO environment; empty selects the default
	Board       string   // Board override from the command line
	Port        string   // Serial port override
	Speed       string   // Upload speed override
	BaseEnv     []string // Environment inherited by idf.py
	SkipPrepare bool     // Compute paths without touching the filesystem
}

// ResolveBuildOutput contains the resolved build context.
type ResolveBuildOutput struct {
	Context   *domain.BuildContext
	Workspace *domain.WorkspaceInfo
	Config    *domain.Config
}

// ResolveBuild turns project and tool configuration into a BuildContext.
type ResolveBuild struct {
	project   domain.ProjectReader
	config    domain.ConfigLoader
	tools     domain.ToolLocator
	workspace domain.Workspace
	reporter  domain.Reporter
	logger    *slog.Logger
}

// NewResolveBuild creates a new ResolveBuild use case.
func NewResolveBuild(
	project domain.ProjectReader,
	config domain.ConfigLoader,
	tools domain.ToolLocator,
	workspace domain.Workspace,
	reporter domain.Reporter,
	logger *slog.Logger,
) *ResolveBuild {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ResolveBuild{
		project:   project,
		config:    config,
		tools:     tools,
		workspace: workspace,
		reporter:  reporter,
		logger:    logger,
	}
}

// Execute resolves the board, prepares its workspace and locates idf.py.
func (uc *ResolveBuild) Execute(_ context.Context, in ResolveBuildInput) (*ResolveBuildOutput, error) {
	opts, err := readProject(uc.project, in.Env, uc.logger)
	if err != nil {
		return nil, err
	}
	if in.Board != "" {
		opts.BoardOverride = in.Board
	}
	if in.Port != "" {
		opts.UploadPort = in.Port
	}
	if in.Speed != "" {
		opts.UploadSpeed = in.Speed
	}

	board, err := domain.ResolveBoard(opts.Env, opts.BoardOverride)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("board resolved", "env", opts.Env, "board", board)

	cfg, err := uc.config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ws := &domain.WorkspaceInfo{
		BuildDir:      domain.BuildDir(in.ProjectDir, board),
		SdkconfigPath: domain.RootSdkconfigPath(in.ProjectDir, board),
	}
	if !in.SkipPrepare {
		ws, err = uc.workspace.Prepare(in.ProjectDir, board)
		if err != nil {
			return nil, fmt.Errorf("prepare workspace: %w", err)
		}
	}

	tool, err := uc.tools.Locate(cfg)
	if err != nil {
		return nil, err
	}

	uc.reporter.Field("PYTHONEXE", tool.Python)
	uc.reporter.Field("IDF_PYTHON_ENV_PATH", tool.PythonEnv)
	uc.reporter.Field("IDF_PY", cfg.IDF.Py)
	uc.logger.Debug("idf.py located",
		"source", string(tool.Source),
		"command", strings.Join(tool.Command, " "))

	return &ResolveBuildOutput{
		Context: &domain.BuildContext{
			Tool:         tool,
			ProjectDir:   in.ProjectDir,
			Env:          opts.Env,
			Board:        board,
			BuildDir:     ws.BuildDir,
			Port:         strings.TrimSpace(opts.UploadPort),
			Speed:        strings.TrimSpace(opts.UploadSpeed),
			SkipPrefixes: cfg.CMake.SkipPrefixes,
			BaseEnv:      in.BaseEnv,
		},
		Workspace: ws,
		Config:    cfg,
	}, nil
}

// readProject returns the environment options. Without platformio.ini an
// explicitly named environment still resolves, so the tool works outside
// PlatformIO projects.
func readProject(project domain.ProjectReader, env string, logger *slog.Logger) (*domain.ProjectOptions, error) {
	opts, err := project.Read(env)
	if err == nil {
		return opts, nil
	}
	if errors.Is(err, domain.ErrProjectNotFound) && env != "" {
		logger.Debug("no project file, using environment name only", "env", env)
		return &domain.ProjectOptions{Env: env}, nil
	}
	return nil, err
}
