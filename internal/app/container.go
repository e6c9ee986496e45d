// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/runoshun/uf2idf/internal/infra/config"
	"github.com/runoshun/uf2idf/internal/infra/console"
	"github.com/runoshun/uf2idf/internal/infra/executor"
	"github.com/runoshun/uf2idf/internal/infra/logging"
	"github.com/runoshun/uf2idf/internal/infra/pioconfig"
	"github.com/runoshun/uf2idf/internal/infra/toolchain"
	"github.com/runoshun/uf2idf/internal/infra/workspace"
	"github.com/runoshun/uf2idf/internal/usecase"
)

// Options controls how New wires the container.
type Options struct {
	Stdout     io.Writer // idf.py output; defaults to os.Stdout
	Stderr     io.Writer // Status lines, logs and idf.py errors; defaults to os.Stderr
	ProjectDir string    // Explicit project root; empty searches upward from WorkDir
	WorkDir    string    // Search start; defaults to the current directory
	LogLevel   string    // Overrides [log] level when set
}

// Config holds the resolved application paths.
type Config struct {
	ProjectDir   string // Project root (platformio.ini location or explicit dir)
	ProjectFound bool   // True when platformio.ini exists in ProjectDir
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Project       domain.ProjectReader
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Tools         domain.ToolLocator
	Workspace     domain.Workspace
	RunLog        domain.RunLog
	Runner        domain.CommandRunner
	Reporter      domain.Reporter

	// Output streams
	Stdout io.Writer
	Stderr io.Writer

	// Pointer fields
	Logger *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the project found from opts.
func New(opts Options) (*Container, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	// Load app config to determine log level
	configLoader := config.NewLoader(cfg.ProjectDir)
	appConfig, _ := configLoader.Load() // ignore error, use defaults; commands report it
	level := opts.LogLevel
	if level == "" {
		level = os.Getenv(domain.EnvUF2IDFLogLevel)
	}
	if level == "" && appConfig != nil {
		level = appConfig.Log.Level
	}

	// Create logger
	logger := logging.NewLogger(opts.Stderr, level)

	return &Container{
		Project:       pioconfig.NewReader(cfg.ProjectDir),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.ProjectDir),
		Tools:         toolchain.NewLocator(logger),
		Workspace:     workspace.NewPreparer(logger),
		RunLog:        logging.NewRunLog(),
		Runner:        executor.NewClient(),
		Reporter:      console.NewReporter(opts.Stderr),
		Stdout:        opts.Stdout,
		Stderr:        opts.Stderr,
		Logger:        logger,
		Config:        cfg,
	}, nil
}

// resolveConfig picks the project directory: explicit flag, then
// PROJECT_DIR, then the nearest platformio.ini, then the working directory.
func resolveConfig(opts Options) (Config, error) {
	dir := opts.ProjectDir
	if dir == "" {
		dir = os.Getenv(domain.EnvProjectDir)
	}
	if dir != "" {
		_, err := os.Stat(pioconfig.NewReader(dir).Path())
		return Config{ProjectDir: dir, ProjectFound: err == nil}, nil
	}

	start := opts.WorkDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, err
		}
		start = wd
	}

	found, err := pioconfig.FindProjectDir(start)
	if err == nil {
		return Config{ProjectDir: found, ProjectFound: true}, nil
	}
	if !errors.Is(err, domain.ErrProjectNotFound) {
		return Config{}, err
	}
	return Config{ProjectDir: start}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Container) *Container {
	c := deps
	c.Config = cfg
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}
	if c.Stderr == nil {
		c.Stderr = io.Discard
	}
	return &c
}

// Close releases open log files.
func (c *Container) Close() error {
	if closer, ok := c.RunLog.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// ResolveBuildUseCase returns a new ResolveBuild use case.
func (c *Container) ResolveBuildUseCase() *usecase.ResolveBuild {
	return usecase.NewResolveBuild(c.Project, c.ConfigLoader, c.Tools, c.Workspace, c.Reporter, c.Logger)
}

// InvokeIDFUseCase returns a new InvokeIDF use case.
func (c *Container) InvokeIDFUseCase() *usecase.InvokeIDF {
	return usecase.NewInvokeIDF(c.Runner, c.RunLog, c.Reporter, c.Stdout, c.Stderr)
}

// RunTargetsUseCase returns a new RunTargets use case.
func (c *Container) RunTargetsUseCase() *usecase.RunTargets {
	return usecase.NewRunTargets(c.ResolveBuildUseCase(), c.InvokeIDFUseCase(), c.RunLog, c.Reporter)
}

// ShowPlanUseCase returns a new ShowPlan use case.
func (c *Container) ShowPlanUseCase() *usecase.ShowPlan {
	return usecase.NewShowPlan(c.ResolveBuildUseCase())
}

// ListTargetsUseCase returns a new ListTargets use case.
func (c *Container) ListTargetsUseCase() *usecase.ListTargets {
	return usecase.NewListTargets(c.Project)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Project, c.Logger)
}
