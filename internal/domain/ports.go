package domain

import (
	"context"
	"io"
)

// ProjectReader reads build options from the host project configuration.
type ProjectReader interface {
	// Read returns the options of the named environment.
	// An empty name selects the project's default environment.
	Read(env string) (*ProjectOptions, error)

	// Environments lists the environment names defined by the project.
	Environments() ([]string, error)
}

// ConfigLoader loads tool configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + project + environment).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitProjectConfig creates a project config file with the default template.
	InitProjectConfig(cfg *Config) error

	// InitGlobalConfig creates a global config file with the default template.
	InitGlobalConfig(cfg *Config) error
}

// ToolLocator finds the idf.py command.
type ToolLocator interface {
	// Locate resolves the command from cfg, the framework directory and PATH.
	Locate(cfg *Config) (*ToolResolution, error)
}

// Workspace prepares per-board directories.
type Workspace interface {
	// Prepare creates the build directory and seeds the root sdkconfig copy.
	Prepare(projectDir, board string) (*WorkspaceInfo, error)
}

// RunLog appends diagnostic records to the per-board build directory.
type RunLog interface {
	// AppendInvocation records one invoked command line.
	AppendInvocation(buildDir, commandLine string) error

	// AppendTargets records one set of requested targets.
	AppendTargets(buildDir string, targets []string) error
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes cmd synchronously, streaming output to stdout and stderr.
	// A non-zero exit is returned as *ToolExitError.
	Run(ctx context.Context, cmd *ExecCommand, stdout, stderr io.Writer) error
}

// Reporter prints progress lines for the user running the build.
type Reporter interface {
	// Field prints a labeled value.
	Field(label, value string)

	// Info prints a message.
	Info(msg string)
}
