// Package cli provides the command-line interface for uf2idf.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/uf2idf/internal/app"
	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/runoshun/uf2idf/internal/usecase"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupBuild = "build"
	groupSetup = "setup"
)

// newContainerFunc is a function variable for creating the container, allowing it to be mocked in tests.
var newContainerFunc = app.New

// environFunc returns the environment inherited by idf.py.
var environFunc = os.Environ

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	projectDir string
	env        string
	board      string
	port       string
	baud       string
	logLevel   string
	dryRun     bool
}

// session carries the flags and the container created after flag parsing.
type session struct {
	container *app.Container
	flags     globalFlags
}

// buildInput converts the flags into a ResolveBuildInput.
// PIOENV selects the environment when --env is not given.
func (s *session) buildInput() usecase.ResolveBuildInput {
	env := s.flags.env
	if env == "" {
		env = os.Getenv(domain.EnvPlatformIOEnv)
	}
	return usecase.ResolveBuildInput{
		ProjectDir: s.container.Config.ProjectDir,
		Env:        env,
		Board:      s.flags.board,
		Port:       s.flags.port,
		Speed:      s.flags.baud,
		BaseEnv:    environFunc(),
	}
}

// NewRootCommand creates the root command for uf2idf.
// The container is created after flag parsing so --project-dir and
// --log-level can shape it.
func NewRootCommand(version string) *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "uf2idf [targets...]",
		Short: "Build, clean and flash the TinyUF2 bootloader with idf.py",
		Long: `uf2idf drives the ESP-IDF idf.py tool for one TinyUF2 board.

The board comes from the PlatformIO environment (--env, PIOENV or the
project's default), or from custom_tinyuf2_board when set. Every board builds
into its own build/<board> directory.

Without a subcommand, uf2idf behaves like "uf2idf run": given no targets it
builds once; otherwise it runs the named targets in order.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainerFunc(app.Options{
				ProjectDir: s.flags.projectDir,
				LogLevel:   s.flags.logLevel,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			s.container = c

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command that needs the config
				return nil
			}
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if s.container == nil {
				return nil
			}
			return s.container.Close()
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(cmd, s, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&s.flags.projectDir, "project-dir", "C", "", "Project directory (default: nearest platformio.ini, or PROJECT_DIR)")
	pf.StringVarP(&s.flags.env, "env", "e", "", "PlatformIO environment (default: PIOENV, then default_envs)")
	pf.StringVar(&s.flags.board, "board", "", "Board override (takes precedence over custom_tinyuf2_board)")
	pf.StringVarP(&s.flags.port, "port", "p", "", "Serial port passed to idf.py -p (overrides upload_port)")
	pf.StringVarP(&s.flags.baud, "baud", "b", "", "Baud rate passed to idf.py -b (overrides upload_speed)")
	pf.BoolVarP(&s.flags.dryRun, "dry-run", "n", false, "Print idf.py commands without running them")
	pf.StringVar(&s.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupBuild, Title: "Build Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Build commands
	buildCmd := newActionCommand(s, "build", domain.TargetBuild, "Build the bootloader (idf.py build)")
	buildCmd.GroupID = groupBuild

	cleanCmd := newActionCommand(s, "clean", domain.TargetClean, "Remove the board build (idf.py fullclean)")
	cleanCmd.GroupID = groupBuild

	flashCmd := newActionCommand(s, "flash", domain.TargetFlash, "Flash the bootloader (idf.py flash)")
	flashCmd.GroupID = groupBuild

	runCmd := newRunCommand(s)
	runCmd.GroupID = groupBuild

	planCmd := newPlanCommand(s)
	planCmd.GroupID = groupBuild

	logsCmd := newLogsCommand(s)
	logsCmd.GroupID = groupBuild

	// Setup commands
	targetsCmd := newTargetsCommand(s)
	targetsCmd.GroupID = groupSetup

	configCmd := newConfigCommand(s)
	configCmd.GroupID = groupSetup

	// Add subcommands
	root.AddCommand(
		buildCmd,
		cleanCmd,
		flashCmd,
		runCmd,
		planCmd,
		logsCmd,
		targetsCmd,
		configCmd,
	)

	return root
}

// ExitCode returns the process exit code for an error returned by the root command.
// A failing idf.py passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *domain.ToolExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
