package cli

import (
	"github.com/runoshun/uf2idf/internal/usecase"
	"github.com/spf13/cobra"
)

// newActionCommand creates a command running a single target.
func newActionCommand(s *session, use, target, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Equivalent to "uf2idf run ` + target + `".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTargets(cmd, s, []string{target})
		},
	}
}

// newRunCommand creates the run command.
func newRunCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run orchestrator targets",
		Long: `Run orchestrator targets in the order given.

Targets:
  tinyuf2         idf.py build
  tinyuf2-clean   idf.py fullclean
  tinyuf2-flash   idf.py flash

With no targets, builds once. If any target is unknown, nothing runs.
The request is appended to build/<board>/pio_targets.log and every idf.py
command line to build/<board>/idf_invocations.log.

Examples:
  # Build the default environment
  uf2idf run

  # Clean, rebuild and flash
  uf2idf run tinyuf2-clean tinyuf2 tinyuf2-flash --port /dev/ttyACM0`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(cmd, s, args)
		},
	}
}

// runTargets executes the RunTargets use case for args.
func runTargets(cmd *cobra.Command, s *session, args []string) error {
	uc := s.container.RunTargetsUseCase()
	_, err := uc.Execute(cmd.Context(), usecase.RunTargetsInput{
		Targets: args,
		Build:   s.buildInput(),
		DryRun:  s.flags.dryRun,
	})
	return err
}
