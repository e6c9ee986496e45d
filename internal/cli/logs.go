package cli

import (
	"fmt"

	"github.com/runoshun/uf2idf/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(s *session) *cobra.Command {
	var opts struct {
		lines   int
		targets bool
	}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the idf.py invocations recorded for a board",
		Long: `Show the diagnostic log of the selected board.

Every idf.py command line run for a board is appended to
build/<board>/idf_invocations.log. With --targets, the requested target
lists from build/<board>/pio_targets.log are shown instead.`,
		Example: `  # Last 5 invocations for the default environment
  uf2idf logs --lines 5

  # Target requests of another board
  uf2idf --env lolin_s2_mini logs --targets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := s.buildInput()
			uc := s.container.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowLogsInput{
				ProjectDir: in.ProjectDir,
				Env:        in.Env,
				Board:      in.Board,
				Lines:      opts.lines,
				Targets:    opts.targets,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.lines, "lines", 0, "Number of lines to show from the end (0 = all)")
	cmd.Flags().BoolVar(&opts.targets, "targets", false, "Show the target log instead of the invocation log")

	return cmd
}
