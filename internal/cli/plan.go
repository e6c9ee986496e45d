package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/uf2idf/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Plan output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// newPlanCommand creates the plan command.
func newPlanCommand(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plan [targets...]",
		Short: "Show the idf.py commands a run would make",
		Long: `Resolve the board, the idf.py command and the child environment, and
print the calls "uf2idf run" would make for the same targets.

Nothing is executed, logged or created on disk.

Examples:
  # Human-readable plan
  uf2idf plan tinyuf2-clean tinyuf2

  # Machine-readable plan
  uf2idf plan tinyuf2-flash -o json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case formatText, formatYAML, formatJSON:
			default:
				return fmt.Errorf("unknown output format %q (use text, yaml or json)", output)
			}

			uc := s.container.ShowPlanUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowPlanInput{
				Targets: args,
				Build:   s.buildInput(),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case formatYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("encode plan: %w", err)
				}
				return enc.Close()
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			default:
				printPlan(w, out)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, yaml or json")

	return cmd
}

// printPlan writes the plan in text form.
func printPlan(w io.Writer, out *usecase.ShowPlanOutput) {
	_, _ = fmt.Fprintf(w, "Env:       %s\n", out.Env)
	_, _ = fmt.Fprintf(w, "Board:     %s\n", out.Board)
	_, _ = fmt.Fprintf(w, "Build dir: %s\n", out.BuildDir)
	_, _ = fmt.Fprintf(w, "Sdkconfig: %s\n", out.Sdkconfig)
	_, _ = fmt.Fprintf(w, "Tool:      %s\n", out.ToolSource)
	if out.Python != "" {
		_, _ = fmt.Fprintf(w, "Python:    %s\n", out.Python)
	}
	if out.PythonEnv != "" {
		_, _ = fmt.Fprintf(w, "Venv:      %s\n", out.PythonEnv)
	}

	for i, step := range out.Steps {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "%d. %s [%s]\n", i+1, step.Title, step.Target)
		_, _ = fmt.Fprintf(w, "   $ %s\n", strings.Join(step.Command, " "))
		for _, key := range sortedKeys(step.Env) {
			_, _ = fmt.Fprintf(w, "   %s=%s\n", key, step.Env[key])
		}
	}
}
