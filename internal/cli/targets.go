package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/runoshun/uf2idf/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// newTargetsCommand creates the targets command.
func newTargetsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List known targets and project environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := s.container.ListTargetsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTargetsInput{})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TARGET\tIDF.PY\tDESCRIPTION")
			for _, t := range out.Targets {
				actions := lo.Map(t.Actions, func(a domain.Action, _ int) string {
					return string(a)
				})
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, strings.Join(actions, ","), t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(out.Environments) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nEnvironments: %s\n", strings.Join(out.Environments, ", "))
			}
			return nil
		},
	}
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
