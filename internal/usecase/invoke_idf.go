package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/uf2idf/internal/domain"
)

// InvokeIDFInput contains the parameters for one idf.py call.
type InvokeIDFInput struct {
	Context *domain.BuildContext // Resolved build (required)
	Action  domain.Action        // idf.py subcommand (required)
	DryRun  bool                 // Print the command without running or logging it
}

// InvokeIDFOutput contains the command that was (or would be) run.
type InvokeIDFOutput struct {
	Command *domain.ExecCommand
}

// InvokeIDF runs one idf.py action for a board.
// Fields are ordered to minimize memory padding.
type InvokeIDF struct {
	runner   domain.CommandRunner
	runLog   domain.RunLog
	reporter domain.Reporter
	stdout   io.Writer
	stderr   io.Writer
}

// NewInvokeIDF creates a new InvokeIDF use case.
func NewInvokeIDF(
	runner domain.CommandRunner,
	runLog domain.RunLog,
	reporter domain.Reporter,
	stdout, stderr io.Writer,
) *InvokeIDF {
	return &InvokeIDF{
		runner:   runner,
		runLog:   runLog,
		reporter: reporter,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Execute builds the invocation, echoes it, logs it and runs it synchronously.
// A failing idf.py is returned as *domain.ToolExitError and never retried.
func (uc *InvokeIDF) Execute(ctx context.Context, in InvokeIDFInput) (*InvokeIDFOutput, error) {
	if in.Context == nil || in.Context.Tool == nil || len(in.Context.Tool.Command) == 0 {
		return nil, errors.New("build context has no resolved idf.py command")
	}
	if in.Action == "" {
		return nil, errors.New("action cannot be empty")
	}

	cmd := domain.BuildInvocation(in.Context, in.Action)
	display := cmd.Display()

	uc.reporter.Field("command", display)
	env := domain.NewEnviron(cmd.Env)
	for _, key := range domain.ReportedEnvKeys {
		uc.reporter.Field("env "+key, env.Get(key))
	}

	out := &InvokeIDFOutput{Command: cmd}
	if in.DryRun {
		return out, nil
	}

	if err := uc.runLog.AppendInvocation(in.Context.BuildDir, display); err != nil {
		return nil, fmt.Errorf("write invocation log: %w", err)
	}

	if err := uc.runner.Run(ctx, cmd, uc.stdout, uc.stderr); err != nil {
		return nil, fmt.Errorf("idf.py %s: %w", in.Action, err)
	}
	return out, nil
}
