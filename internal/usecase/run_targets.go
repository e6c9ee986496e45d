package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/uf2idf/internal/domain"
)

// RunTargetsInput contains the parameters for running orchestrator targets.
type RunTargetsInput struct {
	Targets []string // Requested target names; empty means build
	Build   ResolveBuildInput
	DryRun  bool
}

// RunTargetsOutput contains what was run.
type RunTargetsOutput struct {
	Board    string
	Commands []*domain.ExecCommand
}

// RunTargets dispatches requested targets to idf.py actions.
type RunTargets struct {
	resolve  *ResolveBuild
	invoke   *InvokeIDF
	runLog   domain.RunLog
	reporter domain.Reporter
}

// NewRunTargets creates a new RunTargets use case.
func NewRunTargets(
	resolve *ResolveBuild,
	invoke *InvokeIDF,
	runLog domain.RunLog,
	reporter domain.Reporter,
) *RunTargets {
	return &RunTargets{
		resolve:  resolve,
		invoke:   invoke,
		runLog:   runLog,
		reporter: reporter,
	}
}

// Execute records the requested targets, then runs one idf.py call per
// mapped action in request order.
//
// A list holding any unknown target is rejected before idf.py is touched.
// The first failing call stops the run.
func (uc *RunTargets) Execute(ctx context.Context, in RunTargetsInput) (*RunTargetsOutput, error) {
	resolved, err := uc.resolve.Execute(ctx, in.Build)
	if err != nil {
		return nil, err
	}
	bc := resolved.Context

	uc.reporter.Field("requested targets", "["+strings.Join(in.Targets, ", ")+"]")
	if !in.DryRun {
		if err := uc.runLog.AppendTargets(bc.BuildDir, in.Targets); err != nil {
			return nil, fmt.Errorf("write target log: %w", err)
		}
	}

	steps, err := domain.PlanSteps(in.Targets)
	if err != nil {
		return nil, err
	}

	out := &RunTargetsOutput{Board: bc.Board}
	for _, step := range steps {
		uc.reporter.Info(domain.TargetTitle(step.Target, bc.Board, bc.Port))
		res, err := uc.invoke.Execute(ctx, InvokeIDFInput{
			Context: bc,
			Action:  step.Action,
			DryRun:  in.DryRun,
		})
		if err != nil {
			return out, err
		}
		out.Commands = append(out.Commands, res.Command)
	}
	return out, nil
}
