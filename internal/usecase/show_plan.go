package usecase

import (
	"context"

	"github.com/runoshun/uf2idf/internal/domain"
)

// ShowPlanInput contains the parameters for the ShowPlan use case.
type ShowPlanInput struct {
	Targets []string
	Build   ResolveBuildInput
}

// PlanStep is one idf.py call RunTargets would make.
type PlanStep struct {
	Env     map[string]string `json:"env" yaml:"env"`
	Target  string            `json:"target" yaml:"target"`
	Action  string            `json:"action" yaml:"action"`
	Title   string            `json:"title" yaml:"title"`
	Dir     string            `json:"dir" yaml:"dir"`
	Command []string          `json:"command" yaml:"command"`
}

// ShowPlanOutput describes a resolved build and its planned calls.
type ShowPlanOutput struct {
	Env        string     `json:"env" yaml:"env"`
	Board      string     `json:"board" yaml:"board"`
	BuildDir   string     `json:"build_dir" yaml:"build_dir"`
	Sdkconfig  string     `json:"sdkconfig" yaml:"sdkconfig"`
	ToolSource string     `json:"tool_source" yaml:"tool_source"`
	Python     string     `json:"python,omitempty" yaml:"python,omitempty"`
	PythonEnv  string     `json:"python_env,omitempty" yaml:"python_env,omitempty"`
	Steps      []PlanStep `json:"steps" yaml:"steps"`
}

// planEnvKeys are the child variables shown per step.
var planEnvKeys = []string{
	domain.EnvBoard,
	domain.EnvIDFBoard,
	domain.EnvExtraCMakeArgs,
	domain.EnvPythonPath,
	domain.EnvEsptoolPort,
	domain.EnvEsptoolBaud,
}

// ShowPlan reports the idf.py calls for targets without running anything.
type ShowPlan struct {
	resolve *ResolveBuild
}

// NewShowPlan creates a new ShowPlan use case.
func NewShowPlan(resolve *ResolveBuild) *ShowPlan {
	return &ShowPlan{resolve: resolve}
}

// Execute resolves the build without preparing the workspace and returns the plan.
func (uc *ShowPlan) Execute(ctx context.Context, in ShowPlanInput) (*ShowPlanOutput, error) {
	steps, err := domain.PlanSteps(in.Targets)
	if err != nil {
		return nil, err
	}

	build := in.Build
	build.SkipPrepare = true
	resolved, err := uc.resolve.Execute(ctx, build)
	if err != nil {
		return nil, err
	}
	bc := resolved.Context

	out := &ShowPlanOutput{
		Env:        bc.Env,
		Board:      bc.Board,
		BuildDir:   bc.BuildDir,
		Sdkconfig:  resolved.Workspace.SdkconfigPath,
		ToolSource: string(bc.Tool.Source),
		Python:     bc.Tool.Python,
		PythonEnv:  bc.Tool.PythonEnv,
		Steps:      make([]PlanStep, 0, len(steps)),
	}
	for _, step := range steps {
		cmd := domain.BuildInvocation(bc, step.Action)
		env := domain.NewEnviron(cmd.Env)
		shown := make(map[string]string, len(planEnvKeys))
		for _, key := range planEnvKeys {
			if v, ok := env.Lookup(key); ok {
				shown[key] = v
			}
		}
		out.Steps = append(out.Steps, PlanStep{
			Target:  step.Target,
			Action:  string(step.Action),
			Title:   domain.TargetTitle(step.Target, bc.Board, bc.Port),
			Dir:     cmd.Dir,
			Command: cmd.Argv(),
			Env:     shown,
		})
	}
	return out, nil
}
