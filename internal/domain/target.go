package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Action is an idf.py subcommand.
type Action string

// Supported idf.py subcommands.
const (
	ActionBuild     Action = "build"
	ActionFullClean Action = "fullclean"
	ActionFlash     Action = "flash"
)

// Orchestrator-facing target names.
const (
	TargetBuild = "tinyuf2"
	TargetClean = "tinyuf2-clean"
	TargetFlash = "tinyuf2-flash"
)

// KnownTargets maps each target name to the idf.py subcommands it runs.
var KnownTargets = map[string][]Action{
	TargetBuild: {ActionBuild},
	TargetClean: {ActionFullClean},
	TargetFlash: {ActionFlash},
}

// TargetNames returns the known target names in sorted order.
func TargetNames() []string {
	names := lo.Keys(KnownTargets)
	sort.Strings(names)
	return names
}

// IsKnownTarget reports whether name is a known target.
func IsKnownTarget(name string) bool {
	_, ok := KnownTargets[name]
	return ok
}

// Step is one idf.py call made on behalf of a target.
type Step struct {
	Target string
	Action Action
}

// PlanSteps converts requested targets into the ordered idf.py calls to make.
//
// No targets means a single build. Every target must be known; a list with any
// unknown target is rejected as a whole so that nothing runs.
func PlanSteps(requested []string) ([]Step, error) {
	if len(requested) == 0 {
		return []Step{{Target: TargetBuild, Action: ActionBuild}}, nil
	}

	unknown := lo.Uniq(lo.Reject(requested, func(t string, _ int) bool {
		return IsKnownTarget(t)
	}))
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownTarget,
			strings.Join(unknown, ", "), strings.Join(TargetNames(), ", "))
	}

	return lo.FlatMap(requested, func(t string, _ int) []Step {
		return lo.Map(KnownTargets[t], func(a Action, _ int) Step {
			return Step{Target: t, Action: a}
		})
	}), nil
}

// PlanTargets returns the ordered idf.py subcommands for the requested targets.
func PlanTargets(requested []string) ([]Action, error) {
	steps, err := PlanSteps(requested)
	if err != nil {
		return nil, err
	}
	return lo.Map(steps, func(s Step, _ int) Action {
		return s.Action
	}), nil
}

// TargetTitle returns the human-readable description of a target.
func TargetTitle(target, board, port string) string {
	switch target {
	case TargetBuild:
		return "Build TinyUF2 for " + board
	case TargetClean:
		return "Clean TinyUF2 build for " + board
	case TargetFlash:
		if port == "" {
			port = "default port"
		}
		return "Flash TinyUF2 to " + port
	default:
		return target
	}
}

// TargetDescription returns what a target does, for target listings.
func TargetDescription(target string) string {
	switch target {
	case TargetBuild:
		return "Invoke idf.py to build the TinyUF2 bootloader"
	case TargetClean:
		return "Invoke idf.py fullclean for the TinyUF2 bootloader"
	case TargetFlash:
		return "Invoke idf.py flash for the TinyUF2 bootloader"
	default:
		return ""
	}
}
