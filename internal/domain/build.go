package domain

import (
	"os"
	"path/filepath"
)

// ToolSource tells where the idf.py command was found.
type ToolSource string

// Tool sources in resolution order.
const (
	ToolSourceExplicit  ToolSource = "explicit"
	ToolSourceIDFPath   ToolSource = "idf_path"
	ToolSourceFramework ToolSource = "framework"
	ToolSourcePath      ToolSource = "path"
)

// ToolResolution is the resolved idf.py command and the python setup behind it.
type ToolResolution struct {
	Source       ToolSource
	Python       string   // Interpreter chosen for *.py commands (may be empty)
	PythonEnv    string   // IDF python virtualenv (may be empty)
	FrameworkDir string   // framework-espidf package dir (may be empty)
	Command      []string // Program followed by fixed leading arguments
}

// BuildContext carries everything one idf.py invocation needs.
// It replaces ambient build-system state with an explicit value.
type BuildContext struct {
	Tool         *ToolResolution
	ProjectDir   string
	Env          string
	Board        string
	BuildDir     string
	Port         string
	Speed        string
	SkipPrefixes []string
	BaseEnv      []string // Environment inherited by the child process
}

// BuildInvocation constructs the idf.py command for an action.
//
// The command pins the per-board build directory, injects board definitions,
// forwards port and baud when set, and runs from the project directory.
func BuildInvocation(bc *BuildContext, action Action) *ExecCommand {
	args := append([]string{}, bc.Tool.Command[1:]...)
	args = append(args, "-B", bc.BuildDir)
	args = append(args, BoardDefines(bc.Board)...)
	if bc.Port != "" {
		args = append(args, "-p", bc.Port)
	}
	if bc.Speed != "" {
		args = append(args, "-b", bc.Speed)
	}
	args = append(args, string(action))

	cmd := NewCommand(bc.Tool.Command[0], args, bc.ProjectDir)
	cmd.Env = InvocationEnv(bc).List()
	return cmd
}

// InvocationEnv returns the child environment for an invocation.
func InvocationEnv(bc *BuildContext) *Environ {
	env := NewEnviron(bc.BaseEnv)
	env.Set(EnvBoard, bc.Board)
	env.Set(EnvIDFBoard, bc.Board)
	env.Set(EnvExtraCMakeArgs, ExtraCMakeArgs(env.Get(EnvExtraCMakeArgs), bc.SkipPrefixes, bc.Board))

	if bc.Tool.FrameworkDir != "" {
		env.AppendPathList(EnvPythonPath, filepath.Join(bc.Tool.FrameworkDir, "tools"), string(os.PathListSeparator))
	}
	if bc.Port != "" {
		env.SetDefault(EnvEsptoolPort, bc.Port)
	}
	if bc.Speed != "" {
		env.SetDefault(EnvEsptoolBaud, bc.Speed)
	}
	return env
}

// ReportedEnvKeys are the child environment variables echoed before each call.
var ReportedEnvKeys = []string{EnvBoard, EnvExtraCMakeArgs, EnvPythonPath}
