package domain

import "strings"

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
	Env     []string // Full environment in KEY=VALUE form; nil inherits the caller's
}

// NewCommand creates a new ExecCommand.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}

// Argv returns the program followed by its arguments.
func (c *ExecCommand) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// Display returns the command line as echoed to the console and the invocation log.
func (c *ExecCommand) Display() string {
	return strings.Join(c.Argv(), " ")
}
