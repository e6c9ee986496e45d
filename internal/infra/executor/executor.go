// Package executor provides command execution functionality.
package executor

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/runoshun/uf2idf/internal/domain"
)

// Client implements domain.CommandRunner interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*Client)(nil)

// Run executes the command synchronously, streaming its output.
// A non-zero exit status is returned as *domain.ToolExitError.
// Cancelling ctx kills the child.
func (c *Client) Run(ctx context.Context, cmd *domain.ExecCommand, stdout, stderr io.Writer) error {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted UseCase code
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	if cmd.Env != nil {
		execCmd.Env = cmd.Env
	}
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr

	err := execCmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ToolExitError{
			Err:     err,
			Command: cmd.Display(),
			Code:    exitErr.ExitCode(),
		}
	}
	return err
}
