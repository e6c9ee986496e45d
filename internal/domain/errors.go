package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrBoardRequired   = errors.New("board identifier is required (set custom_tinyuf2_board or select an environment)")
	ErrToolNotFound    = errors.New("unable to resolve idf.py path from configuration, framework directory or PATH")
	ErrPythonNotFound  = errors.New("python interpreter not found (set [idf].python or PYTHONEXE)")
	ErrUnknownTarget   = errors.New("unknown target")
	ErrProjectNotFound = errors.New("platformio.ini not found")
	ErrEnvNotFound     = errors.New("environment not found in platformio.ini")
	ErrNoEnvironments  = errors.New("no [env:*] sections in platformio.ini")
	ErrConfigExists    = errors.New("config file already exists")
	ErrCircularExtends = errors.New("circular extends detected in platformio.ini")
	ErrConfigNil       = errors.New("config is nil")
	ErrNoLog           = errors.New("no log recorded for board")
)

// ToolExitError reports that the external tool ran and exited non-zero.
type ToolExitError struct {
	Err     error
	Command string
	Code    int
}

func (e *ToolExitError) Error() string {
	return fmt.Sprintf("command failed with exit status %d: %s", e.Code, e.Command)
}

func (e *ToolExitError) Unwrap() error {
	return e.Err
}
