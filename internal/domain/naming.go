package domain

import (
	"path/filepath"
	"strings"
)

// Well-known file names.
const (
	ProjectFileName       = "platformio.ini"
	InvocationLogFileName = "idf_invocations.log"
	TargetLogFileName     = "pio_targets.log"
)

// ResolveBoard returns the board identifier for an environment.
// A non-empty override wins over the environment name.
func ResolveBoard(envName, override string) (string, error) {
	board := strings.TrimSpace(override)
	if board == "" {
		board = strings.TrimSpace(envName)
	}
	if board == "" {
		return "", ErrBoardRequired
	}
	return board, nil
}

// BuildDir returns the per-board build output directory.
// Format: <project>/build/<board>
func BuildDir(projectDir, board string) string {
	return filepath.Join(projectDir, "build", board)
}

// BoardSdkconfigPath returns the sdkconfig shipped with the board port.
func BoardSdkconfigPath(projectDir, board string) string {
	return filepath.Join(BoardsDir(projectDir), board, "sdkconfig")
}

// RootSdkconfigPath returns the project-level sdkconfig copy for a board.
// Format: <project>/sdkconfig.<board>
func RootSdkconfigPath(projectDir, board string) string {
	return filepath.Join(projectDir, "sdkconfig."+board)
}

// BoardsDir returns the directory holding the board ports.
func BoardsDir(projectDir string) string {
	return filepath.Join(projectDir, "ports", "espressif", "boards")
}

// InvocationLogPath returns the path to the log of invoked commands.
func InvocationLogPath(buildDir string) string {
	return filepath.Join(buildDir, InvocationLogFileName)
}

// TargetLogPath returns the path to the log of requested targets.
func TargetLogPath(buildDir string) string {
	return filepath.Join(buildDir, TargetLogFileName)
}

// ProjectConfigPath returns the path to the project-level tool config.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigFileName)
}

// GlobalConfigDir returns the global uf2idf config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "uf2idf")
}
