package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/runoshun/uf2idf/internal/app"
	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_NoArgs_BuildsOnce(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, deps.runner.Actions())
	assert.Equal(t, []string{""}, deps.runLog.Targets)
	assert.Equal(t, "/usr/bin", domain.NewEnviron(deps.runner.Commands[0].Env).Get("PATH"))
}

func TestNewRootCommand_TargetsAsArgs(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("tinyuf2-clean", "tinyuf2")

	require.NoError(t, err)
	assert.Equal(t, []string{"fullclean", "build"}, deps.runner.Actions())
	assert.Equal(t, []string{"tinyuf2-clean,tinyuf2"}, deps.runLog.Targets)
}

func TestNewRootCommand_UnknownTargetRunsNothing(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("tinyuf2", "upload")

	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
	assert.Empty(t, deps.runner.Commands)
}

func TestNewRootCommand_Version(t *testing.T) {
	useMockContainer(t, "lolin_s2_mini")

	stdout, _, err := execute("--version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "test-version")
}

func TestNewRootCommand_Help(t *testing.T) {
	useMockContainer(t, "lolin_s2_mini")

	stdout, _, err := execute("--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Build Commands:")
	assert.Contains(t, stdout, "flash")
	assert.Contains(t, stdout, "--dry-run")
}

func TestNewRootCommand_PassesFlagsToContainer(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("build", "--project-dir", "/src/tinyuf2", "--log-level", "debug")

	require.NoError(t, err)
	assert.Equal(t, "/src/tinyuf2", deps.opts.ProjectDir)
	assert.Equal(t, "debug", deps.opts.LogLevel)
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")
	deps.config.Config.Warnings = []string{"unknown key in [idf]: pth"}

	_, stderr, err := execute("build", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown key in [idf]: pth")
}

func TestNewRootCommand_ContainerError(t *testing.T) {
	useMockContainer(t, "lolin_s2_mini")
	newContainerFunc = func(app.Options) (*app.Container, error) {
		return nil, errors.New("getwd: permission denied")
	}

	_, _, err := execute("build")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"tool exit", &domain.ToolExitError{Code: 2}, 2},
		{"wrapped tool exit", fmt.Errorf("idf.py build: %w", &domain.ToolExitError{Code: 4}), 4},
		{"signal exit", &domain.ToolExitError{Code: -1}, 1},
		{"board required", domain.ErrBoardRequired, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
