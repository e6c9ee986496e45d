package cli

import (
	"testing"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCommands(t *testing.T) {
	tests := []struct {
		command string
		target  string
		action  string
	}{
		{"build", "tinyuf2", "build"},
		{"clean", "tinyuf2-clean", "fullclean"},
		{"flash", "tinyuf2-flash", "flash"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			deps := useMockContainer(t, "lolin_s2_mini")

			_, _, err := execute(tt.command)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.action}, deps.runner.Actions())
			assert.Equal(t, []string{tt.target}, deps.runLog.Targets)
		})
	}
}

func TestActionCommand_RejectsArgs(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("build", "extra")

	assert.Error(t, err)
	assert.Empty(t, deps.runner.Commands)
}

func TestRunCommand_FlagsOverrideProject(t *testing.T) {
	deps := useMockContainer(t, "feather")
	deps.project.Options["feather"] = &domain.ProjectOptions{
		Env:         "feather",
		UploadPort:  "/dev/ttyACM0",
		UploadSpeed: "921600",
	}

	_, _, err := execute("run", "tinyuf2-flash", "--board", "adafruit_feather_esp32s2", "-p", "/dev/ttyUSB0", "-b", "460800")

	require.NoError(t, err)
	require.Len(t, deps.runner.Commands, 1)
	args := deps.runner.Commands[0].Args
	assert.Contains(t, args, "-DBOARD=adafruit_feather_esp32s2")
	assert.Contains(t, args, "/dev/ttyUSB0")
	assert.Contains(t, args, "460800")
	assert.Equal(t, []string{"adafruit_feather_esp32s2"}, deps.workspace.Prepared)
}

func TestRunCommand_EnvFlagAndPIOENV(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		deps := useMockContainer(t, "feather")
		deps.project.Options["lolin_s3"] = &domain.ProjectOptions{Env: "lolin_s3"}

		_, _, err := execute("run", "--env", "lolin_s3")

		require.NoError(t, err)
		assert.Equal(t, []string{"lolin_s3"}, deps.project.ReadCalls)
	})

	t.Run("PIOENV", func(t *testing.T) {
		deps := useMockContainer(t, "feather")
		deps.project.Options["lolin_s3"] = &domain.ProjectOptions{Env: "lolin_s3"}
		t.Setenv("PIOENV", "lolin_s3")

		_, _, err := execute("run")

		require.NoError(t, err)
		assert.Equal(t, []string{"lolin_s3"}, deps.project.ReadCalls)
		assert.Equal(t, []string{"lolin_s3"}, deps.workspace.Prepared)
	})
}

func TestRunCommand_DryRun(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("run", "tinyuf2", "tinyuf2-flash", "--dry-run")

	require.NoError(t, err)
	assert.Empty(t, deps.runner.Commands)
	assert.Empty(t, deps.runLog.Invocations)
	assert.Empty(t, deps.runLog.Targets)
	assert.Contains(t, deps.reporter.Lines, "Build TinyUF2 for lolin_s2_mini")
}

func TestRunCommand_ToolFailure(t *testing.T) {
	deps := useMockContainer(t, "lolin_s2_mini")
	deps.runner.Err = &domain.ToolExitError{Command: "idf.py build", Code: 2}

	_, _, err := execute("run")

	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestRunCommand_BoardRequired(t *testing.T) {
	useMockContainer(t, "")

	_, _, err := execute("run")

	assert.ErrorIs(t, err, domain.ErrBoardRequired)
}
