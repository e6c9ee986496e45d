package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestBuildContext() *BuildContext {
	return &BuildContext{
		ProjectDir:   "/work/tinyuf2",
		Env:          "lolin_s2_mini",
		Board:        "lolin_s2_mini",
		BuildDir:     "/work/tinyuf2/build/lolin_s2_mini",
		SkipPrefixes: DefaultSkipPrefixes,
		Tool: &ToolResolution{
			Source:  ToolSourceIDFPath,
			Command: []string{"/usr/bin/python3", "/opt/esp-idf/tools/idf.py"},
		},
		BaseEnv: []string{"HOME=/home/dev", "PATH=/usr/bin"},
	}
}

func TestBuildInvocation_Minimal(t *testing.T) {
	bc := newTestBuildContext()

	cmd := BuildInvocation(bc, ActionBuild)

	assert.Equal(t, "/usr/bin/python3", cmd.Program)
	assert.Equal(t, []string{
		"/opt/esp-idf/tools/idf.py",
		"-B", "/work/tinyuf2/build/lolin_s2_mini",
		"-DBOARD=lolin_s2_mini", "-DIDF_BOARD=lolin_s2_mini",
		"build",
	}, cmd.Args)
	assert.Equal(t, "/work/tinyuf2", cmd.Dir)
	assert.Equal(t,
		"/usr/bin/python3 /opt/esp-idf/tools/idf.py -B /work/tinyuf2/build/lolin_s2_mini -DBOARD=lolin_s2_mini -DIDF_BOARD=lolin_s2_mini build",
		cmd.Display())
}

func TestBuildInvocation_PortAndSpeed(t *testing.T) {
	bc := newTestBuildContext()
	bc.Port = "/dev/ttyACM0"
	bc.Speed = "921600"

	cmd := BuildInvocation(bc, ActionFlash)

	assert.Equal(t, []string{
		"/opt/esp-idf/tools/idf.py",
		"-B", "/work/tinyuf2/build/lolin_s2_mini",
		"-DBOARD=lolin_s2_mini", "-DIDF_BOARD=lolin_s2_mini",
		"-p", "/dev/ttyACM0",
		"-b", "921600",
		"flash",
	}, cmd.Args)

	env := NewEnviron(cmd.Env)
	assert.Equal(t, "/dev/ttyACM0", env.Get("ESPTOOL_PORT"))
	assert.Equal(t, "921600", env.Get("ESPTOOL_BAUD"))
}

func TestBuildInvocation_DirectExecutable(t *testing.T) {
	bc := newTestBuildContext()
	bc.Tool.Command = []string{"/usr/local/bin/idf.sh"}

	cmd := BuildInvocation(bc, ActionFullClean)

	assert.Equal(t, "/usr/local/bin/idf.sh", cmd.Program)
	assert.Equal(t, "fullclean", cmd.Args[len(cmd.Args)-1])
	assert.Equal(t, "-B", cmd.Args[0])
}

func TestBuildInvocation_DoesNotMutateTool(t *testing.T) {
	bc := newTestBuildContext()

	_ = BuildInvocation(bc, ActionBuild)
	_ = BuildInvocation(bc, ActionFlash)

	assert.Equal(t, []string{"/usr/bin/python3", "/opt/esp-idf/tools/idf.py"}, bc.Tool.Command)
}

func TestInvocationEnv(t *testing.T) {
	bc := newTestBuildContext()
	bc.BaseEnv = append(bc.BaseEnv,
		"IDF_EXTRA_CMAKE_ARGS=-DTINYUF2_PLATFORMIO_SKIP=1 -DLOG=2",
		"ESPTOOL_PORT=/dev/ttyUSB9",
		"BOARD=stale",
	)
	bc.Port = "/dev/ttyACM0"
	bc.Tool.FrameworkDir = "/pio/framework-espidf"

	env := InvocationEnv(bc)

	assert.Equal(t, "lolin_s2_mini", env.Get("BOARD"))
	assert.Equal(t, "lolin_s2_mini", env.Get("IDF_BOARD"))
	assert.Equal(t, "-DLOG=2 -DBOARD=lolin_s2_mini -DIDF_BOARD=lolin_s2_mini", env.Get("IDF_EXTRA_CMAKE_ARGS"))
	assert.Equal(t, filepath.Join("/pio/framework-espidf", "tools"), env.Get("PYTHONPATH"))
	// Caller-provided esptool settings are kept
	assert.Equal(t, "/dev/ttyUSB9", env.Get("ESPTOOL_PORT"))
	_, ok := env.Lookup("ESPTOOL_BAUD")
	assert.False(t, ok)
	assert.Equal(t, "/home/dev", env.Get("HOME"))
}

func TestInvocationEnv_PythonPathAppended(t *testing.T) {
	bc := newTestBuildContext()
	sep := string(os.PathListSeparator)
	bc.BaseEnv = append(bc.BaseEnv, "PYTHONPATH=/site")
	bc.Tool.FrameworkDir = "/pio/fw"

	env := InvocationEnv(bc)

	assert.Equal(t, "/site"+sep+filepath.Join("/pio/fw", "tools"), env.Get("PYTHONPATH"))
}

func TestInvocationEnv_NoFrameworkLeavesPythonPath(t *testing.T) {
	bc := newTestBuildContext()

	env := InvocationEnv(bc)

	_, ok := env.Lookup("PYTHONPATH")
	assert.False(t, ok)
}
