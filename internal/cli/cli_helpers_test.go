package cli

import (
	"bytes"
	"testing"

	"github.com/runoshun/uf2idf/internal/app"
	"github.com/runoshun/uf2idf/internal/testutil"
)

// testDeps holds the mocks injected through newContainerFunc.
type testDeps struct {
	project   *testutil.MockProjectReader
	config    *testutil.MockConfigLoader
	manager   *testutil.MockConfigManager
	tools     *testutil.MockToolLocator
	workspace *testutil.MockWorkspace
	runLog    *testutil.MockRunLog
	runner    *testutil.MockCommandRunner
	reporter  *testutil.MockReporter
	opts      app.Options
}

// useMockContainer replaces newContainerFunc for the duration of the test.
func useMockContainer(t *testing.T, env string) *testDeps {
	t.Helper()
	t.Setenv("PIOENV", "")

	deps := &testDeps{
		project:   testutil.NewMockProjectReader(env),
		config:    testutil.NewMockConfigLoader(),
		manager:   testutil.NewMockConfigManager(),
		tools:     testutil.NewMockToolLocator(),
		workspace: &testutil.MockWorkspace{},
		runLog:    &testutil.MockRunLog{},
		runner:    &testutil.MockCommandRunner{},
		reporter:  &testutil.MockReporter{},
	}

	originalNew := newContainerFunc
	originalEnviron := environFunc
	t.Cleanup(func() {
		newContainerFunc = originalNew
		environFunc = originalEnviron
	})

	environFunc = func() []string { return []string{"PATH=/usr/bin"} }
	newContainerFunc = func(opts app.Options) (*app.Container, error) {
		deps.opts = opts
		return app.NewWithDeps(app.Config{ProjectDir: "/work/tinyuf2", ProjectFound: true}, app.Container{
			Project:       deps.project,
			ConfigLoader:  deps.config,
			ConfigManager: deps.manager,
			Tools:         deps.tools,
			Workspace:     deps.workspace,
			RunLog:        deps.runLog,
			Runner:        deps.runner,
			Reporter:      deps.reporter,
			Stdout:        opts.Stdout,
			Stderr:        opts.Stderr,
		}), nil
	}
	return deps
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	root := NewRootCommand("test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
