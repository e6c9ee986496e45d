// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/uf2idf/internal/domain"
)

// MockProjectReader is a test double for domain.ProjectReader.
// Fields are ordered to minimize memory padding.
type MockProjectReader struct {
	Options    map[string]*domain.ProjectOptions
	ReadErr    error
	EnvsErr    error
	DefaultEnv string
	Envs       []string
	ReadCalls  []string
}

// NewMockProjectReader creates a MockProjectReader with one environment.
func NewMockProjectReader(env string) *MockProjectReader {
	return &MockProjectReader{
		Options: map[string]*domain.ProjectOptions{
			env: {Env: env},
		},
		DefaultEnv: env,
		Envs:       []string{env},
	}
}

// Ensure MockProjectReader implements domain.ProjectReader interface.
var _ domain.ProjectReader = (*MockProjectReader)(nil)

// Read returns a copy of the options for env, or the default environment when env is empty.
func (m *MockProjectReader) Read(env string) (*domain.ProjectOptions, error) {
	m.ReadCalls = append(m.ReadCalls, env)
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if env == "" {
		env = m.DefaultEnv
	}
	opts, ok := m.Options[env]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEnvNotFound, env)
	}
	cp := *opts
	return &cp, nil
}

// Environments returns the configured environment names.
func (m *MockProjectReader) Environments() ([]string, error) {
	if m.EnvsErr != nil {
		return nil, m.EnvsErr
	}
	return m.Envs, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	InitConfig        *domain.Config
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/test/project/.uf2idf.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/uf2idf/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig(cfg *domain.Config) error {
	m.InitProjectCalled = true
	m.InitConfig = cfg
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// MockToolLocator is a test double for domain.ToolLocator.
type MockToolLocator struct {
	Resolution *domain.ToolResolution
	Err        error
	Calls      int
}

// NewMockToolLocator creates a MockToolLocator resolving to python3 + idf.py.
func NewMockToolLocator() *MockToolLocator {
	return &MockToolLocator{
		Resolution: &domain.ToolResolution{
			Source:       domain.ToolSourceFramework,
			Python:       "/usr/bin/python3",
			FrameworkDir: "/pio/packages/framework-espidf",
			Command:      []string{"/usr/bin/python3", "/pio/packages/framework-espidf/tools/idf.py"},
		},
	}
}

// Ensure MockToolLocator implements domain.ToolLocator interface.
var _ domain.ToolLocator = (*MockToolLocator)(nil)

// Locate returns the configured resolution or error.
func (m *MockToolLocator) Locate(_ *domain.Config) (*domain.ToolResolution, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Resolution, nil
}

// MockWorkspace is a test double for domain.Workspace.
type MockWorkspace struct {
	Err        error
	Prepared   []string // Boards passed to Prepare
	CopyResult bool
}

// Ensure MockWorkspace implements domain.Workspace interface.
var _ domain.Workspace = (*MockWorkspace)(nil)

// Prepare records the board and returns the conventional paths.
func (m *MockWorkspace) Prepare(projectDir, board string) (*domain.WorkspaceInfo, error) {
	m.Prepared = append(m.Prepared, board)
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.WorkspaceInfo{
		BuildDir:        domain.BuildDir(projectDir, board),
		SdkconfigPath:   domain.RootSdkconfigPath(projectDir, board),
		SdkconfigCopied: m.CopyResult,
	}, nil
}

// MockRunLog is a test double for domain.RunLog.
type MockRunLog struct {
	Invocations   []string
	Targets       []string // Comma-joined, as written to the log
	InvocationErr error
	TargetsErr    error
}

// Ensure MockRunLog implements domain.RunLog interface.
var _ domain.RunLog = (*MockRunLog)(nil)

// AppendInvocation records the command line.
func (m *MockRunLog) AppendInvocation(_ string, commandLine string) error {
	if m.InvocationErr != nil {
		return m.InvocationErr
	}
	m.Invocations = append(m.Invocations, commandLine)
	return nil
}

// AppendTargets records the joined targets.
func (m *MockRunLog) AppendTargets(_ string, targets []string) error {
	if m.TargetsErr != nil {
		return m.TargetsErr
	}
	m.Targets = append(m.Targets, strings.Join(targets, ","))
	return nil
}

// MockCommandRunner is a test double for domain.CommandRunner.
// Fields are ordered to minimize memory padding.
type MockCommandRunner struct {
	Commands []*domain.ExecCommand
	Err      error
	FailOn   int // 1-based call index that returns Err; 0 means every call
	Output   string
}

// Ensure MockCommandRunner implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*MockCommandRunner)(nil)

// Run records cmd and writes Output to stdout.
func (m *MockCommandRunner) Run(_ context.Context, cmd *domain.ExecCommand, stdout, _ io.Writer) error {
	m.Commands = append(m.Commands, cmd)
	if m.Err != nil && (m.FailOn == 0 || m.FailOn == len(m.Commands)) {
		return m.Err
	}
	if m.Output != "" && stdout != nil {
		_, _ = io.WriteString(stdout, m.Output)
	}
	return nil
}

// Actions returns the last argument of every recorded command.
func (m *MockCommandRunner) Actions() []string {
	actions := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		if len(c.Args) > 0 {
			actions = append(actions, c.Args[len(c.Args)-1])
		}
	}
	return actions
}

// MockReporter is a test double for domain.Reporter.
type MockReporter struct {
	Lines []string
}

// Ensure MockReporter implements domain.Reporter interface.
var _ domain.Reporter = (*MockReporter)(nil)

// Field records "label: value".
func (m *MockReporter) Field(label, value string) {
	m.Lines = append(m.Lines, label+": "+value)
}

// Info records msg.
func (m *MockReporter) Info(msg string) {
	m.Lines = append(m.Lines, msg)
}
