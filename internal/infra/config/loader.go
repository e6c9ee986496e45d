// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/uf2idf/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the process environment.
type Loader struct {
	getenv        func(string) string
	projectDir    string // Project root holding .uf2idf.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/uf2idf)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory
// and environment lookup.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv(domain.EnvXDGConfigHome)
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- project <- environment variables.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}

	applyEnvOverrides(base, l.getenv)
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "idf":
			for k, v := range m {
				s, _ := v.(string)
				switch k {
				case "py":
					res.IDF.Py = s
				case "path":
					res.IDF.Path = s
				case "framework_dir":
					res.IDF.FrameworkDir = s
				case "python":
					res.IDF.Python = s
				case "python_env":
					res.IDF.PythonEnv = s
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [idf]: %s", k))
				}
			}
		case "cmake":
			for k, v := range m {
				switch k {
				case "skip_prefixes":
					if list, ok := v.([]any); ok {
						prefixes := make([]string, 0, len(list))
						for _, item := range list {
							if s, ok := item.(string); ok {
								prefixes = append(prefixes, s)
							}
						}
						res.CMake.SkipPrefixes = prefixes
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [cmake]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		IDF:      base.IDF,
		CMake:    base.CMake,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.IDF.Py != "" {
		result.IDF.Py = override.IDF.Py
	}
	if override.IDF.Path != "" {
		result.IDF.Path = override.IDF.Path
	}
	if override.IDF.FrameworkDir != "" {
		result.IDF.FrameworkDir = override.IDF.FrameworkDir
	}
	if override.IDF.Python != "" {
		result.IDF.Python = override.IDF.Python
	}
	if override.IDF.PythonEnv != "" {
		result.IDF.PythonEnv = override.IDF.PythonEnv
	}
	// An explicit empty list clears the defaults
	if override.CMake.SkipPrefixes != nil {
		result.CMake.SkipPrefixes = override.CMake.SkipPrefixes
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}

// applyEnvOverrides lets the calling build system override file settings.
func applyEnvOverrides(cfg *domain.Config, getenv func(string) string) {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&cfg.IDF.Py, domain.EnvIDFPy)
	override(&cfg.IDF.Path, domain.EnvIDFPath)
	override(&cfg.IDF.FrameworkDir, domain.EnvFrameworkDir)
	override(&cfg.IDF.Python, domain.EnvPythonExe)
	override(&cfg.IDF.PythonEnv, domain.EnvIDFPythonEnv)
	override(&cfg.Log.Level, domain.EnvUF2IDFLogLevel)
}
