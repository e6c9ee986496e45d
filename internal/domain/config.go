package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the tool configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	IDF      IDFConfig   `toml:"idf"`
	CMake    CMakeConfig `toml:"cmake"`
	Log      LogConfig   `toml:"log"`
}

// IDFConfig holds ESP-IDF tool discovery settings from the [idf] section.
type IDFConfig struct {
	Py           string `toml:"py,omitempty"`            // Explicit idf.py command line (IDF_PY)
	Path         string `toml:"path,omitempty"`          // ESP-IDF checkout (IDF_PATH)
	FrameworkDir string `toml:"framework_dir,omitempty"` // PlatformIO framework-espidf package
	Python       string `toml:"python,omitempty"`        // Python interpreter (PYTHONEXE)
	PythonEnv    string `toml:"python_env,omitempty"`    // IDF python virtualenv (IDF_PYTHON_ENV_PATH)
}

// CMakeConfig holds settings for IDF_EXTRA_CMAKE_ARGS from the [cmake] section.
type CMakeConfig struct {
	SkipPrefixes []string `toml:"skip_prefixes,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Config file names and defaults.
const (
	ConfigFileName        = "config.toml"  // Global config file name
	ProjectConfigFileName = ".uf2idf.toml" // Config file name in the project root
	DefaultLogLevel       = "info"
)

// Environment variable names read or written by uf2idf.
const (
	EnvIDFPy          = "IDF_PY"
	EnvIDFPath        = "IDF_PATH"
	EnvPythonExe      = "PYTHONEXE"
	EnvIDFPythonEnv   = "IDF_PYTHON_ENV_PATH"
	EnvFrameworkDir   = "UF2IDF_FRAMEWORK_DIR"
	EnvExtraCMakeArgs = "IDF_EXTRA_CMAKE_ARGS"
	EnvPythonPath     = "PYTHONPATH"
	EnvBoard          = "BOARD"
	EnvIDFBoard       = "IDF_BOARD"
	EnvEsptoolPort    = "ESPTOOL_PORT"
	EnvEsptoolBaud    = "ESPTOOL_BAUD"
	EnvPlatformIOEnv  = "PIOENV"
	EnvProjectDir     = "PROJECT_DIR"
	EnvPlatformIOCore = "PLATFORMIO_CORE_DIR"
	EnvXDGConfigHome  = "XDG_CONFIG_HOME"
	EnvUF2IDFLogLevel = "UF2IDF_LOG_LEVEL"
)

// NewDefaultConfig returns a Config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		CMake: CMakeConfig{
			SkipPrefixes: append([]string{}, DefaultSkipPrefixes...),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

type templateData struct {
	LogLevel     string
	SkipPrefixes string
}

// RenderConfigTemplate renders the commented config file written by `config init`.
func RenderConfigTemplate(cfg *Config) string {
	quoted := make([]string, 0, len(cfg.CMake.SkipPrefixes))
	for _, p := range cfg.CMake.SkipPrefixes {
		quoted = append(quoted, fmt.Sprintf("%q", p))
	}
	data := templateData{
		LogLevel:     cfg.Log.Level,
		SkipPrefixes: "[" + strings.Join(quoted, ", ") + "]",
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
