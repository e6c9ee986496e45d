// Package toolchain locates the ESP-IDF idf.py command and the python that runs it.
package toolchain

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/runoshun/uf2idf/internal/domain"
)

const idfScript = "idf.py"

// Ensure Locator implements domain.ToolLocator.
var _ domain.ToolLocator = (*Locator)(nil)

// Locator resolves idf.py from configuration, well-known directories and PATH.
type Locator struct {
	lookPath   func(string) (string, error)
	logger     *slog.Logger
	homeDir    string
	pioCoreDir string
}

// NewLocator creates a Locator for the current user.
func NewLocator(logger *slog.Logger) *Locator {
	home, _ := os.UserHomeDir()
	return NewLocatorWithHome(home, os.Getenv(domain.EnvPlatformIOCore), exec.LookPath, logger)
}

// NewLocatorWithHome creates a Locator with explicit home and PlatformIO core
// directories and PATH lookup.
// This is useful for testing.
func NewLocatorWithHome(homeDir, pioCoreDir string, lookPath func(string) (string, error), logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if pioCoreDir == "" && homeDir != "" {
		pioCoreDir = filepath.Join(homeDir, ".platformio")
	}
	return &Locator{
		lookPath:   lookPath,
		logger:     logger,
		homeDir:    homeDir,
		pioCoreDir: pioCoreDir,
	}
}

// Locate resolves the idf.py command.
//
// Order: explicit [idf].py command, IDF_PATH candidates, framework-espidf
// candidates, idf.py on PATH. Scripts ending in .py are run with the resolved python.
func (l *Locator) Locate(cfg *domain.Config) (*domain.ToolResolution, error) {
	res := &domain.ToolResolution{
		FrameworkDir: l.frameworkDir(cfg),
	}
	res.Python, res.PythonEnv = l.resolvePython(cfg)

	l.logger.Debug("python resolved",
		"python", res.Python,
		"python_env", res.PythonEnv,
		"framework_dir", res.FrameworkDir)

	if cfg.IDF.Py != "" {
		parts, err := shlex.Split(cfg.IDF.Py)
		if err != nil {
			return nil, fmt.Errorf("parse idf.py command %q: %w", cfg.IDF.Py, err)
		}
		if len(parts) > 0 {
			res.Source = domain.ToolSourceExplicit
			return l.withCommand(res, parts)
		}
	}

	var candidates []string
	if cfg.IDF.Path != "" {
		candidates = append(candidates,
			filepath.Join(cfg.IDF.Path, "tools", idfScript),
			filepath.Join(cfg.IDF.Path, idfScript))
	}
	idfPathCount := len(candidates)
	if res.FrameworkDir != "" {
		candidates = append(candidates,
			filepath.Join(res.FrameworkDir, "tools", idfScript),
			filepath.Join(res.FrameworkDir, idfScript))
	}

	for i, candidate := range candidates {
		if !isFile(candidate) {
			l.logger.Debug("idf.py candidate missing", "path", candidate)
			continue
		}
		res.Source = domain.ToolSourceFramework
		if i < idfPathCount {
			res.Source = domain.ToolSourceIDFPath
		}
		return l.withCommand(res, []string{candidate})
	}

	if found, err := l.lookPath(idfScript); err == nil && found != "" {
		res.Source = domain.ToolSourcePath
		return l.withCommand(res, []string{found})
	}

	return nil, domain.ErrToolNotFound
}

// withCommand sets the command, prefixing python when the program is a .py script.
func (l *Locator) withCommand(res *domain.ToolResolution, parts []string) (*domain.ToolResolution, error) {
	if strings.HasSuffix(parts[0], ".py") {
		if res.Python == "" {
			return nil, domain.ErrPythonNotFound
		}
		parts = append([]string{res.Python}, parts...)
	}
	res.Command = parts
	l.logger.Debug("idf.py resolved", "source", string(res.Source), "command", strings.Join(parts, " "))
	return res, nil
}

// resolvePython returns the interpreter and IDF virtualenv.
//
// An explicit interpreter is always kept. Otherwise the virtualenv's
// bin/python is preferred over python on PATH.
func (l *Locator) resolvePython(cfg *domain.Config) (python, pythonEnv string) {
	python = cfg.IDF.Python
	explicit := python != ""
	if !explicit {
		python = l.pathPython()
	}

	pythonEnv = cfg.IDF.PythonEnv
	if pythonEnv == "" {
		pythonEnv = l.newestPythonEnv()
	}

	if pythonEnv != "" && !explicit {
		if candidate := venvPython(pythonEnv); isFile(candidate) {
			python = candidate
		}
	}
	return python, pythonEnv
}

func (l *Locator) pathPython() string {
	for _, name := range []string{"python3", "python"} {
		if p, err := l.lookPath(name); err == nil && p != "" {
			return p
		}
	}
	return ""
}

// newestPythonEnv returns the most recently modified ESP-IDF virtualenv
// under ~/.espressif/python_env that contains bin/python.
func (l *Locator) newestPythonEnv() string {
	if l.homeDir == "" {
		return ""
	}
	root := filepath.Join(l.homeDir, ".espressif", "python_env")
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}

	type envDir struct {
		path    string
		modUnix int64
	}
	dirs := make([]envDir, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, envDir{
			path:    filepath.Join(root, e.Name()),
			modUnix: info.ModTime().UnixNano(),
		})
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].modUnix > dirs[j].modUnix
	})

	for _, d := range dirs {
		if isFile(venvPython(d.path)) {
			return d.path
		}
	}
	return ""
}

// frameworkDir returns the configured framework-espidf directory, or the
// PlatformIO package directory when it exists.
func (l *Locator) frameworkDir(cfg *domain.Config) string {
	if cfg.IDF.FrameworkDir != "" {
		return cfg.IDF.FrameworkDir
	}
	if l.pioCoreDir == "" {
		return ""
	}
	dir := filepath.Join(l.pioCoreDir, "packages", "framework-espidf")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

func venvPython(envDir string) string {
	return filepath.Join(envDir, "bin", "python")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
