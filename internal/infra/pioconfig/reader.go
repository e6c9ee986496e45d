// Package pioconfig reads build options from a PlatformIO project file.
package pioconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/samber/lo"
	"gopkg.in/ini.v1"
)

const (
	sectionPlatformIO = "platformio"
	sectionCommonEnv  = "env"
	envSectionPrefix  = "env:"
)

// Ensure Reader implements domain.ProjectReader.
var _ domain.ProjectReader = (*Reader)(nil)

// Reader reads platformio.ini from a project directory.
type Reader struct {
	getenv     func(string) string
	projectDir string
}

// NewReader creates a new Reader for the project at projectDir.
func NewReader(projectDir string) *Reader {
	return &Reader{projectDir: projectDir, getenv: os.Getenv}
}

// Path returns the platformio.ini path.
func (r *Reader) Path() string {
	return filepath.Join(r.projectDir, domain.ProjectFileName)
}

// Read returns the options of env, falling back to the project's default environment.
//
// Options are looked up in [env:<name>], then in the sections it extends,
// then in the common [env] section.
func (r *Reader) Read(env string) (*domain.ProjectOptions, error) {
	file, err := r.load()
	if err != nil {
		return nil, err
	}

	if env == "" {
		env, err = defaultEnv(file)
		if err != nil {
			return nil, err
		}
	}

	if _, err := file.GetSection(envSectionPrefix + env); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEnvNotFound, env)
	}

	chain, err := sectionChain(file, envSectionPrefix+env)
	if err != nil {
		return nil, err
	}

	x := &expander{file: file, chain: chain, getenv: r.getenv}
	lookup := func(key string) string {
		value, _ := x.option(key, 0)
		return value
	}

	return &domain.ProjectOptions{
		Env:           env,
		BoardOverride: lookup(domain.OptionBoardOverride),
		UploadPort:    lookup(domain.OptionUploadPort),
		UploadSpeed:   lookup(domain.OptionUploadSpeed),
	}, nil
}

// Environments lists the [env:*] section names in file order.
func (r *Reader) Environments() ([]string, error) {
	file, err := r.load()
	if err != nil {
		return nil, err
	}
	return envNames(file), nil
}

func (r *Reader) load() (*ini.File, error) {
	path := r.Path()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, path)
		}
		return nil, err
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// defaultEnv returns the first entry of [platformio] default_envs,
// or the first [env:*] section when none is set.
func defaultEnv(file *ini.File) (string, error) {
	if sec, err := file.GetSection(sectionPlatformIO); err == nil && sec.HasKey(domain.OptionDefaultEnvs) {
		if envs := splitList(sec.Key(domain.OptionDefaultEnvs).String()); len(envs) > 0 {
			return envs[0], nil
		}
	}

	names := envNames(file)
	if len(names) == 0 {
		return "", domain.ErrNoEnvironments
	}
	return names[0], nil
}

func envNames(file *ini.File) []string {
	return lo.FilterMap(file.Sections(), func(sec *ini.Section, _ int) (string, bool) {
		name, ok := strings.CutPrefix(sec.Name(), envSectionPrefix)
		return name, ok && name != ""
	})
}

// sectionChain returns the lookup order for a section: the section itself,
// the sections named by its extends option (depth first), then [env].
func sectionChain(file *ini.File, start string) ([]*ini.Section, error) {
	var chain []*ini.Section
	visiting := make(map[string]bool)
	seen := make(map[string]bool)

	var walk func(name string) error
	walk = func(name string) error {
		if visiting[name] {
			return fmt.Errorf("%w: %s", domain.ErrCircularExtends, name)
		}
		if seen[name] {
			return nil
		}
		sec, err := file.GetSection(name)
		if err != nil {
			// PlatformIO ignores extends entries pointing at missing sections
			return nil
		}
		visiting[name] = true
		seen[name] = true
		chain = append(chain, sec)
		if sec.HasKey(domain.OptionExtends) {
			for _, parent := range splitList(sec.Key(domain.OptionExtends).String()) {
				if err := walk(parent); err != nil {
					return err
				}
			}
		}
		visiting[name] = false
		return nil
	}

	if err := walk(start); err != nil {
		return nil, err
	}
	if common, err := file.GetSection(sectionCommonEnv); err == nil && !seen[sectionCommonEnv] {
		chain = append(chain, common)
	}
	return chain, nil
}

// splitList splits a PlatformIO list value (comma or newline separated).
func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	return lo.Compact(lo.Map(fields, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
