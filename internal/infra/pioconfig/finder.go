package pioconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/uf2idf/internal/domain"
)

// FindProjectDir returns the nearest directory at or above startDir that
// holds platformio.ini.
func FindProjectDir(startDir string) (string, error) {
	if startDir == "" {
		return "", errors.New("start directory is empty")
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	// A file path searches from its directory
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if _, err := os.Stat(filepath.Join(cur, domain.ProjectFileName)); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("%w: searched upward from %s", domain.ErrProjectNotFound, abs)
		}
		cur = parent
	}
}
