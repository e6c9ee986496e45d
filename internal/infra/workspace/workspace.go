// Package workspace prepares the per-board directories of a project.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/uf2idf/internal/domain"
)

// Ensure Preparer implements domain.Workspace.
var _ domain.Workspace = (*Preparer)(nil)

// Preparer creates build directories and seeds board sdkconfig copies.
type Preparer struct {
	logger *slog.Logger
}

// NewPreparer creates a new Preparer.
func NewPreparer(logger *slog.Logger) *Preparer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Preparer{logger: logger}
}

// Prepare creates build/<board> and copies the board's sdkconfig to the
// project root as sdkconfig.<board>.
// An existing root copy is never overwritten, so local edits survive.
func (p *Preparer) Prepare(projectDir, board string) (*domain.WorkspaceInfo, error) {
	info := &domain.WorkspaceInfo{
		BuildDir:      domain.BuildDir(projectDir, board),
		SdkconfigPath: domain.RootSdkconfigPath(projectDir, board),
	}

	if err := os.MkdirAll(info.BuildDir, 0o750); err != nil {
		return nil, fmt.Errorf("create build directory: %w", err)
	}

	src := domain.BoardSdkconfigPath(projectDir, board)
	if _, err := os.Stat(info.SdkconfigPath); err == nil {
		p.logger.Debug("sdkconfig already present", "path", info.SdkconfigPath)
		return info, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", info.SdkconfigPath, err)
	}

	copied, err := copyFile(src, info.SdkconfigPath)
	if err != nil {
		return nil, fmt.Errorf("copy board sdkconfig: %w", err)
	}
	if copied {
		p.logger.Info("seeded board sdkconfig", "from", src, "to", info.SdkconfigPath)
	}
	info.SdkconfigCopied = copied
	return info, nil
}

// copyFile copies src to dst keeping the source permissions.
// A missing src is not an error; it reports false.
func copyFile(src, dst string) (bool, error) {
	in, err := os.Open(src) //nolint:gosec // Path is built from the project dir and board name
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = in.Close() }()

	stat, err := in.Stat()
	if err != nil {
		return false, err
	}
	if !stat.Mode().IsRegular() {
		return false, nil
	}

	// O_EXCL keeps a concurrently created copy intact
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, stat.Mode().Perm()) //nolint:gosec // Destination is inside the project dir
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	return true, nil
}
