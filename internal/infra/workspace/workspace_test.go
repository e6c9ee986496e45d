package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/uf2idf/internal/domain"
)

const testBoard = "adafruit_feather_esp32s3"

func writeBoardSdkconfig(t *testing.T, projectDir, content string) string {
	t.Helper()
	path := domain.BoardSdkconfigPath(projectDir, testBoard)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPreparer_Prepare_CreatesBuildDir(t *testing.T) {
	projectDir := t.TempDir()
	p := NewPreparer(nil)

	info, err := p.Prepare(projectDir, testBoard)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(projectDir, "build", testBoard), info.BuildDir)
	stat, err := os.Stat(info.BuildDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	// No board sdkconfig, nothing copied
	assert.False(t, info.SdkconfigCopied)
	_, err = os.Stat(info.SdkconfigPath)
	assert.True(t, os.IsNotExist(err))
}

func TestPreparer_Prepare_CopiesSdkconfigOnce(t *testing.T) {
	projectDir := t.TempDir()
	writeBoardSdkconfig(t, projectDir, "CONFIG_IDF_TARGET=\"esp32s3\"\n")
	p := NewPreparer(nil)

	// First call copies
	info, err := p.Prepare(projectDir, testBoard)
	require.NoError(t, err)
	assert.True(t, info.SdkconfigCopied)
	assert.Equal(t, filepath.Join(projectDir, "sdkconfig."+testBoard), info.SdkconfigPath)

	content, err := os.ReadFile(info.SdkconfigPath)
	require.NoError(t, err)
	assert.Equal(t, "CONFIG_IDF_TARGET=\"esp32s3\"\n", string(content))

	stat, err := os.Stat(info.SdkconfigPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), stat.Mode().Perm())

	// Local edit must survive the second call
	require.NoError(t, os.WriteFile(info.SdkconfigPath, []byte("edited\n"), 0o644))

	info, err = p.Prepare(projectDir, testBoard)
	require.NoError(t, err)
	assert.False(t, info.SdkconfigCopied)

	content, err = os.ReadFile(info.SdkconfigPath)
	require.NoError(t, err)
	assert.Equal(t, "edited\n", string(content))
}

func TestPreparer_Prepare_ExistingRootCopyWithoutSource(t *testing.T) {
	projectDir := t.TempDir()
	root := domain.RootSdkconfigPath(projectDir, testBoard)
	require.NoError(t, os.WriteFile(root, []byte("mine\n"), 0o600))

	info, err := NewPreparer(nil).Prepare(projectDir, testBoard)
	require.NoError(t, err)

	assert.False(t, info.SdkconfigCopied)
	content, err := os.ReadFile(root)
	require.NoError(t, err)
	assert.Equal(t, "mine\n", string(content))
}

func TestPreparer_Prepare_SourceIsDirectory(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.BoardSdkconfigPath(projectDir, testBoard), 0o755))

	info, err := NewPreparer(nil).Prepare(projectDir, testBoard)
	require.NoError(t, err)
	assert.False(t, info.SdkconfigCopied)
}

func TestPreparer_Prepare_BuildDirBlocked(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "build"), []byte("x"), 0o600))

	_, err := NewPreparer(nil).Prepare(projectDir, testBoard)
	assert.Error(t, err)
}
