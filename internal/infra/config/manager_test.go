package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetProjectConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		projectDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		writeFile(t, filepath.Join(projectDir, domain.ProjectConfigFileName), configContent)

		manager := NewManagerWithGlobalDir(projectDir, "")
		info := manager.GetProjectConfigInfo()

		assert.Equal(t, filepath.Join(projectDir, domain.ProjectConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		projectDir := t.TempDir()

		manager := NewManagerWithGlobalDir(projectDir, "")
		info := manager.GetProjectConfigInfo()

		assert.Equal(t, filepath.Join(projectDir, domain.ProjectConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[idf]\npath = \"/opt/esp-idf\"")

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "/opt/esp-idf")
	})

	t.Run("returns empty info without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")
		info := manager.GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitProjectConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		projectDir := t.TempDir()
		manager := NewManagerWithGlobalDir(projectDir, "")

		err := manager.InitProjectConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(projectDir, domain.ProjectConfigFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "[idf]")
		assert.Contains(t, string(content), "-DTINYUF2_PLATFORMIO_SKIP")
	})

	t.Run("created file loads cleanly", func(t *testing.T) {
		projectDir := t.TempDir()
		manager := NewManagerWithGlobalDir(projectDir, "")
		require.NoError(t, manager.InitProjectConfig(domain.NewDefaultConfig()))

		cfg, err := NewLoaderWithGlobalDir(projectDir, "", nil).Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.Warnings)
		assert.Equal(t, domain.DefaultSkipPrefixes, cfg.CMake.SkipPrefixes)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		projectDir := t.TempDir()
		writeFile(t, filepath.Join(projectDir, domain.ProjectConfigFileName), "existing")

		manager := NewManagerWithGlobalDir(projectDir, "")
		err := manager.InitProjectConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates directory and file", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "uf2idf")
		manager := NewManagerWithGlobalDir("", globalDir)

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(globalDir, domain.ConfigFileName))
	})

	t.Run("returns error without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.Error(t, err)
	})
}
