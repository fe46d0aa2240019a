package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/metalca/internal/config"
)

// TestConfigInit_InsideProject verifies that "config init" inside a project
// creates project-local .metalca/config.yaml and .metalca/.gitignore.
func TestConfigInit_InsideProject(t *testing.T) {
	setupCLITest(t)

	projectRoot := t.TempDir()
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err, "config init should succeed inside a project")
	assert.Contains(t, out, "Configuration initialized at")

	configPath := filepath.Join(projectRoot, ".metalca", "config.yaml")
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr, ".metalca/config.yaml should exist")

	gitignoreData, readErr := os.ReadFile(filepath.Join(projectRoot, ".metalca", ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(gitignoreData))
}

// TestConfigInit_ProjectDirFlag verifies that --project-dir creates a new
// project even when no .metalca/ exists yet.
func TestConfigInit_ProjectDirFlag(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()

	_, _, err := execute(t, "--project-dir", projectRoot, "config", "init")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(projectRoot, ".metalca", "config.yaml"))
	require.NoError(t, statErr)
}

// TestConfigInit_ExistingGitignorePreserved verifies that "config init --force"
// never overwrites an existing .gitignore.
func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	setupCLITest(t)

	projectRoot := t.TempDir()
	metalcaDir := filepath.Join(projectRoot, ".metalca")
	require.NoError(t, os.MkdirAll(metalcaDir, 0o750))

	customContent := "# My custom gitignore\n*.secret\n"
	gitignorePath := filepath.Join(metalcaDir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignorePath, []byte(customContent), 0o644))
	t.Setenv(config.EnvProjectDir, projectRoot)

	_, _, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)

	gitignoreData, readErr := os.ReadFile(gitignorePath)
	require.NoError(t, readErr)
	assert.Equal(t, customContent, string(gitignoreData))
}

// TestConfigInit_GlobalFlag verifies that --global writes to METALCA_HOME
// even inside a project.
func TestConfigInit_GlobalFlag(t *testing.T) {
	home := setupCLITest(t)

	projectRoot := t.TempDir()
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, _, err := execute(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	_, statErr := os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, statErr, "global config.yaml should exist in METALCA_HOME")

	_, statErr = os.Stat(filepath.Join(projectRoot, ".metalca", "config.yaml"))
	assert.True(t, os.IsNotExist(statErr), "project-local config.yaml should not exist with --global")
}

// TestConfigInit_OutsideProject verifies the fallback to user configuration.
func TestConfigInit_OutsideProject(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	data, readErr := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, readErr)

	var saved config.Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, *config.Default(), saved)
}

// TestConfigInit_RefusesOverwrite verifies that an existing file needs --force.
func TestConfigInit_RefusesOverwrite(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "config", "init")
	require.NoError(t, err)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force")
}

// TestConfigInit_ForceOverwritesConfig verifies that "config init --force"
// replaces an existing project config with defaults.
func TestConfigInit_ForceOverwritesConfig(t *testing.T) {
	setupCLITest(t)

	projectRoot := t.TempDir()
	metalcaDir := filepath.Join(projectRoot, ".metalca")
	require.NoError(t, os.MkdirAll(metalcaDir, 0o750))

	existingConfig := filepath.Join(metalcaDir, "config.yaml")
	originalContent := "# old config\noutput:\n  default_format: json\n"
	require.NoError(t, os.WriteFile(existingConfig, []byte(originalContent), 0o644))
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, _, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")

	newContent, readErr := os.ReadFile(existingConfig)
	require.NoError(t, readErr)
	assert.NotEqual(t, originalContent, string(newContent))
	assert.Contains(t, string(newContent), "default_format: table")
}
