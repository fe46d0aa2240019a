package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory tree holding .metalca/, or --project-dir), it
// writes the project-local .metalca/config.yaml and .gitignore. Otherwise, or
// with --global, it writes the user ~/.metalca/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a metalca project, creates project-local configuration at
$PROJECT/.metalca/config.yaml with a .gitignore for generated reports and logs.
Use --global to initialize the user configuration even inside a project.`,
		Example: `  # Create project-local configuration (inside a project)
  metalca config init

  # Create a project in the current directory
  metalca config init --project-dir .

  # Create user configuration
  metalca config init --global

  # Create configuration, overwriting existing
  metalca config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := projectDirFromContext(cmd.Context())

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize user configuration even inside a project")

	return cmd
}

// checkWritable refuses to overwrite path unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := config.Default().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore for generated data\n")
	}

	return nil
}

// initGlobalConfig creates the user config file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}
	if err = checkWritable(path, force); err != nil {
		return err
	}

	if err = config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
