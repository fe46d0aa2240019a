package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/metalca/internal/logging"
)

// ResolveProjectDir determines the project-local .metalca directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. METALCA_PROJECT_DIR env var
//  3. the nearest ancestor of startDir (inclusive) containing .metalca/
//
// Returns an absolute path or "" when no project directory is found. It
// never creates the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, configDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading the user config, then
// shallow-merging projectDir/config.yaml on top, then applying the
// environment. If projectDir is empty it behaves like New.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using user config")
		return cfg
	}

	// Environment wins over the overlay.
	merged.ApplyEnv()
	return merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".metalca"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}

	return filepath.Join(abs, configDirName)
}
