package cli_test

import (
	"bytes"
	"testing"

	"github.com/rshade/metalca/internal/cli"
	"github.com/rshade/metalca/internal/config"
)

// setupCLITest isolates a test from the user's home, config and working
// directory, and registers cleanup for global state. It returns the
// isolated METALCA_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvConcurrency, "")
	t.Setenv(config.EnvBatchSize, "")
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
