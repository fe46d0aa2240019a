package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/metalca/internal/config"
)

// addOutputFlag registers --output on cmd.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "",
		fmt.Sprintf("output format: %s (default from config)", strings.Join(config.OutputFormats(), ", ")))
}

// resolveOutputFormat returns the flag value, or the configured default when
// the flag is empty.
func resolveOutputFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !slices.Contains(config.OutputFormats(), format) {
		return "", fmt.Errorf("unsupported output format %q (want one of %s)",
			format, strings.Join(config.OutputFormats(), ", "))
	}
	return format, nil
}

// useStyledOutput reports whether table output to w gets lipgloss styling:
// always with color=always, never with color=never, otherwise only on a TTY.
func useStyledOutput(w io.Writer) bool {
	switch config.GetGlobalConfig().Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isWriterTerminal(w)
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// renderNDJSON writes each element of items as one compact JSON line.
func renderNDJSON[T any](w io.Writer, items []T) error {
	encoder := json.NewEncoder(w)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// renderYAML writes v as YAML.
func renderYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd // two-space YAML indent
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
