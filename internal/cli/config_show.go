package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration after merging the user file, the project overlay and
METALCA_* environment overrides. YAML by default; --output json for JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if output == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), cfg)
			}
			return renderYAML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.FormatYAML, "output format: yaml or json")
	return cmd
}
