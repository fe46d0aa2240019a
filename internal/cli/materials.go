package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/impact"
)

// NewMaterialsCmd creates the materials command, which lists the reference
// tables.
func NewMaterialsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List supported materials and option keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			catalog := impact.ReferenceCatalog()
			w := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return renderJSON(w, catalog)
			case config.FormatNDJSON:
				return renderNDJSON(w, catalog.Materials)
			case config.FormatYAML:
				return renderYAML(w, catalog)
			default:
				return renderMaterialsTable(w, catalog, useStyledOutput(w))
			}
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
