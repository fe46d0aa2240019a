package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/scenario"
)

// NewScenarioInitCmd creates the scenario init command, which writes a
// scenario document holding the reference scenario.
func NewScenarioInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write a scenario template",
		Long: `Writes a scenario document holding the reference scenario, ready to edit.
Without FILE the template is printed to stdout. The format follows the FILE
extension (.json for JSON, YAML otherwise) unless --format is given.`,
		Example: `  # Print a YAML template
  metalca scenario init

  # Create scenario.json
  metalca scenario init scenario.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if format == "" {
				format = scenario.FormatYAML
				if strings.EqualFold(filepath.Ext(path), ".json") {
					format = scenario.FormatJSON
				}
			}

			tmpl := scenario.Defaults()
			tmpl.Name = "reference"
			data, err := scenario.Marshal(&scenario.File{
				APIVersion: scenario.CurrentAPIVersion,
				Scenarios:  []scenario.Spec{tmpl},
			}, format)
			if err != nil {
				return err
			}

			if path == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if !force {
				if _, statErr := os.Stat(path); statErr == nil {
					return errors.New("scenario file already exists, use --force to overwrite")
				}
			}
			if err = os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("writing scenario file: %w", err)
			}
			cmd.Printf("Scenario template written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "template format: yaml or json")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// NewScenarioValidateCmd creates the scenario validate command, which checks
// documents without assessing them.
func NewScenarioValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate scenario documents",
		Long: `Parses each document and checks every scenario's ranges and enumerations.
Material and option keys are resolved only by 'assess' and 'batch'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var invalid int
			for _, path := range args {
				doc, err := scenario.Load(path)
				if err != nil {
					cmd.Printf("✗ %v\n", err)
					invalid++
					continue
				}
				for _, item := range doc.Named(filepath.Base(path)) {
					if err = item.Spec.Validate(); err != nil {
						cmd.Printf("✗ %s: %v\n", item.Name, err)
						invalid++
						continue
					}
					cmd.Printf("✓ %s\n", item.Name)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d problem(s) found", scenario.ErrInvalidScenario, invalid)
			}
			return nil
		},
	}
}
