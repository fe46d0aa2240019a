package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/cli/pagination"
	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/engine/batch"
	"github.com/rshade/metalca/internal/scenario"
)

// ErrBatchFailures is returned when --fail-on-error is set and a scenario
// failed.
const ErrBatchFailures = constError("one or more scenarios failed")

// NewBatchCmd creates the batch command, which assesses every scenario of
// one or more documents concurrently.
func NewBatchCmd() *cobra.Command {
	var (
		output      string
		sortExpr    string
		concurrency int
		batchSize   int
		failOnError bool
		params      = pagination.NewParams()
	)

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Assess every scenario in one or more scenario documents",
		Long: `Loads every scenario from the given YAML or JSON documents and assesses them
concurrently. A scenario that fails validation or names an unknown material is
reported in its row and does not stop the others.

Unnamed scenarios are called FILE#N.`,
		Example: `  # Assess two files, best circularity first
  metalca batch plant-a.yaml plant-b.json --sort score:desc

  # Top 5 emitters as NDJSON
  metalca batch fleet.yaml --sort co2e:desc --limit 5 -o ndjson

  # Large fleet: 8 workers, 50 scenarios per task
  metalca batch fleet.yaml -c 8 --batch-size 50

  # Fail the pipeline if any scenario is invalid
  metalca batch scenarios/*.yaml --fail-on-error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			params.SortField, params.SortOrder, err = pagination.ParseSort(sortExpr)
			if err != nil {
				return err
			}
			if err = params.Validate(); err != nil {
				return err
			}
			sorter := pagination.NewBatchItemSorter()
			if params.SortField != "" && !sorter.IsValidField(params.SortField) {
				return fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField,
					params.SortField, strings.Join(sorter.GetValidFields(), ", "))
			}

			items, err := loadScenarios(args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("concurrency") {
				concurrency = config.GetConcurrency()
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = config.GetBatchSize()
			} else if batchSize < batch.MinBatchSize || batchSize > batch.MaxBatchSize {
				return fmt.Errorf("--batch-size: %w: got %d", batch.ErrInvalidBatchSize, batchSize)
			}

			var batches atomic.Int64
			assessor := engine.New(
				engine.WithConcurrency(concurrency),
				engine.WithBatchSize(batchSize),
				engine.WithProgress(func(s batch.ProgressSnapshot) {
					batches.Add(1)
					logger.Debug().Ctx(ctx).
						Int("processed", s.ProcessedItems).
						Int("total", s.TotalItems).
						Float64("percent", s.PercentComplete).
						Dur("eta", s.EstimatedRemaining).
						Msg("batch progress")
				}),
			)

			res, runErr := assessor.AssessBatch(ctx, items)
			if res == nil {
				return runErr
			}
			logger.Info().Ctx(ctx).
				Int("scenarios", len(items)).
				Int("succeeded", res.Succeeded).
				Int("failed", res.Failed).
				Int64("batches", batches.Load()).
				Msg("batch finished")

			sorted, err := sorter.Sort(res.Items, params.SortField, params.SortOrder)
			if err != nil {
				return err
			}
			shown := pagination.Apply(*params, sorted)

			if err = renderBatchOutput(cmd, format, res, shown); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			if failOnError && res.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrBatchFailures, res.Failed, len(res.Items))
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().StringVar(&sortExpr, "sort", "",
		"sort rows by field[:asc|desc]; fields: name, material, score, co2e, co2_reduction")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "show at most N rows (0 = all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "skip the first N rows")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", config.DefaultConcurrency,
		"scenarios evaluated at once (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", config.DefaultBatchSize,
		"scenarios per worker task (default from config)")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero if any scenario fails")

	return cmd
}

// loadScenarios reads every file and names unnamed scenarios after their
// file.
func loadScenarios(paths []string) ([]scenario.Named, error) {
	var items []scenario.Named
	for _, path := range paths {
		doc, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		items = append(items, doc.Named(filepath.Base(path))...)
	}
	return items, nil
}

func renderBatchOutput(cmd *cobra.Command, format string, res *engine.BatchResult, shown []engine.BatchItem) error {
	w := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		out := *res
		out.Items = shown
		return renderJSON(w, out)
	case config.FormatNDJSON:
		return renderNDJSON(w, shown)
	case config.FormatYAML:
		out := *res
		out.Items = shown
		return renderYAML(w, out)
	default:
		return renderBatchTable(w, res, shown, useStyledOutput(w))
	}
}
