// Package pagination provides sorting and windowing for CLI list output.
//
// It contains:
//   - Params: --sort, --limit and --offset flag values and validation
//   - Sorter: field-validated ordering of batch results
//
// The batch command uses it to rank scenarios before rendering.
package pagination
