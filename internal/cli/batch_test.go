package cli_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/metalca/internal/cli"
	"github.com/rshade/metalca/internal/cli/pagination"
	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/engine/batch"
)

const fleetDoc = `apiVersion: "1.0"
scenarios:
  - name: alu
  - name: bad
    material: unobtanium
  - material: copper
    recycled_percent: 80
`

func TestBatch_Table(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, "fleet.yaml", fleetDoc)

	out, _, err := execute(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "alu")
	assert.Contains(t, out, "fleet.yaml#3")
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "2 succeeded, 1 failed")
}

func TestBatch_JSONSorted(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, "fleet.yaml", fleetDoc)

	out, _, err := execute(t, "batch", path, "--sort", "score:desc", "-o", "json", "-c", "2")
	require.NoError(t, err)

	var res engine.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Items, 3)

	first, second := res.Items[0].Assessment, res.Items[1].Assessment
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.GreaterOrEqual(t, first.Report.CircularityScore, second.Report.CircularityScore)

	last := res.Items[2]
	assert.Equal(t, "bad", last.Name)
	assert.Nil(t, last.Assessment)
	assert.Contains(t, last.Error, "unobtanium")
}

func TestBatch_NDJSONWindow(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, "fleet.yaml", fleetDoc)

	out, _, err := execute(t, "batch", path, "--sort", "name", "--offset", "1", "--limit", "1", "-o", "ndjson")
	require.NoError(t, err)

	var lines []engine.BatchItem
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var item engine.BatchItem
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &item))
		lines = append(lines, item)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "fleet.yaml#3", lines[0].Name, "failed items sort after successes")
}

func TestBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		extra   []string
		wantErr error
	}{
		{"fail on error", []string{"--fail-on-error"}, cli.ErrBatchFailures},
		{"unknown sort field", []string{"--sort", "colour"}, pagination.ErrInvalidSortField},
		{"bad sort order", []string{"--sort", "name:up"}, pagination.ErrInvalidSortOrder},
		{"negative limit", []string{"--limit", "-1"}, pagination.ErrInvalidLimit},
		{"zero batch size", []string{"--batch-size", "0"}, batch.ErrInvalidBatchSize},
		{"batch size too large", []string{"--batch-size", "1001"}, batch.ErrInvalidBatchSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			path := writeFile(t, "fleet.yaml", fleetDoc)

			_, _, err := execute(t, append([]string{"batch", path}, tt.extra...)...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBatch_MissingFile(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "batch", "does-not-exist.yaml")
	require.Error(t, err)
}

func TestBatch_BatchSize(t *testing.T) {
	tests := []struct {
		name   string
		config string
		extra  []string
	}{
		{name: "flag in order", extra: []string{"--batch-size", "2", "-c", "1"}},
		{name: "flag concurrent", extra: []string{"--batch-size", "2", "-c", "4"}},
		{name: "from config file", config: "batch:\n  concurrency: 2\n  batch_size: 3\n"},
		{name: "config section without batch_size", config: "batch:\n  concurrency: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupCLITest(t)
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(tt.config), 0o600))
			}
			path := writeFile(t, "fleet.yaml", fleetDoc)

			out, _, err := execute(t, append([]string{"batch", path, "-o", "json"}, tt.extra...)...)
			require.NoError(t, err)

			var res engine.BatchResult
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, 2, res.Succeeded)
			assert.Equal(t, 1, res.Failed)
			require.Len(t, res.Items, 3)
			assert.Equal(t, "alu", res.Items[0].Name)
		})
	}
}
