package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/metalca/internal/impact"
)

func TestMaterials(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{
			name: "table",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "KEY")
				assert.Contains(t, out, "aluminum")
				assert.Contains(t, out, "rare_earth")
				assert.Contains(t, out, "hydroelectric")
			},
		},
		{
			name: "json",
			args: []string{"-o", "json"},
			check: func(t *testing.T, out string) {
				var catalog impact.Catalog
				require.NoError(t, json.Unmarshal([]byte(out), &catalog))
				assert.Equal(t, impact.ReferenceCatalog(), catalog)
			},
		},
		{
			name: "ndjson",
			args: []string{"-o", "ndjson"},
			check: func(t *testing.T, out string) {
				lines := strings.Split(strings.TrimSpace(out), "\n")
				assert.Len(t, lines, len(impact.Materials()))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			out, _, err := execute(t, append([]string{"materials"}, tt.args...)...)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestRoot_Help(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"assess", "batch", "materials", "serve", "mcp", "scenario", "config"} {
		assert.Contains(t, out, sub)
	}
}
