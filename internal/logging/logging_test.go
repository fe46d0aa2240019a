package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONToStderr(t *testing.T) {
	var buf bytes.Buffer
	res, err := New(Config{Level: "debug", Format: FormatJSON}, &buf)
	require.NoError(t, err)
	defer res.Close()

	logger := ComponentLogger(res.Logger, "engine")
	logger.Debug().Str("material", "aluminum").Msg("resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "aluminum", entry["material"])
	assert.Equal(t, "debug", entry["level"])
	assert.Empty(t, res.FilePath)
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	res, err := New(Config{Level: "chatty"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, res.Logger.GetLevel())

	res.Logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metalca.log")
	res, err := New(Config{Level: "info", Output: OutputFile, File: path}, os.Stderr)
	require.NoError(t, err)

	res.Logger.Info().Msg("to file")
	require.NoError(t, res.Close())
	require.NoError(t, res.Close(), "close is idempotent")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Equal(t, path, res.FilePath)
}

func TestNew_FileOutputRequiresPath(t *testing.T) {
	_, err := New(Config{Output: OutputFile}, os.Stderr)
	require.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("carried")
	assert.Contains(t, buf.String(), "carried")

	assert.NotNil(t, FromContext(context.Background()))
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26, "ULID string length")

	ctx = ContextWithTraceID(ctx, "trace-1")
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Equal(t, "trace-1", GetOrGenerateTraceID(ctx))
}
