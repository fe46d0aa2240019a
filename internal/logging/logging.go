// Package logging builds the zerolog logger shared by every metalca
// component and carries it, with a per-invocation trace id, on contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats and destinations.
const (
	FormatJSON    = "json"
	FormatConsole = "console"

	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Config selects level, encoding and destination of log output.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// Result is a configured logger and the file it writes to, if any.
type Result struct {
	Logger   zerolog.Logger
	FilePath string
	file     *os.File
}

// Close releases the log file, if one was opened.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. Console output goes to stderr unless the
// output is "file", in which case the file is opened for append. An
// unparsable level falls back to info.
func New(cfg Config, stderr io.Writer) (*Result, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	res := &Result{}
	var w io.Writer = stderr

	if cfg.Output == OutputFile {
		if cfg.File == "" {
			return nil, fmt.Errorf("log output %q requires a file path", OutputFile)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if openErr != nil {
			return nil, fmt.Errorf("opening log file: %w", openErr)
		}
		res.file = f
		res.FilePath = cfg.File
		w = f
	}

	if cfg.Format == FormatConsole && res.file == nil {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	res.Logger = ctx.Logger()
	return res, nil
}

// ComponentLogger tags every event of l with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or the global zerolog
// logger when none is.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &log.Logger
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}

type traceIDKey struct{}

// ContextWithTraceID returns a copy of ctx carrying traceID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id on ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace id on ctx, generating a new ULID
// when there is none.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.Make().String()
}
