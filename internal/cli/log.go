// Package cli implements the pielabel command-line interface.
//
// The CLI lays out callout labels for pie chart documents, renders them,
// resolves pointer events against a layout and serves the same pipeline
// over HTTP. It is built on cobra; status lines use lipgloss and logs go
// through charmbracelet/log.
//
// # Commands
//
//   - render: lay out labels and write SVG, PNG, PDF or JSON
//   - hit: resolve a pointer position to a label or slice datum
//   - serve: run the HTTP API
//   - config: print or create pielabel.toml
//   - cache: clear or locate the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v), which lowers the level to debug and
// shows the layout, cache and event-binding decisions. The logger travels in
// context.Context, so the pipeline and helpers log through the same sink.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat keeps sub-second precision so layout and render stages can
// be told apart in -v output.
const logTimeFormat = "15:04:05.00"

// newLogger returns the CLI logger. Structured fields go through key/value
// pairs, e.g. logger.Info("layout cached", "labels", 12).
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress logs how long a command step took once it finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and an "elapsed" field rounded
// to the millisecond:
//
//	12:04:01.33 INFO Resolved pointer event x=210 y=100 source=slice elapsed=1ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

// withLogger attaches l to ctx. RootCommand does this before any subcommand
// runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() when a
// command is executed without going through RootCommand.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
