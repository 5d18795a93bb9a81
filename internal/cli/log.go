// Package cli implements the cdgpath command-line interface.
//
// Every command takes a CDG file (.json or .toml, or "-" for stdin) and
// works on the scored forest:
//   - score: print the forest with decision scores
//   - paths: rank the top test paths
//   - cover: apply observed decisions and write the updated graph
//   - render: draw the forest or the ranked paths as text, DOT or SVG
//   - exhaust: simulate covering the best path until nothing is left
//   - explore: browse the forest interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Each
// invocation gets a short run id attached to every log line, and the
// logger travels to commands through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of a step with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Ranked 3 paths (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
