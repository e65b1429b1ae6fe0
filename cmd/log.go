package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logOutput is where the command logger writes.
var logOutput io.Writer = os.Stderr

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(logOutput, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "pane-columns",
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() if there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
