// Package logging carries a zerolog logger through command context.
// Commands are silent by default; --verbose attaches a console logger so
// renderers keep stdout to themselves.
package logging

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

type logKey struct{}

// New returns a console logger writing to w. Verbose lowers the level to
// debug; otherwise only warnings and errors surface.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, l)
}

// FromContext returns the logger stored in ctx, or a disabled one.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(logKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
