// Package log configures zerolog for the repo and exposes a small
// scoped-logger surface over it.
package log

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// InitGlobals builds the process logger, installs it as the zerolog
// fallback context logger, and returns it. With json the logger emits
// machine-readable lines to stderr; otherwise it uses the console
// writer.
func InitGlobals(level zerolog.Level, json, noColor bool) *zerolog.Logger {
	var l zerolog.Logger

	if json {
		l = zerolog.New(os.Stderr)
	} else {
		w := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.NoColor = noColor
			w.TimeFormat = time.DateTime
		})
		l = zerolog.New(w)
	}

	l = l.Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &l

	return &l
}

// Logger is a thin wrapper around a zerolog logger.
type Logger struct {
	zl *zerolog.Logger
}

// Ctx returns the logger stored in ctx, or the fallback logger.
func Ctx(ctx context.Context) Logger {
	return Logger{zerolog.Ctx(ctx)}
}

// New returns a logger for the named component scope.
func New(scope string) Logger {
	parent := zerolog.DefaultContextLogger
	if parent == nil {
		nop := zerolog.Nop()
		parent = &nop
	}

	l := parent.With().Str("s", scope).Logger()

	return Logger{&l}
}

// WithContext stores the logger in ctx.
func (l Logger) WithContext(ctx context.Context) context.Context {
	return l.zl.WithContext(ctx)
}

func (l Logger) Trace(msg string) {
	l.zl.Trace().Msg(msg)
}

func (l Logger) Tracef(format string, args ...any) {
	l.zl.Trace().Msgf(format, args...)
}

func (l Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l Logger) Errorf(err error, format string, args ...any) {
	l.zl.Error().Err(err).Msgf(format, args...)
}
