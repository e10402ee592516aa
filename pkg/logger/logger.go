package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a child logger tagging every record with the component name.
	WithComponent(name string) Logger

	// Printf lets the logger act as an fx.Printer.
	Printf(format string, args ...any)
}

type Opts struct {
	Env       string
	SentryDSN string
	Output    io.Writer
}

type Impl struct {
	log *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger backed by zerolog. Records at error level are also
// forwarded to Sentry when a DSN is given.
func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == "production" {
		level = slog.LevelInfo
		zl = zerolog.New(out).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			fmt.Fprintf(out, "sentry init failed: %v\n", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{log: slog.New(slogmulti.Fanout(handlers...))}
}

// NewNop returns a logger that discards everything. Meant for tests.
func NewNop() *Impl {
	return &Impl{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Impl) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *Impl) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *Impl) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

func (l *Impl) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{log: l.log.With("component", name)}
}

func (l *Impl) Printf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events to be delivered.
func (l *Impl) Flush(ctx context.Context) {
	deadline, ok := ctx.Deadline()
	timeout := 2 * time.Second
	if ok {
		timeout = time.Until(deadline)
	}
	sentry.Flush(timeout)
}
