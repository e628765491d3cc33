package log

import (
	"context"
	"io"

	saltLog "github.com/goto/salt/log"
	"github.com/sirupsen/logrus"
)

type Logger interface {

	// Debug level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Debug(ctx context.Context, msg string, args ...interface{})

	// Info level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Info(ctx context.Context, msg string, args ...interface{})

	// Warn level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Warn(ctx context.Context, msg string, args ...interface{})

	// Error level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Error(ctx context.Context, msg string, args ...interface{})

	// Fatal level message with alternating key/value pairs
	// key should be string, value could be anything printable
	Fatal(ctx context.Context, msg string, args ...interface{})

	// Level returns priority level for which this logger will filter logs
	Level() string

	// Writer used to print logs
	Writer() io.Writer
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ContextKey is the type of the context values the logger picks up.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyActor     ContextKey = "actor"
)

// DefaultContextKeys are attached to every log line when present in the context.
var DefaultContextKeys = []ContextKey{KeyRequestID, KeyActor}

// WithValue stores a value the logger will attach under key.
func WithValue(ctx context.Context, key ContextKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

type CtxLogger struct {
	log  saltLog.Logger
	keys []ContextKey
}

// NewCtxLoggerWithSaltLogger returns a logger that will add context value to the log message, wrapped with saltLog.Logger
func NewCtxLoggerWithSaltLogger(log saltLog.Logger, ctxKeys ...ContextKey) *CtxLogger {
	return &CtxLogger{log: log, keys: ctxKeys}
}

// NewCtxLogger returns a logger that will add context value to the log message
func NewCtxLogger(logLevel, format string, w io.Writer, ctxKeys ...ContextKey) *CtxLogger {
	opts := []saltLog.Option{saltLog.LogrusWithLevel(logLevel)}
	if w != nil {
		opts = append(opts, saltLog.LogrusWithWriter(w))
	}
	if format == FormatJSON {
		opts = append(opts, saltLog.LogrusWithFormatter(&logrus.JSONFormatter{}))
	}
	return NewCtxLoggerWithSaltLogger(saltLog.NewLogrus(opts...), ctxKeys...)
}

// NewNoop discards everything.
func NewNoop() *CtxLogger {
	return NewCtxLoggerWithSaltLogger(saltLog.NewNoop())
}

func (l *CtxLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log.Debug(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.Info(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.Warn(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.Error(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Fatal(ctx context.Context, msg string, args ...interface{}) {
	l.log.Fatal(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Level() string {
	return l.log.Level()
}

func (l *CtxLogger) Writer() io.Writer {
	return l.log.Writer()
}

// addCtxToArgs adds context value to the existing args slice as key/value pair
func (l *CtxLogger) addCtxToArgs(ctx context.Context, args []interface{}) []interface{} {
	if ctx == nil {
		return args
	}

	for _, key := range l.keys {
		if val, ok := ctx.Value(key).(string); ok && val != "" {
			args = append(args, string(key), val)
		}
	}

	return args
}
