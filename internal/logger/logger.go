package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func NewLogger(service string) *Logger {
	return New(service, os.Stdout)
}

// New builds a logger writing JSON lines to w.
func New(service string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) Info(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelInfo, action, requestID, message, attrs)
}

func (l *Logger) Debug(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, action, requestID, message, attrs)
}

func (l *Logger) Warn(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelWarn, action, requestID, message, attrs)
}

func (l *Logger) Error(action, requestID, message string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.log(slog.LevelError, action, requestID, message, attrs)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, extra []slog.Attr) {
	attrs := make([]slog.Attr, 0, 5+len(extra))
	attrs = append(attrs,
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	)
	attrs = append(attrs, extra...)
	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}

type requestIDKey struct{}

// WithRequestID stores the request id on ctx for downstream log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
