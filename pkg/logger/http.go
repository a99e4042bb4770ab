package logger

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the chi request id of ctx as a log attribute. It is
// empty outside a request.
func RequestID(ctx context.Context) slog.Attr {
	return slog.String("request_id", chimw.GetReqID(ctx))
}

// RequestLogger logs one entry per request through log. It must run after
// chi's RequestID middleware so entries carry the id.
func RequestLogger(log Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&requestFormatter{log: log})
}

type requestFormatter struct {
	log Logger
}

func (f *requestFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &requestEntry{log: f.log.With(
		RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)}
}

type requestEntry struct {
	log Logger
}

func (e *requestEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	args := []any{"status", status, "bytes", bytes, "duration_ms", elapsed.Milliseconds()}
	switch {
	case status >= http.StatusInternalServerError:
		e.log.Error("http: request", args...)
	case status >= http.StatusBadRequest:
		e.log.Warn("http: request", args...)
	default:
		e.log.Info("http: request", args...)
	}
}

func (e *requestEntry) Panic(v interface{}, stack []byte) {
	e.log.Critical("http: panic", "panic", v, "stack", string(stack))
}
