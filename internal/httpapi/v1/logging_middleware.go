package v1

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestLogger emits one line per request. Server errors are logged at
// ERROR and client errors at WARN so failed lookups stand out without
// raising alerts.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			reqID := chimw.GetReqID(r.Context())
			l.Debug("request started", "req_id", reqID, "method", r.Method, "path", r.URL.Path)

			next.ServeHTTP(ww, r)

			l.Log(r.Context(), levelFor(ww.Status()), "request complete",
				slog.String("req_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(r)),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// recoverer turns a handler panic into a JSON 500 and logs the stack.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logPanic(r.Context(), l, chimw.GetReqID(r.Context()), rec)
				writeErr(w, http.StatusInternalServerError, "Internal server error", "internal_error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func logPanic(ctx context.Context, l *slog.Logger, reqID string, rec any) {
	l.LogAttrs(ctx, slog.LevelError, "panic recovered",
		slog.String("req_id", reqID),
		slog.Any("panic", rec),
		slog.String("stack", string(debug.Stack())),
	)
}
