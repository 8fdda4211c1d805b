package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestLogger attaches logger and a request id to every request and writes an access line.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("HTTP Request")
	})
	requestID := hlog.RequestIDHandler("req_id", "X-Request-Id")
	withLogger := hlog.NewHandler(logger)

	return func(next http.Handler) http.Handler {
		return withLogger(requestID(access(next)))
	}
}

// CORS allows credentialed calls from the configured frontend origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
		handlers.MaxAge(int((12 * time.Hour).Seconds())),
	)
}

// Recover turns panics into 500 responses and logs them.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
		handlers.PrintRecoveryStack(false),
	)
}

type recoveryLogger struct {
	zl zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.zl.Error().Msg(fmt.Sprint(v...))
}
