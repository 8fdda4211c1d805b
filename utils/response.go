package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"
)

// APIError is a failure with the status code and message returned to the client.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Standard failures
var (
	ErrInvalidCredentials = &APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrUnauthenticated    = &APIError{Status: http.StatusUnauthorized, Message: "Unauthorized - No token provided"}
	ErrSessionInvalid     = &APIError{Status: http.StatusUnauthorized, Message: "Unauthorized - Invalid token"}
	ErrForbidden          = &APIError{Status: http.StatusForbidden, Message: "Forbidden: Admins only"}
	ErrDuplicateEmail     = &APIError{Status: http.StatusBadRequest, Message: "Email already exists"}
	ErrRouteNotFound      = &APIError{Status: http.StatusNotFound, Message: "Route not found"}
)

// ValidationError reports malformed or missing input.
func ValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// DuplicateNameError reports a unique name collision.
func DuplicateNameError(kind string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: kind + " with this name already exists"}
}

// NotFoundError reports an unknown id or an empty lookup.
func NotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage replies with {"message": message}.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError maps err onto a JSON failure. Anything that is not an *APIError is
// logged, reported and answered with 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		WriteMessage(w, apiErr.Status, apiErr.Message)
		return
	}

	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
	WriteMessage(w, http.StatusInternalServerError, "Internal server error")
}
