package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/manhuntgame/manhunt/internal/model"
)

// ErrorResponse is the JSON body for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a caller-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError. Store failures collapse to
// a generic 500 so no backend detail leaks to the caller.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, "Game not found"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	case errors.Is(err, model.ErrMrXTaken):
		return &httpError{http.StatusBadRequest, "Mr. X is already taken in this game. Please choose Detective."}
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, "Name is required"}
	case errors.Is(err, model.ErrSenderRequired):
		return &httpError{http.StatusBadRequest, "Sender name is required"}
	case errors.Is(err, model.ErrMessageRequired):
		return &httpError{http.StatusBadRequest, "Message is required"}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, "Invalid payload"}
	case errors.Is(err, model.ErrInvalidBoundary):
		return &httpError{http.StatusBadRequest, "Boundary must contain at least one polygon feature"}
	case errors.Is(err, model.ErrDetectivesOnly):
		return &httpError{http.StatusForbidden, "Only detectives can use the detectives chat"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewInternalError creates a generic 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
