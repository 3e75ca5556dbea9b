package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/yousuf64/shift"
)

// StatusError carries the HTTP status code a handler wants the error
// middleware to respond with. Errors without one respond as 500.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// NewStatusError wraps err with an HTTP status code.
func NewStatusError(code int, err error) *StatusError {
	return &StatusError{Code: code, Err: err}
}

// CORSMiddleware handles CORS requests with default settings
func CORSMiddleware(next shift.HandlerFunc) shift.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")
		return next(w, r, route)
	}
}

// ErrorMiddleware handles errors with structured logging
func ErrorMiddleware(logger *slog.Logger) func(shift.HandlerFunc) shift.HandlerFunc {
	return func(next shift.HandlerFunc) shift.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
			err := next(w, r, route)
			if err != nil {
				logger.Error("Request error",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("error", err))

				status := http.StatusInternalServerError
				var statusErr *StatusError
				if errors.As(err, &statusErr) {
					status = statusErr.Code
				}
				http.Error(w, err.Error(), status)
			}
			return err
		}
	}
}

// OptionsHandler handles OPTIONS requests for CORS preflight
func OptionsHandler(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	w.WriteHeader(http.StatusOK)
	return nil
}
