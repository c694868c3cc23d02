package routes

import (
	"errors"
	"net/http"

	"github.com/Binaergewitter/datefinder/internal/calendar"
	"github.com/Binaergewitter/datefinder/internal/jwt"
	"github.com/Binaergewitter/datefinder/internal/storage"
)

// Routes-specific errors (that don't conflict with other packages)
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRequest     = errors.New("invalid request")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request: all calendar validation errors are detected before
	// any mutation happens
	calendar.ErrInvalidDate:              http.StatusBadRequest,
	calendar.ErrPastDate:                 http.StatusBadRequest,
	calendar.ErrInsufficientAvailability: http.StatusBadRequest,
	storage.ErrDateOutOfRange:            http.StatusBadRequest,
	ErrInvalidRequest:                    http.StatusBadRequest,

	// 401 Unauthorized
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,
	jwt.ErrNonValidToken:  http.StatusUnauthorized,

	// 409 Conflict
	storage.ErrUsernameTaken: http.StatusConflict,
}

// errorMessageMap maps errors to user-facing messages
var errorMessageMap = map[error]string{
	calendar.ErrInvalidDate:              "Invalid date format",
	calendar.ErrPastDate:                 "Cannot modify past dates",
	calendar.ErrInsufficientAvailability: "Not enough available users to confirm this date",
	storage.ErrDateOutOfRange:            "Invalid date format",
	ErrInvalidRequest:                    "Invalid request format",
	ErrUnauthorized:                      "Authentication required",
	ErrInvalidCredentials:                "Invalid credentials provided",
	jwt.ErrNonValidToken:                 "Invalid or expired authentication token",
	storage.ErrUsernameTaken:             "Username is already taken",
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	if status, ok := errorStatusMap[err]; ok {
		return status
	}

	// Check if error wraps a known error
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// GetErrorMessage returns a user-friendly message for an error
func GetErrorMessage(err error) string {
	if msg, ok := errorMessageMap[err]; ok {
		return msg
	}

	for knownErr, msg := range errorMessageMap {
		if errors.Is(err, knownErr) {
			return msg
		}
	}

	// For unknown errors, hide details on 5xx
	if GetErrorStatus(err) >= 500 {
		return "An internal error occurred"
	}
	return err.Error()
}
