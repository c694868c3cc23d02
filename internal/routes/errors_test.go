package routes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Binaergewitter/datefinder/internal/calendar"
	"github.com/Binaergewitter/datefinder/internal/storage"
)

func TestGetErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetErrorStatus(calendar.ErrPastDate))
	assert.Equal(t, http.StatusUnauthorized, GetErrorStatus(ErrInvalidCredentials))
	assert.Equal(t, http.StatusConflict, GetErrorStatus(storage.ErrUsernameTaken))
	assert.Equal(t, http.StatusInternalServerError, GetErrorStatus(errors.New("disk on fire")))

	// Wrapped errors resolve through errors.Is
	wrapped := fmt.Errorf("%w: 1 of 2", calendar.ErrInsufficientAvailability)
	assert.Equal(t, http.StatusBadRequest, GetErrorStatus(wrapped))
}

func TestGetErrorMessage(t *testing.T) {
	wrapped := fmt.Errorf("%w: %q", calendar.ErrInvalidDate, "garbage")
	assert.Equal(t, "Invalid date format", GetErrorMessage(wrapped))

	// Unknown 5xx errors never leak details
	assert.Equal(t, "An internal error occurred", GetErrorMessage(errors.New("dsn=secret")))
}
