package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid input", InvalidInput("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"unauthorized", Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", Conflict("User already exists"), http.StatusConflict, "User already exists"},
		{"not found", NotFound("Item not found"), http.StatusNotFound, "Item not found"},
		{"wrapped", fmt.Errorf("update: %w", NotFound("Item not found")), http.StatusNotFound, "Item not found"},
		{"bare sentinel", ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, tt.msg, Message(tt.err))
		})
	}
}

func TestErrorIsKind(t *testing.T) {
	err := Conflict("User already exists")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}
