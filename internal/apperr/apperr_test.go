package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithErrorDoesNotMutate(t *testing.T) {
	cause := errors.New("disk full")
	e := ErrStorage.WithError(cause)

	assert.Nil(t, ErrStorage.Err)
	assert.Equal(t, cause, e.Err)
	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, e, ErrStorage)
	assert.Contains(t, e.Error(), "STORAGE_ERROR")
	assert.Contains(t, e.Error(), "disk full")
}

func TestWithDetailsCopies(t *testing.T) {
	details := map[string]any{"owner": "u1"}
	e := ErrNotFound.WithDetails(details)
	details["owner"] = "u2"

	assert.Equal(t, "u1", e.Details["owner"])
	assert.Nil(t, ErrNotFound.Details)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"app error", ErrBadRequest, "BAD_REQUEST", http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("tracker: %w", ErrStorage.WithError(errors.New("x"))), "STORAGE_ERROR", http.StatusInternalServerError},
		{"canceled", fmt.Errorf("x: %w", context.Canceled), "REQUEST_CANCELED", http.StatusRequestTimeout},
		{"deadline", context.DeadlineExceeded, "TIMEOUT", http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.StatusCode)
		})
	}
}

func TestFromValidation(t *testing.T) {
	type body struct {
		Owner string `validate:"required"`
	}
	err := validator.New().Struct(body{})
	require.Error(t, err)

	got := FromError(err)
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	fields, ok := got.Details["fields"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "Owner", fields[0]["field"])
	assert.Equal(t, "required", fields[0]["rule"])
}
