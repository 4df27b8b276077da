package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("Invalid token", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("Admin access required", nil), http.StatusForbidden},
		{"validation", NewValidationError("title is required", nil), http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound},
		{"conflict", NewConflictError("exists", nil), http.StatusConflict},
		{"database", NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestToResponseHidesUnderlyingError(t *testing.T) {
	err := NewDatabaseError("Internal server error", errors.New("dial tcp 10.0.0.1:5432: refused"))

	assert.Equal(t, ErrorResponse{Detail: "Internal server error"}, err.ToResponse())
	assert.Contains(t, err.Error(), "refused")
}

func TestFromErrorUnwrapsWrappedAppError(t *testing.T) {
	sentinel := errors.New("token expired")
	wrapped := fmt.Errorf("authenticate: %w", NewAuthError("Token expired", sentinel))

	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, AuthError, appErr.Type)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.True(t, IsAuthError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.False(t, IsValidationError(wrapped))
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsForbiddenError(NewForbiddenError("Admin access required", nil)))
	assert.True(t, IsValidationError(NewValidationError("title is required", nil)))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", NewNotFoundError("User not found", nil))))
	assert.True(t, IsConflictError(NewConflictError("Record already exists", nil)))
	assert.False(t, IsConflictError(errors.New("plain")))
}

func TestFromErrorPlainErrorBecomesInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, InternalError, appErr.Type)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.Nil(t, FromError(nil))
}
