package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWithCause_DoesNotMutateSentinel tests copying of shared errors
func TestWithCause_DoesNotMutateSentinel(t *testing.T) {
	cause := errors.New("row missing")

	got := WithCause(ErrDriverNotFound, cause)

	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, ErrDriverNotFound.Err)
}

// TestGetAppError tests extraction and fallback
func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Conflict("duplicate", nil))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, "CONFLICT", GetAppError(wrapped).Code)

	plain := errors.New("boom")
	assert.False(t, IsAppError(plain))
	got := GetAppError(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, plain)
}

// TestAppError_Error tests message formatting
func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "Invalid identifier", ErrInvalidID.Error())
	assert.Equal(t, "bad: boom", BadRequest("bad", errors.New("boom")).Error())
	assert.Nil(t, WithCause(nil, errors.New("ignored")))
	assert.Equal(t, http.StatusServiceUnavailable, ErrRealtimeDisabled.Status)
}
