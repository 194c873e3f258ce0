package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSnap/internal/domain"
)

type fakeStatusError struct {
	code    int
	message string
}

func (e *fakeStatusError) Error() string         { return fmt.Sprintf("status %d", e.code) }
func (e *fakeStatusError) StatusCode() int       { return e.code }
func (e *fakeStatusError) ServerMessage() string { return e.message }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestClassifyStatusTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code      int
		server    string
		message   string
		retryable bool
	}{
		{400, "", "Invalid request. Please check your input.", false},
		{401, "", "Unauthorized. Please check your credentials.", false},
		{403, "", "Access forbidden.", false},
		{404, "", "Resource not found.", false},
		{429, "", "Too many requests. Please try again later.", true},
		{500, "", "Server error. Please try again later.", true},
		{502, "", "Service temporarily unavailable. Retrying...", true},
		{503, "", "Service temporarily unavailable. Retrying...", true},
		{504, "", "Service temporarily unavailable. Retrying...", true},
		{404, "page missing", "Resource not found.", false},
		{418, "I'm a teapot", "I'm a teapot", false},
		{422, "", "Server error (422)", false},
		{507, "", "Server error (507)", true},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_%s", tc.code, tc.server), func(t *testing.T) {
			f := Classify(fmt.Errorf("do request: %w", &fakeStatusError{code: tc.code, message: tc.server}))
			require.NotNil(t, f)
			assert.Equal(t, tc.message, f.Message)
			assert.Equal(t, tc.code, f.Code)
			assert.Equal(t, tc.retryable, f.Retryable)
		})
	}
}

func TestClassifyWithoutResponse(t *testing.T) {
	t.Parallel()

	f := Classify(fmt.Errorf("do request: %w", timeoutError{}))
	assert.Equal(t, "Request timeout. The API is taking longer than expected.", f.Message)
	assert.True(t, f.Retryable)
	assert.Zero(t, f.Code)

	f = Classify(context.DeadlineExceeded)
	assert.Equal(t, msgTimeout, f.Message)
	assert.True(t, f.Retryable)

	f = Classify(errors.New("connection refused"))
	assert.Equal(t, "Network error. Please check your connection.", f.Message)
	assert.True(t, f.Retryable)
}

func TestClassifyTerminalClasses(t *testing.T) {
	t.Parallel()

	f := Classify(fmt.Errorf("normalize: %w", domain.ErrMissingRequiredField))
	assert.False(t, f.Retryable)
	assert.Equal(t, msgMissingFields, f.Message)
	assert.ErrorIs(t, f, domain.ErrMissingRequiredField)

	f = Classify(domain.ErrInvalidStructure)
	assert.False(t, f.Retryable)
	assert.Equal(t, msgInvalidPayload, f.Message)

	f = Classify(context.Canceled)
	assert.False(t, f.Retryable)
	assert.Equal(t, msgCancelled, f.Message)

	original := &Failure{Message: "kept", Code: 500, Retryable: true}
	assert.Same(t, original, Classify(fmt.Errorf("wrapped: %w", original)))
	assert.Nil(t, Classify(nil))
}

func TestClassifyTransportBeatsShape(t *testing.T) {
	t.Parallel()

	both := fmt.Errorf("%w: read response: %w", domain.ErrInvalidStructure, timeoutError{})
	f := Classify(both)
	assert.Equal(t, msgTimeout, f.Message)
	assert.True(t, f.Retryable)

	f = Classify(fmt.Errorf("%w: %w", domain.ErrInvalidStructure, context.Canceled))
	assert.Equal(t, msgCancelled, f.Message)
	assert.False(t, f.Retryable)
}
