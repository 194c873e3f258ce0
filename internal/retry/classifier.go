package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"NewsSnap/internal/domain"
)

const (
	msgTimeout        = "Request timeout. The API is taking longer than expected."
	msgNetwork        = "Network error. Please check your connection."
	msgCancelled      = "Request cancelled."
	msgInvalidPayload = "Invalid API response structure"
	msgMissingFields  = "Missing required fields: summary or originalUrl"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Unauthorized. Please check your credentials.",
	http.StatusForbidden:           "Access forbidden.",
	http.StatusNotFound:            "Resource not found.",
	http.StatusTooManyRequests:     "Too many requests. Please try again later.",
	http.StatusInternalServerError: "Server error. Please try again later.",
	http.StatusBadGateway:          "Service temporarily unavailable. Retrying...",
	http.StatusServiceUnavailable:  "Service temporarily unavailable. Retrying...",
	http.StatusGatewayTimeout:      "Service temporarily unavailable. Retrying...",
}

// StatusError is implemented by transport errors that carry an HTTP response.
type StatusError interface {
	error
	StatusCode() int
	ServerMessage() string
}

// Failure is the normalized descriptor of a failed attempt.
// Code is zero when no response was received.
type Failure struct {
	Message   string
	Code      int
	Retryable bool
	Err       error
}

// Error returns the user-facing message.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify maps a raw failure into a Failure with a retryability verdict.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	if errors.Is(err, context.Canceled) {
		return &Failure{Message: msgCancelled, Err: err}
	}

	if isTimeout(err) {
		return &Failure{Message: msgTimeout, Retryable: true, Err: err}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidStructure):
		return &Failure{Message: msgInvalidPayload, Err: err}
	case errors.Is(err, domain.ErrMissingRequiredField):
		return &Failure{Message: msgMissingFields, Err: err}
	}

	var statusErr StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode()
		return &Failure{
			Message:   StatusMessage(code, statusErr.ServerMessage()),
			Code:      code,
			Retryable: IsRetryable(code),
			Err:       err,
		}
	}

	return &Failure{Message: msgNetwork, Retryable: true, Err: err}
}

// StatusMessage returns the user-facing text for an HTTP status.
// Exact matches win; anything else falls back to the server message.
func StatusMessage(code int, serverMessage string) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	if msg := strings.TrimSpace(serverMessage); msg != "" {
		return msg
	}
	return fmt.Sprintf("Server error (%d)", code)
}

// IsRetryable is true for pure network failures (code 0), 5xx and 429.
func IsRetryable(code int) bool {
	return code == 0 || code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
