package domain

import "errors"

var (
	// ErrInvalidURL rejects a submission before any network call.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidStructure means the response envelope carried no data.
	ErrInvalidStructure = errors.New("invalid api response structure")
	// ErrMissingRequiredField means summary or originalUrl is empty.
	ErrMissingRequiredField = errors.New("missing required fields: summary or originalUrl")
	// ErrBusy is returned when a summarization is already in flight.
	ErrBusy = errors.New("a summary request is already in progress")
)

// IsResponseShape reports whether err came from a successful call with a malformed body.
func IsResponseShape(err error) bool {
	return errors.Is(err, ErrInvalidStructure) || errors.Is(err, ErrMissingRequiredField)
}
