package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultMaxURLLength bounds accepted article URLs.
const DefaultMaxURLLength = 2048

var urlPattern = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)

// ValidateURL checks an article URL the same way the submit form does.
func ValidateURL(raw string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxURLLength
	}
	switch {
	case raw == "":
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	case len(raw) > maxLength:
		return fmt.Errorf("%w: URL must be less than %d characters", ErrInvalidURL, maxLength)
	case !urlPattern.MatchString(raw):
		return fmt.Errorf("%w: please enter a valid URL (http:// or https://)", ErrInvalidURL)
	}
	return nil
}

// DomainName returns the host of raw without a leading "www.".
func DomainName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "the article"
	}
	return strings.Replace(parsed.Hostname(), "www.", "", 1)
}
