package search

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// RequestError reports a failed search request: a transport error or a
// non-2xx response from the search API. StatusCode is zero when no response
// was received.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search request failed with status %d: %v", e.StatusCode, e.Err)
	}

	return fmt.Sprintf("search request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that could not be decoded as the
// expected JSON shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse search response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is a RequestError caused by the search
// API throttling the caller (HTTP 429).
func IsRateLimited(err error) bool {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}
