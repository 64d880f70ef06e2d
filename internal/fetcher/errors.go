package fetcher

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when a URL is blocked by robots rules.
// No network call is made in that case.
var ErrPermissionDenied = errors.New("url blocked by robots rules")

// ErrFetchExhausted is returned when every fetch attempt has failed. It
// always wraps the last attempt's error.
var ErrFetchExhausted = errors.New("all fetch attempts failed")

// StatusError reports a non-success HTTP status.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d fetching %s", e.StatusCode, e.URL)
}
