package calendar

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrConflict indicates the calendar backend rejected a write because the
// targeted slot was already taken.
var ErrConflict = errors.New("calendar slot conflict")

// UpstreamError wraps a Google Calendar API failure. It is retryable from the
// caller's point of view: the clinic calendar itself is fine, the call is not.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// wrapAPIError maps a Google API error onto the package error taxonomy.
func wrapAPIError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
		return fmt.Errorf("calendar %s: %w: %v", op, ErrConflict, apiErr)
	}
	return &UpstreamError{Op: op, Err: err}
}
