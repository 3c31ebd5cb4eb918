package google

import (
	"errors"
	"fmt"
)

// ErrAuthRequired indicates that no usable credential exists for an account
// and the user must complete the OAuth consent flow.
var ErrAuthRequired = errors.New("google authorization required")

// RefreshError indicates that a stored credential exists but could not be
// refreshed, e.g. because the refresh token was revoked.
type RefreshError struct {
	Account string
	Err     error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("failed to refresh token for account %q: %v", e.Account, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// IsAuthRequired reports whether err means the user has to (re)authorize.
// Both a missing credential and a failed refresh require a new consent flow.
func IsAuthRequired(err error) bool {
	if errors.Is(err, ErrAuthRequired) {
		return true
	}
	var re *RefreshError
	return errors.As(err, &re)
}
