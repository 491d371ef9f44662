package cart

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned by operations that need an authenticated
// session, such as placing an order. Redirecting to a login page is the
// caller's business, not this package's.
var ErrAuthRequired = errors.New("authentication required")

// ValidationError means the caller's input violated a precondition before
// any request was made: nothing changed, and retrying with the same input
// will fail the same way.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ClearFailedError reports the partial-success case of checkout: the order
// was placed, but clearing the cart failed even after a retry. The order
// stands; the cart is stale.
type ClearFailedError struct {
	OrderID string
	Err     error
}

func (e *ClearFailedError) Error() string {
	return fmt.Sprintf("order %s was placed, but clearing the cart failed: %v", e.OrderID, e.Err)
}

func (e *ClearFailedError) Unwrap() error {
	return e.Err
}
