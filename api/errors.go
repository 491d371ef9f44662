package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError means the request never produced a response: DNS failure,
// refused connection, timeout. Nothing changed on the server as far as the
// client can tell, so the operation is safe to retry.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response received from server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerRejectedError means the service responded with an error status.
// Message carries the server's own message when the body contained one.
type ServerRejectedError struct {
	Status  int
	Message string
}

func (e *ServerRejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// MalformedResponseError means a response arrived but could not be used:
// undecodable body, or a payload missing fields the caller cannot default
// without corrupting its own state.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is (or wraps) a NetworkError
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsServerRejected reports whether err is (or wraps) a ServerRejectedError
func IsServerRejected(err error) bool {
	var se *ServerRejectedError
	return errors.As(err, &se)
}

// IsMalformed reports whether err is (or wraps) a MalformedResponseError
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// IsUnauthorized reports whether the server rejected the request for lack of
// a valid session
func IsUnauthorized(err error) bool {
	var se *ServerRejectedError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}
