// Package apperr defines the error taxonomy shared by the inventory core.
//
// Every failure a component can report belongs to one of five kinds:
//
//   - ValidationError: required local input is missing; never reaches the network.
//   - AuthenticationRequiredError: no auth token is present.
//   - NetworkError: the transport failed before a response arrived.
//   - RemoteError: the endpoint answered with an explicit error payload.
//   - ClassificationUnavailableError: the AI classifier could not be used.
//     Always absorbed by the classifier.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthenticationRequired is returned when no auth token is stored.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError reports missing or malformed local input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Validation builds a ValidationError for field.
func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Remote error codes carried in the GraphQL error extensions.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadInput        = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// RemoteError is an explicit error payload returned by the endpoint.
type RemoteError struct {
	Op         string
	Code       string
	Message    string
	StatusCode int // HTTP status, 0 when the error came inside a 200 response
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": remote error")
	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// Unauthorized reports whether the error carries an authorization sub-code.
func (e *RemoteError) Unauthorized() bool {
	return e.Code == CodeUnauthenticated || e.Code == CodeForbidden ||
		e.StatusCode == 401 || e.StatusCode == 403
}

// NotFound reports whether the remote store said the record does not exist.
func (e *RemoteError) NotFound() bool {
	return e.Code == CodeNotFound || e.StatusCode == 404
}

// Recoverable reports whether retrying the same request may succeed.
func (e *RemoteError) Recoverable() bool {
	switch {
	case e.StatusCode == 408 || e.StatusCode == 429:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// ClassificationUnavailableError wraps a failure of the AI classification step.
type ClassificationUnavailableError struct {
	Err error
}

func (e *ClassificationUnavailableError) Error() string {
	return fmt.Sprintf("ai classification unavailable: %v", e.Err)
}

func (e *ClassificationUnavailableError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuthentication reports whether err means the user must sign in again:
// either no token is stored or the endpoint rejected the token.
func IsAuthentication(err error) bool {
	if errors.Is(err, ErrAuthenticationRequired) {
		return true
	}
	var r *RemoteError
	return errors.As(err, &r) && r.Unauthorized()
}

// IsNotFound reports whether err is a remote not-found error.
func IsNotFound(err error) bool {
	var r *RemoteError
	return errors.As(err, &r) && r.NotFound()
}

// IsRecoverable reports whether a read can be retried: network failures and
// transient remote statuses are, everything else is not.
func IsRecoverable(err error) bool {
	var n *NetworkError
	if errors.As(err, &n) {
		return true
	}
	var r *RemoteError
	return errors.As(err, &r) && r.Recoverable()
}

// Messages shown to the user.
const (
	MsgNotAuthenticated = "You are not signed in. Please sign in and try again."
	MsgRetryable        = "Something went wrong while talking to the server. Please try again."
)

// UserMessage maps err to the text shown to the user: validation failures
// keep their inline message, authentication failures ask for a sign-in and
// everything else gets a generic retryable message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	if IsAuthentication(err) {
		return MsgNotAuthenticated
	}
	return MsgRetryable
}
