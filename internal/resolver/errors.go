package resolver

import (
	"errors"
	"fmt"
)

// Error types for the resolver package.
var (
	// ErrInvalidRedirectURL is returned when the input is not a Google News
	// article redirect URL.
	ErrInvalidRedirectURL = errors.New("not a Google News article redirect URL")

	// ErrTokenNotFound is returned when the redirect page contains no c-wiz
	// element with a data-p attribute.
	ErrTokenNotFound = errors.New("redirect page has no embedded token")

	// ErrTokenNotArray is returned when the rewritten token does not parse
	// to a JSON array.
	ErrTokenNotArray = errors.New("embedded token is not a JSON array")

	// ErrTokenTooShort is returned when the token array has fewer elements
	// than the payload reshaping needs.
	ErrTokenTooShort = errors.New("embedded token has too few elements")

	// ErrBadStatus is returned when a GET or POST answers with a non-2xx
	// status code.
	ErrBadStatus = errors.New("unexpected HTTP status")

	// ErrMissingPrefix is returned when the RPC response body does not start
	// with the )]}' guard prefix.
	ErrMissingPrefix = errors.New("response body missing )]}' prefix")

	// ErrUnexpectedShape is returned when the RPC response parses fine but
	// does not have the nested array layout the article URL lives in.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// NetworkError reports a failed network call: the transport broke or the
// server answered outside the 2xx range.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error returns the error message.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed data at one of the parse points: the HTML
// page, the embedded token, or the doubly encoded RPC response.
type ParseError struct {
	Step string
	Err  error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
