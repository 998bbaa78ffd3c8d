package qiwi

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrNoMoreItems        = errors.New("no more items")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPhoneRequired      = errors.New("phone number is required")
	ErrInvalidPhone       = errors.New("phone number must be in E.164 form")
	ErrTokenRequired      = errors.New("token is required")
	ErrDirectionRequired  = errors.New("transfer direction is required")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrUnsupportedPayload = errors.New("response is neither a success payload nor an error envelope")
)

// NetworkError reports a failed round trip: connection, TLS, timeout,
// malformed HTTP, or a body that is not valid UTF-8.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is returned by a Transport when the server answered with a
// 4xx or 5xx status. Body holds the full response text so that the
// decoder can still look for a structured error payload.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("received HTTP %d with data: %s", e.StatusCode, e.Body)
}

// ParseError means the response was neither a valid success payload nor a
// valid error envelope. Raw is kept verbatim for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing response: %v (raw: %q)", e.Err, e.Raw)
}

// Unwrap returns the underlying decode failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransportError tags a failure that originated below the domain layer:
// the network round trip or the decoding of its result.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the network, status or parse error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// QiwiError is an error code reported by the server for an otherwise
// well-formed request.
type QiwiError struct {
	Description string
}

// Error implements the error interface.
func (e *QiwiError) Error() string {
	return "QIWI error: " + e.Description
}

// IsQiwiError reports whether err carries a server-side error code and
// returns that code.
func IsQiwiError(err error) (string, bool) {
	qiwiErr := &QiwiError{}
	if errors.As(err, &qiwiErr) {
		return qiwiErr.Description, true
	}

	return "", false
}

// IsNetworkError checks if the error came from a failed network round trip.
func IsNetworkError(err error) bool {
	netErr := &NetworkError{}

	return errors.As(err, &netErr)
}

// IsParseError checks if the error came from an undecodable response.
func IsParseError(err error) bool {
	parseErr := &ParseError{}

	return errors.As(err, &parseErr)
}

// IsStatusError checks if the error came from a 4xx/5xx response and
// returns the status code.
func IsStatusError(err error) (int, bool) {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}

	return 0, false
}
