package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// Caller performs typed API calls: one transport round trip followed by
// envelope decoding. It holds no per-call state and is safe for
// concurrent use.
type Caller struct {
	transport qiwi.Transport
}

// NewCaller creates a caller over transport.
func NewCaller(transport qiwi.Transport) *Caller {
	return &Caller{transport: transport}
}

// Transport returns the underlying transport.
func (c *Caller) Transport() qiwi.Transport {
	return c.transport
}

// Call sends req and decodes the response as T.
//
// The returned error is a *qiwi.QiwiError when the server reported an
// error code, and a *qiwi.TransportError for everything else (network
// failure, HTTP error status without an error code, undecodable body).
func Call[T any](ctx context.Context, caller *Caller, req *qiwi.Request) (T, error) {
	var zero T

	raw, err := caller.transport.Call(ctx, req)
	if err != nil {
		return zero, classifyTransportError(err)
	}

	envelope, err := qiwi.DecodeEnvelope[T](raw)
	if err != nil {
		return zero, &qiwi.TransportError{Err: err}
	}

	return envelope.Result()
}

// classifyTransportError turns an HTTP error status carrying an error
// envelope into the server's error code. A non-2xx body is never read as
// a success payload.
func classifyTransportError(err error) error {
	statusErr := &qiwi.StatusError{}
	if errors.As(err, &statusErr) {
		if code, ok := qiwi.DecodeErrorCode(statusErr.Body); ok {
			return &qiwi.QiwiError{Description: code}
		}
	}

	return &qiwi.TransportError{Err: err}
}
