package qiwi

import (
	"context"
	"net/http"
)

// Request describes a single API call. Endpoint is relative to the
// client's base address; Params are sent as URL query parameters and Body,
// when non-nil, is encoded as JSON.
type Request struct {
	Endpoint string
	Method   string
	Params   map[string]string
	Body     interface{}
}

// NewGetRequest builds a GET request descriptor.
func NewGetRequest(endpoint string, params map[string]string) *Request {
	return &Request{
		Endpoint: endpoint,
		Method:   http.MethodGet,
		Params:   params,
	}
}

// NewPostRequest builds a POST request descriptor with a JSON body.
func NewPostRequest(endpoint string, body interface{}) *Request {
	return &Request{
		Endpoint: endpoint,
		Method:   http.MethodPost,
		Body:     body,
	}
}

// Transport performs exactly one HTTP round trip per call and returns the
// raw response text.
//
// On a 4xx/5xx response implementations return the body text together
// with a *StatusError whose Body holds the same text. Any other failure is
// a *NetworkError. Implementations must be safe for concurrent use.
type Transport interface {
	Call(ctx context.Context, req *Request) (string, error)
}
