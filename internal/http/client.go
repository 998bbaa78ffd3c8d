// Package http implements the network transport of the QIWI client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// TokenSource provides the bearer token attached to every request.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a token that never changes.
type StaticToken string

// GetToken implements TokenSource.
func (t StaticToken) GetToken(ctx context.Context) (string, error) {
	return string(t), nil
}

// Request is an HTTP request relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client is a Transport over HTTP. It is safe for concurrent use and
// shares one connection pool between all calls.
type Client struct {
	baseURL     string
	tokenSource TokenSource
	httpClient  *retryablehttp.Client
	logger      qiwi.Logger
	debug       bool
	userAgent   string
	metrics     *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug and retry logging.
func WithLogger(logger qiwi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds a single round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of connection errors, 429 and 5xx
// responses. Without it a request is attempted exactly once.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a transport for baseURL. tokenSource may be nil for
// unauthenticated calls.
func NewClient(baseURL string, tokenSource TokenSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	// Hand back the last response instead of discarding its body.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokenSource: tokenSource,
		httpClient:  retryClient,
		userAgent:   constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Call implements qiwi.Transport.
func (c *Client) Call(ctx context.Context, req *qiwi.Request) (string, error) {
	var query url.Values
	if len(req.Params) > 0 {
		query = make(url.Values, len(req.Params))
		for key, value := range req.Params {
			query.Set(key, value)
		}
	}

	resp, err := c.Do(ctx, &Request{
		Method: req.Method,
		Path:   req.Endpoint,
		Query:  query,
		Body:   req.Body,
	})
	if resp == nil {
		return "", err
	}

	return string(resp.Body), err
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Do sends the request and reads the whole response body.
//
// For a 4xx/5xx status both the response and a *qiwi.StatusError are
// returned. Every other failure is a *qiwi.NetworkError with a nil response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, &qiwi.NetworkError{Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":   req.Method,
			"endpoint": req.Path,
			"params":   req.Query.Encode(),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))

		return nil, &qiwi.NetworkError{Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))

		return nil, &qiwi.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.metrics.observe(req.Method, strconv.Itoa(httpResp.StatusCode), time.Since(start))

	if !utf8.Valid(body) {
		return nil, &qiwi.NetworkError{Err: fmt.Errorf("%w: response body is not valid UTF-8", ErrInvalidEncoding)}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"body":   string(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= nethttp.StatusBadRequest {
		return resp, &qiwi.StatusError{StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.tokenSource != nil {
		token, err := c.tokenSource.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}
