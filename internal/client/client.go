package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/internal/http"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// Static errors for err113 compliance.
var (
	ErrInvalidAPIEndpoint = errors.New("API endpoint must be an absolute http(s) URL")
)

// Client implements the qiwi.Client interface.
type Client struct {
	*ProfileClient
	*HistoryClient
	*PaymentsClient

	caller *Caller
	user   qiwi.Credential
	logger qiwi.Logger
}

var _ qiwi.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *qiwi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.MetricsRegisterer != nil {
		httpOpts = append(httpOpts, http.WithMetrics(config.MetricsRegisterer))
	}

	return httpOpts
}

// normalizeEndpoint applies the default base address and strips trailing
// slashes so that endpoint paths can be joined with a single "/".
func normalizeEndpoint(endpoint string) (string, error) {
	if endpoint == "" {
		return constants.DefaultAPIEndpoint, nil
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAPIEndpoint, endpoint)
	}

	return strings.TrimRight(endpoint, "/"), nil
}

// New creates a new QIWI API client. The credential is validated but no
// request is made.
func New(ctx context.Context, config *qiwi.Config) (*Client, error) {
	if config == nil {
		return nil, qiwi.ErrConfigRequired
	}

	user := config.Credential()

	err := user.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid credential: %w", err)
	}

	endpoint, err := normalizeEndpoint(config.APIEndpoint)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(endpoint, http.StaticToken(user.Token), createHTTPClientOptions(config)...)

	client := NewWithTransport(user, httpClient)
	client.logger = config.Logger

	if client.logger != nil {
		client.logger.Debug("QIWI client created", map[string]interface{}{
			"endpoint": endpoint,
			"account":  user.Account(),
		})
	}

	return client, nil
}

// NewWithTransport creates a client over an existing transport. The
// credential is not validated.
func NewWithTransport(user qiwi.Credential, transport qiwi.Transport) *Client {
	caller := NewCaller(transport)

	return &Client{
		ProfileClient:  NewProfileClient(caller),
		HistoryClient:  NewHistoryClient(caller, user.Account()),
		PaymentsClient: NewPaymentsClient(caller),
		caller:         caller,
		user:           user,
	}
}

// User implements qiwi.Client.User.
func (c *Client) User() qiwi.Credential {
	return c.user
}

// Caller returns the caller shared by all endpoint clients.
func (c *Client) Caller() *Caller {
	return c.caller
}
