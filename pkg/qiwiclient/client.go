// Package qiwiclient provides the main entry point for creating QIWI wallet API clients
package qiwiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/qiwi-client/internal/client"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// New creates a new QIWI wallet API client.
func New(ctx context.Context, config *qiwi.Config) (qiwi.Client, error) {
	if config == nil {
		return nil, qiwi.ErrConfigRequired
	}

	// Normalize API endpoint
	if config.APIEndpoint != "" {
		apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
		if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
			apiEndpoint = "https://" + apiEndpoint
		}

		config.APIEndpoint = apiEndpoint
	}

	// Use the internal client implementation
	cli, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken creates a client for the wallet identified by phone
// against the default API endpoint.
func NewWithToken(ctx context.Context, phone, token string) (qiwi.Client, error) {
	return New(ctx, &qiwi.Config{
		Phone: phone,
		Token: token,
	})
}

// NewWithTransport creates a client that sends every request through
// transport. The credential is not validated and the transport is
// responsible for authentication.
func NewWithTransport(user qiwi.Credential, transport qiwi.Transport) qiwi.Client {
	return client.NewWithTransport(user, transport)
}
