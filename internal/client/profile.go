package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

const profileEndpoint = "person-profile/v1/profile/current"

// ProfileClient implements qiwi.ProfileClient.
type ProfileClient struct {
	caller *Caller
}

// NewProfileClient creates a new profile client.
func NewProfileClient(caller *Caller) *ProfileClient {
	return &ProfileClient{
		caller: caller,
	}
}

// ProfileInfo implements qiwi.ProfileClient.ProfileInfo.
func (c *ProfileClient) ProfileInfo(ctx context.Context) (*qiwi.ProfileInfo, error) {
	req := qiwi.NewGetRequest(profileEndpoint, map[string]string{
		"authInfoEnabled":     "true",
		"contractInfoEnabled": "true",
		"userInfoEnabled":     "true",
	})

	profile, err := Call[qiwi.ProfileInfo](ctx, c.caller, req)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &profile, nil
}
