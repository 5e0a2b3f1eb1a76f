package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Profile is the subset of the identity provider's user record the
// booking system needs.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IdentityClient fetches user profiles from the external identity provider.
type IdentityClient struct {
	httpClient *HttpClient
	retryDelay time.Duration
}

func NewIdentityClient(baseURL string, retryDelay time.Duration) *IdentityClient {
	return &IdentityClient{
		httpClient: NewHttpClient(baseURL),
		retryDelay: retryDelay,
	}
}

// GetProfile fetches a user profile. A failed fetch is retried exactly once
// after a fixed delay; there is no retry loop beyond that.
func (c *IdentityClient) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := c.fetch(ctx, userID)
	if err == nil {
		return profile, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.fetch(ctx, userID)
}

func (c *IdentityClient) fetch(ctx context.Context, userID string) (*Profile, error) {
	resp, err := c.httpClient.GET(ctx, "/v1/users/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := resp.DecodeJSON(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.ID == "" {
		profile.ID = userID
	}

	return &profile, nil
}
