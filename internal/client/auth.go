package client

import (
	"context"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// AuthClient implements faas.AuthClient.
type AuthClient struct {
	raw     http.Sender
	guarded http.Sender
}

// NewAuthClient creates a new auth client. Login always goes through raw so a
// rejected key is reported to the caller without a login redirect.
func NewAuthClient(raw, guarded http.Sender) *AuthClient {
	return &AuthClient{
		raw:     raw,
		guarded: guarded,
	}
}

// Login implements faas.AuthClient.Login
func (c *AuthClient) Login(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return faas.ErrAPIKeyRequired
	}

	_, err := c.raw.Do(ctx, &http.Request{
		Operation: "auth.login",
		Method:    "POST",
		Path:      "/auth/login",
		Body:      &faas.LoginRequest{APIKey: apiKey},
	})

	return err
}

// Logout implements faas.AuthClient.Logout
func (c *AuthClient) Logout(ctx context.Context) error {
	_, err := c.guarded.Do(ctx, &http.Request{
		Operation: "auth.logout",
		Method:    "POST",
		Path:      "/auth/logout",
	})

	return err
}
