package faasclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/client"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// New creates a new FaaS console client. The session cookie is carried on
// every request unless config.DisableCredentials is set. The caller's config
// is not modified.
func New(config *faas.Config) (faas.Client, error) {
	if config == nil {
		return nil, faas.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, faas.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	if config.InvokeEndpoint != "" {
		normalized.InvokeEndpoint = NormalizeEndpoint(config.InvokeEndpoint)
	}

	normalized.WithCredentials = !config.DisableCredentials

	// Use the internal client implementation
	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates a client with default settings.
func NewWithEndpoint(endpoint string) (faas.Client, error) {
	return New(&faas.Config{APIEndpoint: endpoint})
}

// NewWithAPIKey creates a client and logs in with apiKey, so the returned
// client already holds a session.
func NewWithAPIKey(ctx context.Context, endpoint, apiKey string) (faas.Client, error) {
	c, err := NewWithEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	err = c.Auth().Login(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NormalizeEndpoint trims surrounding space and the trailing slash, and
// defaults the scheme to https.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
