package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Client implements the faas.Client interface.
//
// Two senders are kept side by side: the raw transport, used by login, and
// the guarded one, used by every other management call. Invocations go
// through a second raw transport rooted at the invoke endpoint.
type Client struct {
	httpClient   *http.Client
	guarded      http.Sender
	invokeClient *http.Client
	logger       faas.Logger

	// Resource clients
	auth       *AuthClient
	functions  *FunctionsClient
	versions   *VersionsClient
	executions *ExecutionsClient
	invoker    *Invoker
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *faas.Config) []http.Option {
	httpOpts := []http.Option{
		http.WithCredentials(config.WithCredentials),
	}

	if config.WithCredentials {
		jar := config.CookieJar
		if jar == nil {
			jar = http.NewCookieJar()
		}

		httpOpts = append(httpOpts, http.WithCookieJar(jar))
	}

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

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// invokeEndpoint returns the configured invoke endpoint or the origin of the
// API endpoint.
func invokeEndpoint(config *faas.Config) (string, error) {
	if config.InvokeEndpoint != "" {
		return strings.TrimSuffix(config.InvokeEndpoint, "/"), nil
	}

	parsed, err := url.Parse(config.APIEndpoint)
	if err != nil {
		return "", fmt.Errorf("parsing API endpoint: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q has no scheme or host", faas.ErrAPIEndpointRequired, config.APIEndpoint)
	}

	return parsed.Scheme + "://" + parsed.Host, nil
}

// New creates a new console API client.
func New(config *faas.Config) (*Client, error) {
	if config == nil {
		return nil, faas.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, faas.ErrAPIEndpointRequired
	}

	invokeBase, err := invokeEndpoint(config)
	if err != nil {
		return nil, err
	}

	// Both transports share one jar, so the session set by login is sent
	// with invocations as well.
	httpOpts := createHTTPClientOptions(config)

	httpClient := http.NewClient(config.APIEndpoint, httpOpts...)
	invokeClient := http.NewClient(invokeBase, httpOpts...)

	guardOpts := []http.GuardOption{http.WithLoginRoute(config.LoginRoute)}
	if config.Logger != nil {
		guardOpts = append(guardOpts, http.WithGuardLogger(config.Logger))
	}

	client := &Client{
		httpClient:   httpClient,
		guarded:      http.NewGuard(httpClient, config.Navigator, guardOpts...),
		invokeClient: invokeClient,
		logger:       config.Logger,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.auth = NewAuthClient(c.httpClient, c.guarded)
	c.functions = NewFunctionsClient(c.guarded)
	c.versions = NewVersionsClient(c.guarded)
	c.executions = NewExecutionsClient(c.guarded)
	c.invoker = NewInvoker(c.invokeClient)
}

// Auth implements faas.Client.Auth.
func (c *Client) Auth() faas.AuthClient {
	return c.auth
}

// Functions implements faas.Client.Functions.
func (c *Client) Functions() faas.FunctionsClient {
	return c.functions
}

// Versions implements faas.Client.Versions.
func (c *Client) Versions() faas.VersionsClient {
	return c.versions
}

// Executions implements faas.Client.Executions.
func (c *Client) Executions() faas.ExecutionsClient {
	return c.executions
}

// Invoker implements faas.Client.Invoker.
func (c *Client) Invoker() faas.Invoker {
	return c.invoker
}

// APIEndpoint returns the management API base URL.
func (c *Client) APIEndpoint() string {
	return c.httpClient.BaseURL()
}

// InvokeEndpoint returns the base URL serving /fn/{id}.
func (c *Client) InvokeEndpoint() string {
	return c.invokeClient.BaseURL()
}
