// Package http is the transport used by every console operation. It issues
// one request per call, carries the session cookie, and turns failures into
// *faas.Error values.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"golang.org/x/net/publicsuffix"
)

// Request describes one call. Body is JSON-encoded by Do and sent as-is by
// DoRaw.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	RawQuery  string
	Body      interface{}
	Headers   map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Sender performs a request in parsed mode.
type Sender interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Client is the transport. It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	jar          nethttp.CookieJar
	credentials  bool
	timeout      time.Duration
	userAgent    string
	logger       faas.Logger
	debug        bool
	interceptors *faas.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger faas.Logger) Option {
	return func(c *Client) {
		c.logger = logger
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

// WithCredentials attaches the session cookie jar to every request.
func WithCredentials(enabled bool) Option {
	return func(c *Client) {
		c.credentials = enabled
	}
}

// WithCookieJar sets the jar used when credentials are enabled.
func WithCookieJar(jar nethttp.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTimeout bounds each request. Zero keeps the platform default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *faas.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewCookieJar creates an in-memory jar scoped by the public suffix list.
func NewCookieJar() nethttp.CookieJar {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		// cookiejar.New never fails with non-nil options.
		panic(err)
	}

	return jar
}

// NewClient creates a transport for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	if client.timeout > 0 {
		retryClient.HTTPClient.Timeout = client.timeout
	}

	if client.credentials {
		if client.jar == nil {
			client.jar = NewCookieJar()
		}

		retryClient.HTTPClient.Jar = client.jar
	}

	client.httpClient = retryClient

	return client
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CookieJar returns the jar holding the session, or nil when credentials are
// disabled.
func (c *Client) CookieJar() nethttp.CookieJar {
	if !c.credentials {
		return nil
	}

	return c.jar
}

// neverRetry keeps retryablehttp to a single attempt. A transport error is
// handed back untouched so the caller sees the real cause.
func neverRetry(_ context.Context, _ *nethttp.Response, err error) (bool, error) {
	return false, err
}

// Do sends req in parsed mode. On 2xx it returns the response. On any other
// status it returns the response together with a *faas.Error built from the
// {"error": "..."} envelope. Transport failures return a network *faas.Error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = encoded
	}

	headers := nethttp.Header{}
	headers.Set("Accept", "application/json")

	if body != nil {
		headers.Set("Content-Type", "application/json")
	}

	resp, err := c.send(ctx, req, body, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, Normalize(resp)
	}

	return resp, nil
}

// DoRaw sends req in raw-extraction mode: the body is passed through and the
// response is returned whatever its status. Only a transport failure is an
// error.
func (c *Client) DoRaw(ctx context.Context, req *Request) (*Response, error) {
	body, err := rawBody(req.Body)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, req, body, nethttp.Header{})
}

// Normalize converts a non-2xx response into a *faas.Error. The envelope's
// "error" string becomes the message verbatim; without one the status text is
// used.
func Normalize(resp *Response) *faas.Error {
	var message string

	if gjson.ValidBytes(resp.Body) {
		result := gjson.GetBytes(resp.Body, "error")
		if result.Type == gjson.String {
			message = result.String()
		}
	}

	return faas.NewBackendError(resp.StatusCode, message)
}

func rawBody(body interface{}) ([]byte, error) {
	switch value := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return value, nil
	case string:
		return []byte(value), nil
	case io.Reader:
		data, err := io.ReadAll(value)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}

		return data, nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return data, nil
	}
}

func (c *Client) buildURL(req *Request) string {
	target := c.baseURL + req.Path

	query := strings.TrimLeft(req.RawQuery, "?")
	if len(req.Query) > 0 {
		query = req.Query.Encode()
	}

	if query != "" {
		target += "?" + query
	}

	return target
}

func (c *Client) send(ctx context.Context, req *Request, body []byte, headers nethttp.Header) (*Response, error) {
	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	if headers.Get("User-Agent") == "" && c.userAgent != "" {
		headers.Set("User-Agent", c.userAgent)
	}

	intercepted := &faas.Request{
		Operation: req.Operation,
		Method:    req.Method,
		Path:      req.Path,
		Headers:   headers,
		Body:      body,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	target := c.buildURL(req)

	var reqBody interface{}
	if intercepted.Body != nil {
		reqBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"operation": req.Operation,
			"method":    req.Method,
			"url":       target,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		netErr := faas.NewNetworkError(err)
		c.afterResponse(ctx, intercepted, &faas.Response{Error: netErr})

		return nil, netErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		netErr := faas.NewNetworkError(fmt.Errorf("reading response body: %w", err))
		c.afterResponse(ctx, intercepted, &faas.Response{StatusCode: httpResp.StatusCode, Headers: httpResp.Header, Error: netErr})

		return nil, netErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       data,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"operation":   req.Operation,
			"status_code": resp.StatusCode,
			"bytes":       len(data),
		})
	}

	c.afterResponse(ctx, intercepted, &faas.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       bytes.Clone(data),
	})

	return resp, nil
}

// afterResponse runs response interceptors. They observe; a failing
// interceptor is logged and does not change the call's outcome.
func (c *Client) afterResponse(ctx context.Context, req *faas.Request, resp *faas.Response) {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"operation": req.Operation,
			"error":     err.Error(),
		})
	}
}

// leveledLogger adapts faas.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger faas.Logger
}

func (l *leveledLogger) fields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, l.fields(keysAndValues))
}
