package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Invoker implements faas.Invoker. It talks to the raw transport only: the
// status of an invocation belongs to the user's function, so a 401 or 500 is
// returned as data and never triggers login navigation.
type Invoker struct {
	httpClient *http.Client
}

// NewInvoker creates a new invoker rooted at the invoke endpoint.
func NewInvoker(httpClient *http.Client) *Invoker {
	return &Invoker{
		httpClient: httpClient,
	}
}

// Invoke implements faas.Invoker.Invoke
func (c *Invoker) Invoke(ctx context.Context, functionID string, request *faas.InvocationRequest) (*faas.InvocationResult, error) {
	if functionID == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	if request == nil {
		request = &faas.InvocationRequest{}
	}

	method := request.Method
	if method == "" {
		method = "GET"
	}

	var rawQuery string
	if request.Query != nil {
		rawQuery = request.Query.Encode()
	}

	var body interface{}
	if len(request.Body) > 0 {
		body = request.Body
	}

	resp, err := c.httpClient.DoRaw(ctx, &http.Request{
		Operation: "functions.invoke",
		Method:    method,
		Path:      "/fn/" + url.PathEscape(functionID),
		RawQuery:  rawQuery,
		Body:      body,
		Headers:   request.Headers,
	})
	if err != nil {
		return nil, err
	}

	return &faas.InvocationResult{
		Status:  resp.StatusCode,
		Body:    string(resp.Body),
		Headers: faas.ExtractInvocationHeaders(resp.Headers),
	}, nil
}
