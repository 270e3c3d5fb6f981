package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// ExecutionsClient implements faas.ExecutionsClient
type ExecutionsClient struct {
	httpClient http.Sender
}

// NewExecutionsClient creates a new executions client
func NewExecutionsClient(httpClient http.Sender) *ExecutionsClient {
	return &ExecutionsClient{
		httpClient: httpClient,
	}
}

func executionPath(id string) string {
	return "/executions/" + url.PathEscape(id)
}

// List implements faas.ExecutionsClient.List
func (c *ExecutionsClient) List(ctx context.Context, functionID string, params *faas.ListParams) (*faas.ExecutionsList, error) {
	if functionID == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "executions.list",
		Method:    "GET",
		Path:      functionPath(functionID) + "/executions",
		Query:     params.ToValues(),
	})
	if err != nil {
		return nil, err
	}

	return decodeList[faas.Execution](resp.Body, "executions")
}

// Get implements faas.ExecutionsClient.Get
func (c *ExecutionsClient) Get(ctx context.Context, executionID string) (*faas.Execution, error) {
	if executionID == "" {
		return nil, faas.ErrExecutionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "executions.get",
		Method:    "GET",
		Path:      executionPath(executionID),
	})
	if err != nil {
		return nil, err
	}

	var execution faas.Execution
	if err := json.Unmarshal(resp.Body, &execution); err != nil {
		return nil, fmt.Errorf("parsing execution response: %w", err)
	}

	return &execution, nil
}

// Logs implements faas.ExecutionsClient.Logs
func (c *ExecutionsClient) Logs(ctx context.Context, executionID string, params *faas.ListParams) (*faas.LogsList, error) {
	if executionID == "" {
		return nil, faas.ErrExecutionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "executions.logs",
		Method:    "GET",
		Path:      executionPath(executionID) + "/logs",
		Query:     params.ToValues(),
	})
	if err != nil {
		return nil, err
	}

	return decodeList[faas.LogEntry](resp.Body, "logs")
}
