package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// FunctionsClient implements faas.FunctionsClient
type FunctionsClient struct {
	httpClient http.Sender
}

// NewFunctionsClient creates a new functions client
func NewFunctionsClient(httpClient http.Sender) *FunctionsClient {
	return &FunctionsClient{
		httpClient: httpClient,
	}
}

func functionPath(id string) string {
	return "/functions/" + url.PathEscape(id)
}

func decodeFunction(body []byte) (*faas.Function, error) {
	var function faas.Function
	if err := json.Unmarshal(body, &function); err != nil {
		return nil, fmt.Errorf("parsing function response: %w", err)
	}

	return &function, nil
}

// List implements faas.FunctionsClient.List
func (c *FunctionsClient) List(ctx context.Context, params *faas.ListParams) (*faas.FunctionsList, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.list",
		Method:    "GET",
		Path:      "/functions",
		Query:     params.ToValues(),
	})
	if err != nil {
		return nil, err
	}

	return decodeList[faas.Function](resp.Body, "functions")
}

// Get implements faas.FunctionsClient.Get
func (c *FunctionsClient) Get(ctx context.Context, id string) (*faas.Function, error) {
	if id == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.get",
		Method:    "GET",
		Path:      functionPath(id),
	})
	if err != nil {
		return nil, err
	}

	return decodeFunction(resp.Body)
}

// Create implements faas.FunctionsClient.Create
func (c *FunctionsClient) Create(ctx context.Context, request *faas.FunctionRequest) (*faas.Function, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.create",
		Method:    "POST",
		Path:      "/functions",
		Body:      request,
	})
	if err != nil {
		return nil, err
	}

	return decodeFunction(resp.Body)
}

// Update implements faas.FunctionsClient.Update. The request replaces the
// function's name, description and code; new code produces a new version.
func (c *FunctionsClient) Update(ctx context.Context, id string, request *faas.FunctionRequest) (*faas.Function, error) {
	if id == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.update",
		Method:    "PUT",
		Path:      functionPath(id),
		Body:      request,
	})
	if err != nil {
		return nil, err
	}

	return decodeFunction(resp.Body)
}

// Delete implements faas.FunctionsClient.Delete
func (c *FunctionsClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return faas.ErrFunctionIDRequired
	}

	_, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.delete",
		Method:    "DELETE",
		Path:      functionPath(id),
	})

	return err
}

// UpdateEnv implements faas.FunctionsClient.UpdateEnv. The map is sent as
// given; keys are validated by the backend.
func (c *FunctionsClient) UpdateEnv(ctx context.Context, id string, envVars map[string]string) (*faas.Function, error) {
	if id == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	if envVars == nil {
		envVars = map[string]string{}
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "functions.env",
		Method:    "PUT",
		Path:      functionPath(id) + "/env",
		Body:      &faas.EnvVarsRequest{EnvVars: envVars},
	})
	if err != nil {
		return nil, err
	}

	return decodeFunction(resp.Body)
}
