package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// VersionsClient implements faas.VersionsClient
type VersionsClient struct {
	httpClient http.Sender
}

// NewVersionsClient creates a new versions client
func NewVersionsClient(httpClient http.Sender) *VersionsClient {
	return &VersionsClient{
		httpClient: httpClient,
	}
}

func versionPath(functionID string, version int) string {
	return functionPath(functionID) + "/versions/" + strconv.Itoa(version)
}

// List implements faas.VersionsClient.List
func (c *VersionsClient) List(ctx context.Context, functionID string, params *faas.ListParams) (*faas.VersionsList, error) {
	if functionID == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "versions.list",
		Method:    "GET",
		Path:      functionPath(functionID) + "/versions",
		Query:     params.ToValues(),
	})
	if err != nil {
		return nil, err
	}

	return decodeList[faas.Version](resp.Body, "versions")
}

// Get implements faas.VersionsClient.Get
func (c *VersionsClient) Get(ctx context.Context, functionID string, version int) (*faas.Version, error) {
	if functionID == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	if version < 1 {
		return nil, fmt.Errorf("%w: %d", faas.ErrInvalidVersion, version)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "versions.get",
		Method:    "GET",
		Path:      versionPath(functionID, version),
	})
	if err != nil {
		return nil, err
	}

	var result faas.Version
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing version response: %w", err)
	}

	return &result, nil
}

// Activate implements faas.VersionsClient.Activate. Activating the version
// that is already active is accepted by the backend as a no-op.
func (c *VersionsClient) Activate(ctx context.Context, functionID string, version int) error {
	if functionID == "" {
		return faas.ErrFunctionIDRequired
	}

	if version < 1 {
		return fmt.Errorf("%w: %d", faas.ErrInvalidVersion, version)
	}

	_, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "versions.activate",
		Method:    "POST",
		Path:      versionPath(functionID, version) + "/activate",
	})

	return err
}

// Diff implements faas.VersionsClient.Diff. v1 and v2 are sent in the order
// given.
func (c *VersionsClient) Diff(ctx context.Context, functionID string, v1, v2 int) (*faas.VersionDiff, error) {
	if functionID == "" {
		return nil, faas.ErrFunctionIDRequired
	}

	if v1 < 1 || v2 < 1 {
		return nil, fmt.Errorf("%w: %d, %d", faas.ErrInvalidVersion, v1, v2)
	}

	path := fmt.Sprintf("%s/diff/%d/%d", functionPath(functionID), v1, v2)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Operation: "versions.diff",
		Method:    "GET",
		Path:      path,
	})
	if err != nil {
		return nil, err
	}

	var result faas.VersionDiff
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing version diff response: %w", err)
	}

	return &result, nil
}
