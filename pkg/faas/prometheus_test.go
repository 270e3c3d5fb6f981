package faas_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	metrics, err := faas.NewPrometheusMetrics(registry)
	require.NoError(t, err)

	chain := metrics.Install(faas.NewInterceptorChain())
	ctx := context.Background()

	observe := func(operation string, resp *faas.Response) {
		req := &faas.Request{Operation: operation}
		require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
		require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, resp))
	}

	observe("functions.list", &faas.Response{StatusCode: 200})
	observe("functions.list", &faas.Response{StatusCode: 200})
	observe("functions.list", &faas.Response{StatusCode: 401})
	observe("functions.invoke", &faas.Response{Error: faas.NewNetworkError(nil)})

	expected := `
# HELP faas_client_requests_total Requests sent to the FaaS backend, by operation and status code.
# TYPE faas_client_requests_total counter
faas_client_requests_total{code="200",operation="functions.list"} 2
faas_client_requests_total{code="401",operation="functions.list"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "faas_client_requests_total"))

	expected = `
# HELP faas_client_network_failures_total Requests that failed without a response.
# TYPE faas_client_network_failures_total counter
faas_client_network_failures_total{operation="functions.invoke"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "faas_client_network_failures_total"))

	count, err := testutil.GatherAndCount(registry, "faas_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := faas.NewPrometheusMetrics(registry)
	require.NoError(t, err)

	_, err = faas.NewPrometheusMetrics(registry)
	require.Error(t, err)
}

func TestPrometheusMetrics_Unregistered(t *testing.T) {
	t.Parallel()

	metrics, err := faas.NewPrometheusMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, metrics.Install(faas.NewInterceptorChain()))
}
