package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestInvoker_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   faas.Query
		wantURI string
	}{
		{"raw string", faas.RawQuery("a=1"), "/fn/fn-1?a=1"},
		{"raw string with question mark", faas.RawQuery("?a=1"), "/fn/fn-1?a=1"},
		{"values", url.Values{"a": {"1"}, "b": {"2"}}, "/fn/fn-1?a=1&b=2"},
		{"map", faas.QueryFromMap(map[string]string{"b": "2", "a": "1"}), "/fn/fn-1?a=1&b=2"},
		{"empty string", faas.RawQuery(""), "/fn/fn-1"},
		{"empty values", url.Values{}, "/fn/fn-1"},
		{"nil", nil, "/fn/fn-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantURI, r.URL.RequestURI())
				w.WriteHeader(http.StatusOK)
			})

			result, err := client.Invoker().Invoke(context.Background(), "fn-1", &faas.InvocationRequest{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, result.Status)
		})
	}
}

func TestInvoker_ForwardsRequest(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "raw payload, not json", string(body))

		w.Header().Set(faas.HeaderFunctionID, "fn-1")
		w.Header().Set(faas.HeaderFunctionVersionID, "ver-4")
		w.Header().Set(faas.HeaderExecutionID, "exec-7")
		w.Header().Set(faas.HeaderExecutionDuration, "42")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created!"))
	})

	result, err := client.Invoker().Invoke(context.Background(), "fn-1", &faas.InvocationRequest{
		Method:  "POST",
		Body:    []byte("raw payload, not json"),
		Headers: map[string]string{"Content-Type": "text/plain", "X-Custom": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Equal(t, "created!", result.Body)

	require.NotNil(t, result.Headers.FunctionID)
	assert.Equal(t, "fn-1", *result.Headers.FunctionID)
	require.NotNil(t, result.Headers.FunctionVersionID)
	assert.Equal(t, "ver-4", *result.Headers.FunctionVersionID)
	require.NotNil(t, result.Headers.ExecutionID)
	assert.Equal(t, "exec-7", *result.Headers.ExecutionID)

	duration, ok := result.Headers.Duration()
	require.True(t, ok)
	assert.Equal(t, int64(42), duration.Milliseconds())
}

func TestInvoker_DefaultsToGet(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	result, err := client.Invoker().Invoke(context.Background(), "fn-1", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, result.Body)
	assert.Nil(t, result.Headers.FunctionID)
	assert.Nil(t, result.Headers.DurationMs)

	_, ok := result.Headers.Duration()
	assert.False(t, ok)
}

func TestInvoker_ErrorStatusesAreData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "lua error: attempt to index nil"},
		{"function says unauthorized", http.StatusUnauthorized, `{"error":"bad token"}`},
		{"not found", http.StatusNotFound, "function not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, navigator := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(faas.HeaderExecutionID, "exec-1")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.Invoker().Invoke(context.Background(), "fn-1", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.body, result.Body)
			assert.True(t, result.Failed())
			require.NotNil(t, result.Headers.ExecutionID)
			assert.Equal(t, "exec-1", *result.Headers.ExecutionID)
			assert.Empty(t, navigator.Routes())
		})
	}
}

func TestInvoker_RequiresID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Invoker().Invoke(context.Background(), "", nil)
	require.ErrorIs(t, err, faas.ErrFunctionIDRequired)
}
