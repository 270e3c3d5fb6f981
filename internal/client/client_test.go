package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, faas.ErrConfigRequired)
	})

	t.Run("requires API endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&faas.Config{})
		require.ErrorIs(t, err, faas.ErrAPIEndpointRequired)
	})

	t.Run("rejects endpoint without host", func(t *testing.T) {
		t.Parallel()

		_, err := New(&faas.Config{APIEndpoint: "/api"})
		require.ErrorIs(t, err, faas.ErrAPIEndpointRequired)
	})

	t.Run("derives invoke endpoint from API origin", func(t *testing.T) {
		t.Parallel()

		client, err := New(&faas.Config{APIEndpoint: "https://faas.example.com/api/"})
		require.NoError(t, err)
		assert.Equal(t, "https://faas.example.com/api", client.APIEndpoint())
		assert.Equal(t, "https://faas.example.com", client.InvokeEndpoint())
	})

	t.Run("uses explicit invoke endpoint", func(t *testing.T) {
		t.Parallel()

		client, err := New(&faas.Config{
			APIEndpoint:    "https://faas.example.com/api",
			InvokeEndpoint: "https://run.example.com/",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://run.example.com", client.InvokeEndpoint())
	})

	t.Run("exposes resource clients", func(t *testing.T) {
		t.Parallel()

		client, err := New(&faas.Config{APIEndpoint: "https://faas.example.com/api"})
		require.NoError(t, err)
		assert.NotNil(t, client.Auth())
		assert.NotNil(t, client.Functions())
		assert.NotNil(t, client.Versions())
		assert.NotNil(t, client.Executions())
		assert.NotNil(t, client.Invoker())
	})
}

func TestClient_SessionCookie(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		default:
			mu.Lock()
			defer mu.Unlock()

			cookie, err := r.Cookie("session")
			if err != nil {
				seen = append(seen, r.URL.Path+"=")
			} else {
				seen = append(seen, r.URL.Path+"="+cookie.Value)
			}

			writeJSON(w, http.StatusOK, map[string]interface{}{"functions": []interface{}{}})
		}
	})

	ctx := context.Background()

	require.NoError(t, client.Auth().Login(ctx, "key"))

	_, err := client.Functions().List(ctx, nil)
	require.NoError(t, err)

	_, err = client.Invoker().Invoke(ctx, "fn-1", nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"/api/functions=abc123", "/fn/fn-1=abc123"}, seen)
}

func TestClient_WithoutCredentials(t *testing.T) {
	t.Parallel()

	var (
		mu         sync.Mutex
		cookieSent bool
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			w.WriteHeader(http.StatusOK)

			return
		}

		_, err := r.Cookie("session")

		mu.Lock()
		cookieSent = err == nil
		mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]interface{}{"functions": []interface{}{}})
	}))
	defer server.Close()

	client, err := New(&faas.Config{APIEndpoint: server.URL + "/api"})
	require.NoError(t, err)

	require.NoError(t, client.Auth().Login(context.Background(), "key"))

	_, err = client.Functions().List(context.Background(), nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.False(t, cookieSent)
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	endpoint := server.URL + "/api"
	server.Close()

	navigator := &recordingNavigator{}

	client, err := New(&faas.Config{APIEndpoint: endpoint, Navigator: navigator, WithCredentials: true})
	require.NoError(t, err)

	_, err = client.Functions().Get(context.Background(), "fn-1")
	require.Error(t, err)

	apiErr, ok := faas.AsError(err)
	require.True(t, ok)
	assert.Equal(t, faas.KindNetwork, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Code)
	assert.False(t, apiErr.HasCode())
	assert.NotEmpty(t, apiErr.Message)
	assert.Empty(t, navigator.Routes())

	_, err = client.Invoker().Invoke(context.Background(), "fn-1", nil)
	assert.True(t, faas.IsNetwork(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Functions().Get(ctx, "fn-1")
	require.Error(t, err)
	assert.True(t, faas.IsNetwork(err))
	assert.ErrorIs(t, err, context.Canceled)
}
