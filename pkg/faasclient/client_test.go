package faasclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/fivetwenty-io/faas-client/pkg/faasclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &faas.Config{APIEndpoint: "https://faas.example.com/api"}

		client, err := faasclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.False(t, config.WithCredentials, "caller config must not be modified")
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := faasclient.New(nil)
		require.ErrorIs(t, err, faas.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := faasclient.New(&faas.Config{})
		require.ErrorIs(t, err, faas.ErrAPIEndpointRequired)
	})

	t.Run("accepts endpoint without scheme", func(t *testing.T) {
		t.Parallel()

		client, err := faasclient.NewWithEndpoint("faas.example.com/api/")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestNew_CarriesSessionByDefault(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		cookies []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})

			return
		}

		mu.Lock()
		if cookie, err := r.Cookie("session"); err == nil {
			cookies = append(cookies, cookie.Value)
		}
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"functions": []interface{}{}, "total": 0})
	}))
	defer server.Close()

	client, err := faasclient.NewWithAPIKey(context.Background(), server.URL+"/api", "key")
	require.NoError(t, err)

	_, err = client.Functions().List(context.Background(), nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"s1"}, cookies)
}

func TestNew_DisableCredentials(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		sent bool
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			return
		}

		_, err := r.Cookie("session")

		mu.Lock()
		sent = err == nil
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"functions": []interface{}{}})
	}))
	defer server.Close()

	client, err := faasclient.New(&faas.Config{APIEndpoint: server.URL + "/api", DisableCredentials: true})
	require.NoError(t, err)

	require.NoError(t, client.Auth().Login(context.Background(), "key"))

	_, err = client.Functions().List(context.Background(), nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.False(t, sent)
}

func TestNewWithAPIKey_Rejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	}))
	defer server.Close()

	client, err := faasclient.NewWithAPIKey(context.Background(), server.URL+"/api", "wrong")
	assert.Nil(t, client)
	require.Error(t, err)
	assert.Equal(t, "invalid api key", err.Error())
	assert.True(t, faas.IsUnauthorized(err))
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://faas.example.com/api", "https://faas.example.com/api"},
		{"https://faas.example.com/api/", "https://faas.example.com/api"},
		{"  http://localhost:8080/api ", "http://localhost:8080/api"},
		{"faas.example.com/api", "https://faas.example.com/api"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, faasclient.NormalizeEndpoint(tt.in))
		})
	}
}
