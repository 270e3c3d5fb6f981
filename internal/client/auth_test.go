package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestAuthClient_Login(t *testing.T) {
	t.Parallel()

	t.Run("posts the API key", func(t *testing.T) {
		t.Parallel()

		client, navigator := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"apiKey": "secret-key"}, body)

			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		})

		require.NoError(t, client.Auth().Login(context.Background(), "secret-key"))
		assert.Empty(t, navigator.Routes())
	})

	t.Run("wrong key returns error without navigation", func(t *testing.T) {
		t.Parallel()

		client, navigator := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusUnauthorized, "invalid api key")
		})

		err := client.Auth().Login(context.Background(), "wrong")
		requireAPIError(t, err, "invalid api key", http.StatusUnauthorized)
		assert.True(t, faas.IsUnauthorized(err))
		assert.Empty(t, navigator.Routes())
	})

	t.Run("empty key is rejected locally", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		})

		err := client.Auth().Login(context.Background(), "  ")
		require.ErrorIs(t, err, faas.ErrAPIKeyRequired)
		assert.Zero(t, calls.Load())
	})
}

func TestAuthClient_Logout(t *testing.T) {
	t.Parallel()

	t.Run("posts logout", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/logout", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		})

		require.NoError(t, client.Auth().Logout(context.Background()))
	})

	t.Run("expired session navigates to login", func(t *testing.T) {
		t.Parallel()

		client, navigator := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
		})

		err := client.Auth().Logout(context.Background())
		requireAPIError(t, err, "unauthorized", http.StatusUnauthorized)
		assert.Equal(t, []string{faas.DefaultLoginRoute}, navigator.Routes())
	})
}
