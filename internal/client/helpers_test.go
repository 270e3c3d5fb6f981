package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// recordingNavigator remembers every route it was asked to open.
type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.routes...)
}

// newTestClient starts a backend serving handler and returns a client whose
// API endpoint is {server}/api and whose invoke endpoint is {server}.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingNavigator) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	navigator := &recordingNavigator{}

	client, err := New(&faas.Config{
		APIEndpoint:     server.URL + "/api",
		Navigator:       navigator,
		WithCredentials: true,
	})
	require.NoError(t, err)

	return client, navigator
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requireAPIError asserts err is a backend *faas.Error with the given message
// and status.
func requireAPIError(t *testing.T, err error, message string, code int) {
	t.Helper()

	require.Error(t, err)

	apiErr, ok := faas.AsError(err)
	require.True(t, ok, "expected *faas.Error, got %T", err)
	require.Equal(t, message, apiErr.Message)
	require.Equal(t, code, apiErr.Code)
	require.Equal(t, faas.KindBackend, apiErr.Kind)
	require.Equal(t, message, err.Error())
}
