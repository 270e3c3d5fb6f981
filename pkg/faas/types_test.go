package faas_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestListResponse_HasMore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		list faas.FunctionsList
		want bool
	}{
		{"empty", faas.FunctionsList{}, false},
		{"first of two pages", faas.FunctionsList{Items: make([]faas.Function, 20), Total: 25, Limit: 20}, true},
		{"last page", faas.FunctionsList{Items: make([]faas.Function, 5), Total: 25, Limit: 20, Offset: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.list.HasMore())
		})
	}
}

func TestUnixTime(t *testing.T) {
	t.Parallel()

	assert.True(t, faas.UnixTime(0).IsZero())
	assert.Equal(t, time.Unix(1700000000, 0), faas.UnixTime(1700000000))
}

func TestEnvVarsRequest_KeepsEmptyKey(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(faas.EnvVarsRequest{EnvVars: map[string]string{"API_KEY": "x", "": "orphan"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"env_vars":{"API_KEY":"x","":"orphan"}}`, string(data))
}

func TestLoginRequest_WireName(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(faas.LoginRequest{APIKey: "k"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"apiKey":"k"}`, string(data))
}
