package faas_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestNewBackendError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"message kept verbatim", 400, "name: cannot be empty", "name: cannot be empty"},
		{"empty message uses status text", 404, "", "Not Found"},
		{"unknown status", 499, "", "request failed with status 499"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := faas.NewBackendError(tt.status, tt.message)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.status, err.Code)
			assert.Equal(t, faas.KindBackend, err.Kind)
			assert.True(t, err.HasCode())
			assert.NoError(t, err.Unwrap())
		})
	}
}

func TestNewNetworkError(t *testing.T) {
	t.Parallel()

	err := faas.NewNetworkError(context.DeadlineExceeded)
	assert.Equal(t, "network error: context deadline exceeded", err.Error())
	assert.Equal(t, 0, err.Code)
	assert.False(t, err.HasCode())
	assert.Equal(t, faas.KindNetwork, err.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, "network error", faas.NewNetworkError(nil).Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		unauthorized bool
		notFound     bool
		validation   bool
		network      bool
	}{
		{name: "401", err: faas.NewBackendError(401, "unauthorized"), unauthorized: true},
		{name: "wrapped 401", err: fmt.Errorf("listing: %w", faas.NewBackendError(401, "")), unauthorized: true},
		{name: "404", err: faas.NewBackendError(404, ""), notFound: true},
		{name: "400", err: faas.NewBackendError(400, "name: required"), validation: true},
		{name: "422", err: faas.NewBackendError(422, "code: invalid"), validation: true},
		{name: "500", err: faas.NewBackendError(500, "")},
		{name: "network", err: faas.NewNetworkError(errors.New("refused")), network: true},
		{name: "plain", err: errors.New("other")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.unauthorized, faas.IsUnauthorized(tt.err))
			assert.Equal(t, tt.notFound, faas.IsNotFound(tt.err))
			assert.Equal(t, tt.validation, faas.IsValidation(tt.err))
			assert.Equal(t, tt.network, faas.IsNetwork(tt.err))
		})
	}
}

func TestAsError(t *testing.T) {
	t.Parallel()

	original := faas.NewBackendError(409, "name: already exists")

	apiErr, ok := faas.AsError(fmt.Errorf("creating function: %w", original))
	require.True(t, ok)
	assert.Same(t, original, apiErr)

	_, ok = faas.AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestParseFieldError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    faas.FieldError
		ok      bool
	}{
		{"name: cannot be empty", faas.FieldError{Field: "name", Message: "cannot be empty"}, true},
		{"env_var_key:must be uppercase", faas.FieldError{Field: "env_var_key", Message: "must be uppercase"}, true},
		{"code:   syntax error near 'end'", faas.FieldError{Field: "code", Message: "syntax error near 'end'"}, true},
		{"something went wrong", faas.FieldError{}, false},
		{"two words: not a field", faas.FieldError{}, false},
		{"name:", faas.FieldError{}, false},
		{"", faas.FieldError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			got, ok := faas.ParseFieldError(tt.message)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldError_String(t *testing.T) {
	t.Parallel()

	fieldErr, ok := faas.ParseFieldError("name: cannot be empty")
	require.True(t, ok)
	assert.Equal(t, "name: cannot be empty", fieldErr.String())
}
