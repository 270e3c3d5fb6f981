package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

func TestExecutionsClient_List(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/functions/fn-1/executions", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"executions": []map[string]interface{}{
				{"id": "exec-1", "status": "success", "duration_ms": 12},
				{"id": "exec-2", "status": "error", "error_message": "boom"},
			},
			"total":  120,
			"limit":  50,
			"offset": 50,
		})
	})

	list, err := client.Executions().List(context.Background(), "fn-1", faas.NewListParams().WithLimit(50).WithOffset(50))
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, int64(12), list.Items[0].DurationMs)
	assert.Equal(t, "boom", list.Items[1].ErrorMessage)
	assert.True(t, list.HasMore())
}

func TestExecutionsClient_Get(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/executions/exec-1", r.URL.Path)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":                  "exec-1",
			"function_id":         "fn-1",
			"function_version_id": "ver-1",
			"status":              "success",
			"event_data":          `{"method":"GET"}`,
		})
	})

	execution, err := client.Executions().Get(context.Background(), "exec-1")
	require.NoError(t, err)
	assert.Equal(t, "ver-1", execution.FunctionVersionID)
	assert.Equal(t, `{"method":"GET"}`, execution.EventData)
}

func TestExecutionsClient_Logs(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/executions/exec-1/logs", r.URL.Path)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"logs": []map[string]interface{}{
				{"level": "info", "message": "starting"},
				{"level": "error", "message": "failed"},
			},
			"total": 2, "limit": 20, "offset": 0,
		})
	})

	logs, err := client.Executions().Logs(context.Background(), "exec-1", nil)
	require.NoError(t, err)
	require.Len(t, logs.Items, 2)
	assert.Equal(t, "starting", logs.Items[0].Message)
	assert.Equal(t, "error", logs.Items[1].Level)
}

func TestExecutionsClient_RequiresID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()

	_, err := client.Executions().List(ctx, "", nil)
	require.ErrorIs(t, err, faas.ErrFunctionIDRequired)

	_, err = client.Executions().Get(ctx, "")
	require.ErrorIs(t, err, faas.ErrExecutionIDRequired)

	_, err = client.Executions().Logs(ctx, "", nil)
	require.ErrorIs(t, err, faas.ErrExecutionIDRequired)
}
