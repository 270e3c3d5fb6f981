package faas

import (
	"time"
)

// Function represents a deployed serverless function.
type Function struct {
	ID            string            `json:"id"                       yaml:"id"`
	Name          string            `json:"name"                     yaml:"name"`
	Description   string            `json:"description,omitempty"    yaml:"description,omitempty"`
	ActiveVersion *Version          `json:"active_version,omitempty" yaml:"active_version,omitempty"`
	EnvVars       map[string]string `json:"env_vars,omitempty"       yaml:"env_vars,omitempty"`
	CreatedAt     int64             `json:"created_at"               yaml:"created_at"`
	UpdatedAt     int64             `json:"updated_at"               yaml:"updated_at"`
}

// Version is an immutable snapshot of a function's code.
type Version struct {
	ID         string `json:"id"          yaml:"id"`
	FunctionID string `json:"function_id" yaml:"function_id"`
	Version    int    `json:"version"     yaml:"version"`
	Code       string `json:"code"        yaml:"code"`
	CreatedAt  int64  `json:"created_at"  yaml:"created_at"`
}

// VersionDiff is the backend's comparison of two versions. The order of
// OldVersion and NewVersion follows the request.
type VersionDiff struct {
	OldVersion int    `json:"old_version" yaml:"old_version"`
	NewVersion int    `json:"new_version" yaml:"new_version"`
	Diff       string `json:"diff"        yaml:"diff"`
}

// Execution records one invocation of a function.
type Execution struct {
	ID                string `json:"id"                      yaml:"id"`
	FunctionID        string `json:"function_id"             yaml:"function_id"`
	FunctionVersionID string `json:"function_version_id"     yaml:"function_version_id"`
	Status            string `json:"status"                  yaml:"status"`
	DurationMs        int64  `json:"duration_ms"             yaml:"duration_ms"`
	ErrorMessage      string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	EventData         string `json:"event_data,omitempty"    yaml:"event_data,omitempty"`
	CreatedAt         int64  `json:"created_at"              yaml:"created_at"`
}

// LogEntry is one line emitted by an execution.
type LogEntry struct {
	ID          string `json:"id"           yaml:"id"`
	ExecutionID string `json:"execution_id" yaml:"execution_id"`
	Level       string `json:"level"        yaml:"level"`
	Message     string `json:"message"      yaml:"message"`
	CreatedAt   int64  `json:"created_at"   yaml:"created_at"`
}

// FunctionRequest is the full payload for creating or replacing a function.
type FunctionRequest struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code"        yaml:"code"`
}

// EnvVarsRequest is the body of an environment variable update. Keys are sent
// as given, including empty ones; the backend owns validation.
type EnvVarsRequest struct {
	EnvVars map[string]string `json:"env_vars" yaml:"env_vars"`
}

// LoginRequest is the body of the login call.
type LoginRequest struct {
	APIKey string `json:"apiKey"`
}

// ListResponse represents a paginated list response. Items keep the
// server's order.
type ListResponse[T any] struct {
	Items  []T `json:"items"  yaml:"items"`
	Total  int `json:"total"  yaml:"total"`
	Limit  int `json:"limit"  yaml:"limit"`
	Offset int `json:"offset" yaml:"offset"`
}

// HasMore reports whether another page follows this one.
func (l *ListResponse[T]) HasMore() bool {
	return l.Offset+len(l.Items) < l.Total
}

// FunctionsList represents a paginated list of functions.
type FunctionsList = ListResponse[Function]

// VersionsList represents a paginated list of versions.
type VersionsList = ListResponse[Version]

// ExecutionsList represents a paginated list of executions.
type ExecutionsList = ListResponse[Execution]

// LogsList represents a paginated list of log entries.
type LogsList = ListResponse[LogEntry]

// UnixTime converts a backend timestamp (unix seconds) to time.Time. Zero
// stays the zero time.
func UnixTime(seconds int64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}

	return time.Unix(seconds, 0)
}
