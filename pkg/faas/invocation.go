package faas

import (
	"net/http"
	"strconv"
	"time"
)

// Response headers the invocation endpoint reports about the execution.
const (
	HeaderFunctionID        = "X-Function-Id"
	HeaderFunctionVersionID = "X-Function-Version-Id"
	HeaderExecutionID       = "X-Execution-Id"
	HeaderExecutionDuration = "X-Execution-Duration-Ms"
)

// InvocationRequest describes an arbitrary HTTP request proxied to a function.
type InvocationRequest struct {
	// Method defaults to GET.
	Method string
	// Query is optional; RawQuery and url.Values both work.
	Query Query
	// Body is sent as-is.
	Body []byte
	// Headers are forwarded to the function.
	Headers map[string]string
}

// InvocationHeaders holds the execution headers. A header the backend did not
// send is nil.
type InvocationHeaders struct {
	FunctionID        *string `json:"X-Function-Id"           yaml:"X-Function-Id"`
	FunctionVersionID *string `json:"X-Function-Version-Id"   yaml:"X-Function-Version-Id"`
	ExecutionID       *string `json:"X-Execution-Id"          yaml:"X-Execution-Id"`
	DurationMs        *string `json:"X-Execution-Duration-Ms" yaml:"X-Execution-Duration-Ms"`
}

// Duration parses DurationMs. It returns false when the header is absent or
// not a number.
func (h InvocationHeaders) Duration() (time.Duration, bool) {
	if h.DurationMs == nil {
		return 0, false
	}

	ms, err := strconv.ParseFloat(*h.DurationMs, 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(ms * float64(time.Millisecond)), true
}

// InvocationResult is what the function returned. Body is the raw response
// text and is never decoded; a Status >= 400 is the function's own answer, not
// a client failure.
type InvocationResult struct {
	Status  int               `json:"status"  yaml:"status"`
	Body    string            `json:"body"    yaml:"body"`
	Headers InvocationHeaders `json:"headers" yaml:"headers"`
}

// Failed reports whether the function answered with an error status.
func (r *InvocationResult) Failed() bool {
	return r.Status >= http.StatusBadRequest
}

// ExtractInvocationHeaders reads the execution headers from h.
func ExtractInvocationHeaders(h http.Header) InvocationHeaders {
	return InvocationHeaders{
		FunctionID:        headerValue(h, HeaderFunctionID),
		FunctionVersionID: headerValue(h, HeaderFunctionVersionID),
		ExecutionID:       headerValue(h, HeaderExecutionID),
		DurationMs:        headerValue(h, HeaderExecutionDuration),
	}
}

func headerValue(h http.Header, key string) *string {
	values := h.Values(key)
	if len(values) == 0 {
		return nil
	}

	value := values[0]

	return &value
}
