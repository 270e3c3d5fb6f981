// Package faas provides types, interfaces, and helpers for working with the
// FaaS management API.
//
// # Overview
//
// The faas package defines the domain types (Function, Version, Execution,
// LogEntry) and the interfaces for resource-oriented clients (FunctionsClient,
// VersionsClient, ExecutionsClient, Invoker). A concrete implementation is
// provided by the faasclient package, which wires configuration, the session
// cookie jar and the login redirect.
//
// # Errors
//
// Management operations fail with *Error. Kind tells a backend rejection
// (Code is the HTTP status) from a network failure (Code is 0). Message is the
// backend's "error" string verbatim, or the status text when the body carried
// none:
//
//	_, err := cli.Functions().Create(ctx, &faas.FunctionRequest{Code: src})
//	if fieldErr, ok := faas.ParseFieldError(err.Error()); ok {
//	  fmt.Printf("%s is invalid: %s\n", fieldErr.Field, fieldErr.Message)
//	}
//
// # Session expiry
//
// A 401 from any management call except login invokes Config.Navigator with
// Config.LoginRoute, then returns the error to the caller. Invoker never
// triggers it.
//
// # Invocations
//
// InvocationRequest.Query accepts a RawQuery or url.Values. The result holds
// the function's status, the raw body and the four execution headers.
//
// # Interceptors
//
// InterceptorChain runs hooks around every request. RequestIDInterceptor tags
// requests with X-Request-Id, and PrometheusMetrics exports request counts and
// latencies.
package faas
