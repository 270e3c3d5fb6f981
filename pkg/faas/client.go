package faas

import (
	"context"
	"net/http"
	"time"
)

// DefaultLoginRoute is where the console navigates when the session is rejected.
const DefaultLoginRoute = "/login"

// AuthClient manages the console session.
type AuthClient interface {
	// Login exchanges an API key for a session cookie. A 401 here is a bad
	// key and never triggers login navigation.
	Login(ctx context.Context, apiKey string) error
	Logout(ctx context.Context) error
}

// FunctionsClient manages functions.
type FunctionsClient interface {
	List(ctx context.Context, params *ListParams) (*FunctionsList, error)
	Get(ctx context.Context, id string) (*Function, error)
	Create(ctx context.Context, request *FunctionRequest) (*Function, error)
	Update(ctx context.Context, id string, request *FunctionRequest) (*Function, error)
	Delete(ctx context.Context, id string) error
	UpdateEnv(ctx context.Context, id string, envVars map[string]string) (*Function, error)
}

// VersionsClient manages function versions.
type VersionsClient interface {
	List(ctx context.Context, functionID string, params *ListParams) (*VersionsList, error)
	Get(ctx context.Context, functionID string, version int) (*Version, error)
	Activate(ctx context.Context, functionID string, version int) error
	Diff(ctx context.Context, functionID string, v1, v2 int) (*VersionDiff, error)
}

// ExecutionsClient inspects past executions.
type ExecutionsClient interface {
	List(ctx context.Context, functionID string, params *ListParams) (*ExecutionsList, error)
	Get(ctx context.Context, executionID string) (*Execution, error)
	Logs(ctx context.Context, executionID string, params *ListParams) (*LogsList, error)
}

// Invoker proxies requests to a deployed function.
type Invoker interface {
	Invoke(ctx context.Context, functionID string, request *InvocationRequest) (*InvocationResult, error)
}

// Client is the full console API.
type Client interface {
	Auth() AuthClient
	Functions() FunctionsClient
	Versions() VersionsClient
	Executions() ExecutionsClient
	Invoker() Invoker
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Navigator performs the client-side navigation triggered by an expired
// session.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(ctx context.Context, route string) {
	f(ctx, route)
}

// Config represents client configuration.
//
// Every management call except login goes through the session guard: a 401
// response calls Navigator with LoginRoute and the error is still returned.
// Function invocations are never guarded, since the status they carry belongs
// to the user's function.
type Config struct {
	// APIEndpoint is the base URL of the management API, e.g.
	// "https://faas.example.com/api". Required.
	APIEndpoint string
	// InvokeEndpoint is the base URL serving /fn/{id}. Defaults to the
	// scheme and host of APIEndpoint.
	InvokeEndpoint string

	// LoginRoute is passed to Navigator on a 401. Defaults to "/login".
	LoginRoute string
	// Navigator receives the login navigation. Nil disables it.
	Navigator Navigator

	// WithCredentials attaches the session cookie to every request. New
	// clients built by faasclient.New enable it unless DisableCredentials is set.
	WithCredentials bool
	// DisableCredentials turns WithCredentials off in faasclient.New.
	DisableCredentials bool
	// CookieJar overrides the in-memory jar used when WithCredentials is set.
	CookieJar http.CookieJar

	// HTTPTimeout bounds each request. Zero leaves the platform default.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// Interceptors run around every request, guarded or not.
	Interceptors *InterceptorChain
}
