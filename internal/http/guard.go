package http

import (
	"context"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Guard wraps a Sender so that a 401 sends the operator to the login route.
// The error is always returned to the caller after the navigation. Calls
// that must not redirect (login, function invocation) use the unwrapped
// Sender instead.
type Guard struct {
	next       Sender
	navigator  faas.Navigator
	loginRoute string
	logger     faas.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLoginRoute overrides the route passed to the navigator.
func WithLoginRoute(route string) GuardOption {
	return func(g *Guard) {
		if route != "" {
			g.loginRoute = route
		}
	}
}

// WithGuardLogger logs each redirect.
func WithGuardLogger(logger faas.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard wraps next. A nil navigator turns the redirect off.
func NewGuard(next Sender, navigator faas.Navigator, opts ...GuardOption) *Guard {
	guard := &Guard{
		next:       next,
		navigator:  navigator,
		loginRoute: faas.DefaultLoginRoute,
	}

	for _, opt := range opts {
		opt(guard)
	}

	return guard
}

// Do implements Sender.
func (g *Guard) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := g.next.Do(ctx, req)
	if err == nil || !faas.IsUnauthorized(err) || g.navigator == nil {
		return resp, err
	}

	if g.logger != nil {
		g.logger.Info("session rejected, navigating to login", map[string]interface{}{
			"operation": req.Operation,
			"route":     g.loginRoute,
		})
	}

	g.navigator.Navigate(ctx, g.loginRoute)

	return resp, err
}
