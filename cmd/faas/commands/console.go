package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/internal/logging"
	"github.com/fivetwenty-io/faas-client/internal/session"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/fivetwenty-io/faas-client/pkg/faasclient"
)

// console bundles the client with the session it reads and writes.
type console struct {
	client   faas.Client
	jar      *session.Jar
	store    *session.Store
	registry *prometheus.Registry
	endpoint string
	errOut   io.Writer
}

// sessionNavigator handles login navigation for the terminal: the saved
// session is useless once the backend rejects it.
type sessionNavigator struct {
	out   io.Writer
	store *session.Store
}

func (n *sessionNavigator) Navigate(_ context.Context, route string) {
	if err := n.store.Clear(); err != nil {
		fmt.Fprintf(n.out, "Warning: %v\n", err)
	}

	fmt.Fprintf(n.out, "%s (login route: %s)\n", constants.ErrSessionExpired, route)
}

// sessionStore returns the store at the configured location.
func sessionStore() (*session.Store, error) {
	if path := viper.GetString("session_file"); path != "" {
		return session.NewStore(path), nil
	}

	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}

	return session.NewStore(path), nil
}

// apiEndpoint returns the normalized management endpoint from flags, env or
// the config file.
func apiEndpoint() (string, error) {
	endpoint := strings.TrimSpace(viper.GetString("api"))
	if endpoint == "" {
		return "", constants.ErrNoAPIConfigured
	}

	return faasclient.NormalizeEndpoint(endpoint), nil
}

// newConsole builds a client primed with the saved session.
func newConsole(cmd *cobra.Command) (*console, error) {
	endpoint, err := apiEndpoint()
	if err != nil {
		return nil, err
	}

	store, err := sessionStore()
	if err != nil {
		return nil, err
	}

	jar, err := store.Load(endpoint)
	if err != nil {
		return nil, err
	}

	verbose := viper.GetBool("verbose")
	logger := logging.New(cmd.ErrOrStderr(), verbose, true)

	interceptors := faas.NewInterceptorChain().
		AddRequestInterceptor(faas.RequestIDInterceptor())

	registry := prometheus.NewRegistry()

	metrics, err := faas.NewPrometheusMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	metrics.Install(interceptors)

	config := &faas.Config{
		APIEndpoint:    endpoint,
		InvokeEndpoint: viper.GetString("invoke_endpoint"),
		LoginRoute:     viper.GetString("login_route"),
		Navigator:      &sessionNavigator{out: cmd.ErrOrStderr(), store: store},
		CookieJar:      jar,
		HTTPTimeout:    viper.GetDuration("timeout"),
		Debug:          verbose,
		Logger:         logger,
		Interceptors:   interceptors,
	}

	client, err := faasclient.New(config)
	if err != nil {
		return nil, err
	}

	return &console{
		client:   client,
		jar:      jar,
		store:    store,
		registry: registry,
		endpoint: endpoint,
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// saveSession persists the cookies the backend has set so far.
func (c *console) saveSession() error {
	if c.jar.Empty() {
		return nil
	}

	return c.store.Save(c.jar)
}

// finish runs after a command. On success the session is written back so
// refreshed cookies survive, and metrics are dumped when requested.
func (c *console) finish(err error) error {
	if path := viper.GetString("metrics_file"); path != "" {
		if writeErr := prometheus.WriteToTextfile(path, c.registry); writeErr != nil {
			fmt.Fprintf(c.errOut, "Warning: failed to write metrics: %v\n", writeErr)
		}
	}

	if err != nil {
		return err
	}

	return c.saveSession()
}

// run creates a console, calls fn and finishes.
func run(cmd *cobra.Command, fn func(ctx context.Context, c *console) error) error {
	c, err := newConsole(cmd)
	if err != nil {
		return err
	}

	return c.finish(fn(commandContext(cmd), c))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
