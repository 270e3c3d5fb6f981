package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/faas-client/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the console",
		Long:  "Exchange an API key for a session cookie and save it for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				key, err := promptAPIKey(cmd)
				if err != nil {
					return err
				}

				apiKey = key
			}

			if strings.TrimSpace(apiKey) == "" {
				return constants.ErrAPIKeyRequired
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				if err := c.client.Auth().Login(ctx, apiKey); err != nil {
					return err
				}

				if err := c.saveSession(); err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", c.endpoint)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted when omitted)")

	return cmd
}

// promptAPIKey reads the key without echo when stdin is a terminal.
func promptAPIKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", constants.ErrAPIKeyRequired
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API key: ")

	key, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return string(key), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the console",
		Long:  "End the session on the backend and remove the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), constants.ShortHTTPTimeout)
			defer cancel()

			logoutErr := c.client.Auth().Logout(ctx)

			if err := c.store.Clear(); err != nil {
				return err
			}

			if logoutErr != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", logoutErr)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}
