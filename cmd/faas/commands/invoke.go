package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand() *cobra.Command {
	var (
		method   string
		query    string
		headers  []string
		data     string
		bodyOnly bool
	)

	cmd := &cobra.Command{
		Use:   "invoke FUNCTION_ID",
		Short: "Invoke a function",
		Long: `Send an HTTP request to a deployed function and print what it returned.

The function's status code is reported as is; a 4xx or 5xx answer is not a
command failure. --data accepts a literal body, @file or @- for stdin.`,
		Example: `  faas invoke fn-1 --query 'name=world'
  faas invoke fn-1 -X POST -H 'Content-Type: application/json' --data '{"a":1}'
  faas invoke fn-1 -X PUT --data @payload.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headerMap, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			var body []byte
			if data != "" {
				body, err = readData(cmd, data)
				if err != nil {
					return err
				}
			}

			request := &faas.InvocationRequest{
				Method:  strings.ToUpper(method),
				Query:   faas.RawQuery(query),
				Body:    body,
				Headers: headerMap,
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				result, err := c.client.Invoker().Invoke(ctx, args[0], request)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return renderInvocation(w, result, bodyOnly)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&method, "request", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&query, "query", "q", "", "query string, with or without the leading '?'")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header 'Name: value' (repeatable)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body, @file or @- for stdin")
	cmd.Flags().BoolVar(&bodyOnly, "body-only", false, "print only the response body")

	return cmd
}

func renderInvocation(w io.Writer, result *faas.InvocationResult, bodyOnly bool) error {
	if !bodyOnly {
		status := fmt.Sprintf("%d %s", result.Status, http.StatusText(result.Status))

		duration := optional(result.Headers.DurationMs)
		if d, ok := result.Headers.Duration(); ok {
			duration = formatDuration(d)
		}

		err := renderProperties(w, [][]string{
			{"Status", strings.TrimSpace(status)},
			{faas.HeaderFunctionID, optional(result.Headers.FunctionID)},
			{faas.HeaderFunctionVersionID, optional(result.Headers.FunctionVersionID)},
			{faas.HeaderExecutionID, optional(result.Headers.ExecutionID)},
			{faas.HeaderExecutionDuration, duration},
		})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, result.Body)

	return nil
}
