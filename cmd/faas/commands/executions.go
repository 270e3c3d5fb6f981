package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// NewExecutionsCommand creates the executions command group.
func NewExecutionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "executions",
		Aliases: []string{"execution", "exec"},
		Short:   "Inspect executions",
		Long:    "List past executions of a function and read their logs",
	}

	cmd.AddCommand(newExecutionsListCommand())
	cmd.AddCommand(newExecutionsGetCommand())
	cmd.AddCommand(newExecutionsLogsCommand())

	return cmd
}

func formatMillis(ms int64) string {
	return formatDuration(time.Duration(ms) * time.Millisecond)
}

func renderExecutionsTable(w io.Writer, executions []faas.Execution) error {
	if len(executions) == 0 {
		_, _ = fmt.Fprintln(w, "No executions found")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Status", "Duration", "Error", "Started")

	for _, execution := range executions {
		_ = table.Append(
			execution.ID,
			execution.Status,
			formatMillis(execution.DurationMs),
			truncate(execution.ErrorMessage, constants.ErrorDisplayLength),
			formatTime(execution.CreatedAt),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newExecutionsListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list FUNCTION_ID",
		Short: "List executions of a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				params := faas.NewListParams().WithLimit(limit).WithOffset(offset)

				executions, err := c.client.Executions().List(ctx, args[0], params)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), executions, func(w io.Writer) error {
					if err := renderExecutionsTable(w, executions.Items); err != nil {
						return err
					}

					renderPageFooter(w, executions.Total, executions.Offset, len(executions.Items), executions.HasMore())

					return nil
				})
			})
		},
	}

	addPageFlags(cmd, &limit, &offset)

	return cmd
}

func newExecutionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EXECUTION_ID",
		Short: "Show an execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				execution, err := c.client.Executions().Get(ctx, args[0])
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), execution, func(w io.Writer) error {
					return renderProperties(w, [][]string{
						{"ID", execution.ID},
						{"Function", execution.FunctionID},
						{"Version ID", execution.FunctionVersionID},
						{"Status", execution.Status},
						{"Duration", formatMillis(execution.DurationMs)},
						{"Error", orNone(execution.ErrorMessage)},
						{"Event", orNone(execution.EventData)},
						{"Started", formatTime(execution.CreatedAt)},
					})
				})
			})
		},
	}
}

func newExecutionsLogsCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "logs EXECUTION_ID",
		Short: "Show the logs of an execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				params := faas.NewListParams().WithLimit(limit).WithOffset(offset)

				logs, err := c.client.Executions().Logs(ctx, args[0], params)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), logs, func(w io.Writer) error {
					if len(logs.Items) == 0 {
						_, _ = fmt.Fprintln(w, "No logs found")
						return nil
					}

					for _, entry := range logs.Items {
						_, _ = fmt.Fprintf(w, "%s [%s] %s\n", formatTime(entry.CreatedAt), entry.Level, entry.Message)
					}

					if logs.HasMore() {
						_, _ = fmt.Fprintf(w, "... %d more, use --offset %d\n",
							logs.Total-logs.Offset-len(logs.Items), logs.Offset+len(logs.Items))
					}

					return nil
				})
			})
		},
	}

	addPageFlags(cmd, &limit, &offset)

	return cmd
}
