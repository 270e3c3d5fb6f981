package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// NewVersionsCommand creates the versions command group.
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage function versions",
		Long:  "List, inspect, compare and activate function versions",
	}

	cmd.AddCommand(newVersionsListCommand())
	cmd.AddCommand(newVersionsGetCommand())
	cmd.AddCommand(newVersionsActivateCommand())
	cmd.AddCommand(newVersionsDiffCommand())

	return cmd
}

// parseVersion accepts "3" or "v3".
func parseVersion(arg string) (int, error) {
	if len(arg) > 1 && (arg[0] == 'v' || arg[0] == 'V') {
		arg = arg[1:]
	}

	version, err := strconv.Atoi(arg)
	if err != nil || version < 1 {
		return 0, fmt.Errorf("%w: %q", faas.ErrInvalidVersion, arg)
	}

	return version, nil
}

func renderVersionsTable(w io.Writer, versions []faas.Version, function *faas.Function) error {
	if len(versions) == 0 {
		_, _ = fmt.Fprintln(w, "No versions found")
		return nil
	}

	active := 0
	if function != nil && function.ActiveVersion != nil {
		active = function.ActiveVersion.Version
	}

	table := tablewriter.NewWriter(w)
	table.Header("Version", "ID", "Active", "Created")

	for _, version := range versions {
		marker := ""
		if version.Version == active {
			marker = constants.ActiveMarker
		}

		_ = table.Append("v"+strconv.Itoa(version.Version), version.ID, marker, formatTime(version.CreatedAt))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newVersionsListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list FUNCTION_ID",
		Short: "List versions of a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				params := faas.NewListParams().WithLimit(limit).WithOffset(offset)

				versions, err := c.client.Versions().List(ctx, args[0], params)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), versions, func(w io.Writer) error {
					// The active marker needs the function; a failure here
					// only loses the marker.
					function, _ := c.client.Functions().Get(ctx, args[0])

					if err := renderVersionsTable(w, versions.Items, function); err != nil {
						return err
					}

					renderPageFooter(w, versions.Total, versions.Offset, len(versions.Items), versions.HasMore())

					return nil
				})
			})
		},
	}

	addPageFlags(cmd, &limit, &offset)

	return cmd
}

func newVersionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FUNCTION_ID VERSION",
		Short: "Show a version and its code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseVersion(args[1])
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				version, err := c.client.Versions().Get(ctx, args[0], number)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), version, func(w io.Writer) error {
					err := renderProperties(w, [][]string{
						{"ID", version.ID},
						{"Function", version.FunctionID},
						{"Version", "v" + strconv.Itoa(version.Version)},
						{"Created", formatTime(version.CreatedAt)},
					})
					if err != nil {
						return err
					}

					_, _ = fmt.Fprintf(w, "\n%s\n", version.Code)

					return nil
				})
			})
		},
	}
}

func newVersionsActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate FUNCTION_ID VERSION",
		Short: "Activate a version",
		Long:  "Make VERSION the one served by invocations; activating the active version is a no-op",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseVersion(args[1])
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				if err := c.client.Versions().Activate(ctx, args[0], number); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Version v%d of %s is active\n", number, args[0])

				return nil
			})
		},
	}
}

func newVersionsDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff FUNCTION_ID VERSION1 VERSION2",
		Short: "Compare two versions",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v1, err := parseVersion(args[1])
			if err != nil {
				return err
			}

			v2, err := parseVersion(args[2])
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				diff, err := c.client.Versions().Diff(ctx, args[0], v1, v2)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), diff, func(w io.Writer) error {
					_, _ = fmt.Fprintf(w, "--- v%d\n+++ v%d\n%s\n", diff.OldVersion, diff.NewVersion, diff.Diff)
					return nil
				})
			})
		},
	}
}
