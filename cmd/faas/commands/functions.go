package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// NewFunctionsCommand creates the functions command group.
func NewFunctionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "functions",
		Aliases: []string{"function", "fn"},
		Short:   "Manage functions",
		Long:    "List, create, update and delete functions and their environment",
	}

	cmd.AddCommand(newFunctionsListCommand())
	cmd.AddCommand(newFunctionsGetCommand())
	cmd.AddCommand(newFunctionsCreateCommand())
	cmd.AddCommand(newFunctionsUpdateCommand())
	cmd.AddCommand(newFunctionsDeleteCommand())
	cmd.AddCommand(newFunctionsEnvCommand())
	cmd.AddCommand(newFunctionsDescribeCommand())

	return cmd
}

func addPageFlags(cmd *cobra.Command, limit, offset *int) {
	cmd.Flags().IntVar(limit, "limit", constants.DefaultPageSize, "page size")
	cmd.Flags().IntVar(offset, "offset", constants.DefaultOffset, "number of items to skip")
}

func renderPageFooter(w io.Writer, total, offset, count int, hasMore bool) {
	if hasMore {
		_, _ = fmt.Fprintf(w, "Showing %d-%d of %d, use --offset %d for more\n", offset+1, offset+count, total, offset+count)
	}
}

func newFunctionsListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List functions",
		Long:  "List the functions deployed on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				params := faas.NewListParams().WithLimit(limit).WithOffset(offset)

				functions, err := c.client.Functions().List(ctx, params)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), functions, func(w io.Writer) error {
					if len(functions.Items) == 0 {
						_, _ = fmt.Fprintln(w, "No functions found")
						return nil
					}

					table := tablewriter.NewWriter(w)
					table.Header("ID", "Name", "Description", "Active Version", "Updated")

					for _, function := range functions.Items {
						_ = table.Append(
							function.ID,
							function.Name,
							truncate(function.Description, constants.DescriptionDisplayLength),
							activeVersion(function),
							formatTime(function.UpdatedAt),
						)
					}

					if err := table.Render(); err != nil {
						return fmt.Errorf("failed to render table: %w", err)
					}

					renderPageFooter(w, functions.Total, functions.Offset, len(functions.Items), functions.HasMore())

					return nil
				})
			})
		},
	}

	addPageFlags(cmd, &limit, &offset)

	return cmd
}

func activeVersion(function faas.Function) string {
	if function.ActiveVersion == nil {
		return constants.None
	}

	return "v" + strconv.Itoa(function.ActiveVersion.Version)
}

func functionRows(function *faas.Function) [][]string {
	return [][]string{
		{"ID", function.ID},
		{"Name", function.Name},
		{"Description", orNone(function.Description)},
		{"Active Version", activeVersion(*function)},
		{"Env Vars", strconv.Itoa(len(function.EnvVars))},
		{"Created", formatTime(function.CreatedAt)},
		{"Updated", formatTime(function.UpdatedAt)},
	}
}

func renderFunction(w io.Writer, function *faas.Function) error {
	return render(w, function, func(w io.Writer) error {
		return renderProperties(w, functionRows(function))
	})
}

func newFunctionsGetCommand() *cobra.Command {
	var showCode bool

	cmd := &cobra.Command{
		Use:   "get FUNCTION_ID",
		Short: "Get function details",
		Long:  "Display a function with its active version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				function, err := c.client.Functions().Get(ctx, args[0])
				if err != nil {
					return err
				}

				if err := renderFunction(cmd.OutOrStdout(), function); err != nil {
					return err
				}

				if showCode && function.ActiveVersion != nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), function.ActiveVersion.Code)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showCode, "code", false, "print the active version's code")

	return cmd
}

// functionFlags are shared by create and update.
type functionFlags struct {
	name        string
	description string
	code        string
	codeFile    string
}

func (f *functionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "function name")
	cmd.Flags().StringVar(&f.description, "description", "", "function description")
	cmd.Flags().StringVar(&f.code, "code", "", "function source code")
	cmd.Flags().StringVar(&f.codeFile, "code-file", "", "read function source code from a file")
}

func (f *functionFlags) request() (*faas.FunctionRequest, error) {
	code, _, err := readCode(f.code, f.codeFile)
	if err != nil {
		return nil, err
	}

	return &faas.FunctionRequest{
		Name:        f.name,
		Description: f.description,
		Code:        code,
	}, nil
}

func newFunctionsCreateCommand() *cobra.Command {
	flags := &functionFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a function",
		Long:  "Create a function; the backend stores the code as version 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request()
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				function, err := c.client.Functions().Create(ctx, request)
				if err != nil {
					return err
				}

				return renderFunction(cmd.OutOrStdout(), function)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newFunctionsUpdateCommand() *cobra.Command {
	flags := &functionFlags{}

	cmd := &cobra.Command{
		Use:   "update FUNCTION_ID",
		Short: "Update a function",
		Long: `Replace a function's name, description and code. Fields not given on
the command line keep their current value; new code creates a new version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, hasCode, err := readCode(flags.code, flags.codeFile)
			if err != nil {
				return err
			}

			changed := hasCode || cmd.Flags().Changed("name") || cmd.Flags().Changed("description")
			if !changed {
				return constants.ErrNothingToUpdate
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				current, err := c.client.Functions().Get(ctx, args[0])
				if err != nil {
					return err
				}

				request := mergeFunctionRequest(current, cmd, flags, code, hasCode)

				function, err := c.client.Functions().Update(ctx, args[0], request)
				if err != nil {
					return err
				}

				return renderFunction(cmd.OutOrStdout(), function)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

// mergeFunctionRequest builds the full replacement body from the current
// function and the flags the operator set.
func mergeFunctionRequest(current *faas.Function, cmd *cobra.Command, flags *functionFlags, code string, hasCode bool) *faas.FunctionRequest {
	request := &faas.FunctionRequest{
		Name:        current.Name,
		Description: current.Description,
	}

	if current.ActiveVersion != nil {
		request.Code = current.ActiveVersion.Code
	}

	if cmd.Flags().Changed("name") {
		request.Name = flags.name
	}

	if cmd.Flags().Changed("description") {
		request.Description = flags.description
	}

	if hasCode {
		request.Code = code
	}

	return request
}

func newFunctionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FUNCTION_ID",
		Short: "Delete a function",
		Long:  "Delete a function with all its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				if err := c.client.Functions().Delete(ctx, args[0]); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Function %s deleted\n", args[0])

				return nil
			})
		},
	}
}

func newFunctionsEnvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage function environment variables",
		Long:  "Show or replace the environment variables of a function",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get FUNCTION_ID",
		Short: "Show environment variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				function, err := c.client.Functions().Get(ctx, args[0])
				if err != nil {
					return err
				}

				return renderEnv(cmd.OutOrStdout(), function.EnvVars)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set FUNCTION_ID [KEY=VALUE...]",
		Short: "Replace environment variables",
		Long: `Replace the full set of environment variables. Variables not listed are
removed; with no KEY=VALUE arguments every variable is cleared. Keys are sent
as given and validated by the backend.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envVars, err := parseKeyValues(args[1:])
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, c *console) error {
				function, err := c.client.Functions().UpdateEnv(ctx, args[0], envVars)
				if err != nil {
					return err
				}

				return renderEnv(cmd.OutOrStdout(), function.EnvVars)
			})
		},
	})

	return cmd
}

func renderEnv(w io.Writer, envVars map[string]string) error {
	if envVars == nil {
		envVars = map[string]string{}
	}

	return render(w, envVars, func(w io.Writer) error {
		if len(envVars) == 0 {
			_, _ = fmt.Fprintln(w, "No environment variables")
			return nil
		}

		keys := make([]string, 0, len(envVars))
		for key := range envVars {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		table := tablewriter.NewWriter(w)
		table.Header("Key", "Value")

		for _, key := range keys {
			_ = table.Append(key, envVars[key])
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	})
}

// FunctionDescription is the combined view printed by "functions describe".
type FunctionDescription struct {
	Function   *faas.Function   `json:"function"   yaml:"function"`
	Versions   []faas.Version   `json:"versions"   yaml:"versions"`
	Executions []faas.Execution `json:"executions" yaml:"executions"`
}

func newFunctionsDescribeCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "describe FUNCTION_ID",
		Short: "Describe a function",
		Long:  "Show a function together with its versions and recent executions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *console) error {
				description, err := describeFunction(ctx, c.client, args[0], limit)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), description, func(w io.Writer) error {
					return renderDescription(w, description)
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "number of versions and executions to show")

	return cmd
}

// describeFunction fetches the three views concurrently. The first failure
// cancels the others and is returned.
func describeFunction(ctx context.Context, client faas.Client, id string, limit int) (*FunctionDescription, error) {
	description := &FunctionDescription{}
	params := faas.NewListParams().WithLimit(limit)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		function, err := client.Functions().Get(ctx, id)
		description.Function = function

		return err
	})

	group.Go(func() error {
		versions, err := client.Versions().List(ctx, id, params)
		if err == nil {
			description.Versions = versions.Items
		}

		return err
	})

	group.Go(func() error {
		executions, err := client.Executions().List(ctx, id, params)
		if err == nil {
			description.Executions = executions.Items
		}

		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return description, nil
}

func renderDescription(w io.Writer, description *FunctionDescription) error {
	if err := renderProperties(w, functionRows(description.Function)); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, "\nVersions:")

	if err := renderVersionsTable(w, description.Versions, description.Function); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, "\nRecent executions:")

	return renderExecutionsTable(w, description.Executions)
}
