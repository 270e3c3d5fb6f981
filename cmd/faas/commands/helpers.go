package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Timestamp layout used in tables.
const timeLayout = "2006-01-02 15:04:05"

// outputFormat returns the configured format, rejecting unknown values.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutput, format)
	}
}

// render writes value as JSON or YAML, or calls table for the table format.
func render(w io.Writer, value interface{}, table func(w io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		return table(w)
	}
}

// renderProperties prints a two-column Property/Value table.
func renderProperties(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatTime(seconds int64) string {
	t := faas.UnixTime(seconds)
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(timeLayout)
}

func truncate(s string, length int) string {
	s = strings.ReplaceAll(s, "\n", " ")

	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length-3]) + "..."
}

func orNone(s string) string {
	if s == "" {
		return constants.None
	}

	return s
}

func optional(value *string) string {
	if value == nil {
		return constants.NotAvailable
	}

	return *value
}

// FormatError renders err for the terminal. Validation errors keep their
// "field: message" form.
func FormatError(err error) string {
	var apiErr *faas.Error
	if !errors.As(err, &apiErr) {
		return "Error: " + err.Error()
	}

	if faas.IsValidation(err) {
		if field, ok := faas.ParseFieldError(apiErr.Message); ok {
			return "Validation failed: " + field.String()
		}
	}

	if apiErr.Kind == faas.KindNetwork {
		return "Error: " + apiErr.Message
	}

	return fmt.Sprintf("Error (%d): %s", apiErr.Code, apiErr.Message)
}

// parseKeyValues turns KEY=VALUE arguments into a map. Only arguments that
// are completely empty are skipped; an empty key or value is kept as is.
func parseKeyValues(args []string) (map[string]string, error) {
	result := make(map[string]string, len(args))

	for _, arg := range args {
		if arg == "" {
			continue
		}

		parts := strings.SplitN(arg, "=", constants.KeyValueSplitParts)
		if len(parts) != constants.KeyValueSplitParts {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, arg)
		}

		result[parts[0]] = parts[1]
	}

	return result, nil
}

// parseHeaders turns "Name: value" arguments into a header map.
func parseHeaders(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(args))

	for _, arg := range args {
		name, value, found := strings.Cut(arg, ":")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidHeader, arg)
		}

		headers[name] = strings.TrimSpace(value)
	}

	return headers, nil
}

// readData returns the literal data, or the content of the file when data
// starts with "@". "@-" reads stdin.
func readData(cmd *cobra.Command, data string) ([]byte, error) {
	if !strings.HasPrefix(data, "@") {
		return []byte(data), nil
	}

	path := strings.TrimPrefix(data, "@")
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return content, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return content, nil
}

// readCode resolves --code and --code-file, which are mutually exclusive.
func readCode(code, codeFile string) (string, bool, error) {
	if code != "" && codeFile != "" {
		return "", false, constants.ErrCodeSourceConflict
	}

	if codeFile != "" {
		content, err := os.ReadFile(codeFile) //nolint:gosec // operator supplied path
		if err != nil {
			return "", false, fmt.Errorf("failed to read code file: %w", err)
		}

		return string(content), true, nil
	}

	return code, code != "", nil
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
