package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/faas-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	API            string `json:"api,omitempty"             yaml:"api,omitempty"`
	InvokeEndpoint string `json:"invoke_endpoint,omitempty" yaml:"invoke_endpoint,omitempty"`
	LoginRoute     string `json:"login_route,omitempty"     yaml:"login_route,omitempty"`
	Output         string `json:"output,omitempty"          yaml:"output,omitempty"`
	Timeout        string `json:"timeout,omitempty"         yaml:"timeout,omitempty"`
	SessionFile    string `json:"session_file,omitempty"    yaml:"session_file,omitempty"`
}

// configField binds a configuration key to its struct field.
type configField struct {
	get      func(c *Config) string
	set      func(c *Config, value string)
	validate func(value string) error
}

var configFields = map[string]configField{
	"api": {
		get: func(c *Config) string { return c.API },
		set: func(c *Config, v string) { c.API = v },
	},
	"invoke_endpoint": {
		get: func(c *Config) string { return c.InvokeEndpoint },
		set: func(c *Config, v string) { c.InvokeEndpoint = v },
	},
	"login_route": {
		get: func(c *Config) string { return c.LoginRoute },
		set: func(c *Config, v string) { c.LoginRoute = v },
	},
	"output": {
		get: func(c *Config) string { return c.Output },
		set: func(c *Config, v string) { c.Output = v },
		validate: func(v string) error {
			switch v {
			case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
				return nil
			default:
				return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, v)
			}
		},
	},
	"timeout": {
		get: func(c *Config) string { return c.Timeout },
		set: func(c *Config, v string) { c.Timeout = v },
		validate: func(v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			}

			return nil
		},
	},
	"session_file": {
		get: func(c *Config) string { return c.SessionFile },
		set: func(c *Config, v string) { c.SessionFile = v },
	},
}

func lookupConfigField(key string) (configField, error) {
	field, ok := configFields[key]
	if !ok {
		return configField{}, fmt.Errorf("%w: %q", constants.ErrUnknownConfigKey, key)
	}

	return field, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file and the endpoint in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := loadConfigFile(path)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), config, func(w io.Writer) error {
				keys := make([]string, 0, len(configFields))
				for key := range configFields {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				rows := [][]string{{"config file", path}}
				for _, key := range keys {
					rows = append(rows, []string{key, orNone(configFields[key].get(config))})
				}

				rows = append(rows, []string{"api (effective)", orNone(viper.GetString("api"))})

				return renderProperties(w, rows)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], func(field configField, config *Config) error {
				if field.validate != nil {
					if err := field.validate(args[1]); err != nil {
						return err
					}
				}

				field.set(config, args[1])

				return nil
			})
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], func(field configField, config *Config) error {
				field.set(config, "")
				return nil
			})
		},
	}
}

func updateConfig(cmd *cobra.Command, key string, change func(configField, *Config) error) error {
	field, err := lookupConfigField(key)
	if err != nil {
		return err
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}

	config, err := loadConfigFile(path)
	if err != nil {
		return err
	}

	if err := change(field, config); err != nil {
		return err
	}

	if err := saveConfigFile(path, config); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, orNone(field.get(config)))

	return nil
}

// configFilePath returns the file in use, the --config flag, or the default
// $HOME/.faas/config.yml.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	if flag := viper.GetString("config"); flag != "" {
		return flag, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml"), nil
}

// loadConfigFile reads only what is stored on disk, leaving flag and
// environment overrides out of it.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // configuration path
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
