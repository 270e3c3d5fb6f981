package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and session files.
	ConfigFilePerm = 0600
)

// Configuration locations.
const (
	// ConfigDirName is the directory under $HOME holding CLI state.
	ConfigDirName = ".faas"

	// ConfigFileName is the viper config name (without extension).
	ConfigFileName = "config"

	// SessionFileName stores the persisted session cookies.
	SessionFileName = "session.yml"

	// EnvPrefix is the prefix for environment overrides (FAAS_API, ...).
	EnvPrefix = "FAAS"
)

// HTTP defaults.
const (
	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "faas-client/1.0"

	// DefaultAPIEndpoint is used by the CLI when nothing is configured.
	DefaultAPIEndpoint = "http://localhost:8080/api"

	// ShortHTTPTimeout is used for quick CLI operations such as logout.
	ShortHTTPTimeout = 10 * time.Second
)

// Pagination and display limits.
const (
	// DefaultPageSize matches the backend's default list page.
	DefaultPageSize = 20

	// DefaultOffset is the first page.
	DefaultOffset = 0

	// DescriptionDisplayLength truncates descriptions in tables.
	DescriptionDisplayLength = 60

	// ErrorDisplayLength truncates execution errors in tables.
	ErrorDisplayLength = 50
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// ActiveMarker flags the active version in listings.
	ActiveMarker = "✓"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Validation and limits.
const (
	// KeyValueSplitParts is the number of parts when splitting KEY=VALUE strings.
	KeyValueSplitParts = 2
)
