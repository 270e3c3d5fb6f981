package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API endpoint configured, use --api or 'faas config set api <url>'")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrInvalidOutput    = errors.New("output must be one of table, json, yaml")
)

// Input errors.
var (
	ErrInvalidKeyValue    = errors.New("expected KEY=VALUE")
	ErrInvalidHeader      = errors.New("expected header in 'Name: value' form")
	ErrCodeSourceConflict = errors.New("use either --code or --code-file, not both")
	ErrNothingToUpdate    = errors.New("nothing to update")
	ErrAPIKeyRequired     = errors.New("API key is required")
)

// Session errors.
var (
	ErrSessionExpired = errors.New("session expired, run 'faas login'")
)
