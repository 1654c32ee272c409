package config

import "errors"

var (
	// ErrParsingConfig wraps the env parser error naming the offending
	// variable, e.g. a missing IDCARD_SECRET or a malformed duration.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file
	// cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
