package config

import "errors"

// ErrParsingFailed is returned when environment variables cannot be parsed
// into the target struct, e.g. a required variable is missing or a value has
// the wrong type.
var ErrParsingFailed = errors.New("config: failed to parse environment variables")
