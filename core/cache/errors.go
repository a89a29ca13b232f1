package cache

import "errors"

var (
	// ErrInvalidMaxSize is returned when creating a cache with max size below 1.
	ErrInvalidMaxSize = errors.New("cache: max size must be at least 1")
	// ErrInvalidTTL is returned when creating a cache with a negative default TTL.
	ErrInvalidTTL = errors.New("cache: default TTL must not be negative")
)
