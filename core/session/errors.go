package session

import "errors"

var (
	// ErrInvalidTTL is returned when the session TTL is not positive.
	ErrInvalidTTL = errors.New("session: TTL must be positive")
	// ErrInvalidMaxHistory is returned when the history capacity is below 1.
	ErrInvalidMaxHistory = errors.New("session: max history must be at least 1")
	// ErrInvalidSweepInterval is returned when the sweep interval is not positive.
	ErrInvalidSweepInterval = errors.New("session: sweep interval must be positive")
	// ErrInvalidGracePeriod is returned when the disconnect grace period is not positive.
	ErrInvalidGracePeriod = errors.New("session: grace period must be positive")
)
