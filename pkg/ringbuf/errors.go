package ringbuf

import "errors"

// ErrInvalidCapacity is returned when creating a buffer with capacity below 1.
var ErrInvalidCapacity = errors.New("ringbuf: capacity must be at least 1")
