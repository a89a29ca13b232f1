package gateway

import "errors"

// ErrMissingService is returned when constructing a gateway without a chat
// service.
var ErrMissingService = errors.New("gateway: chat service is required")
