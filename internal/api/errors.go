package api

import "errors"

// Sentinel errors for the three failure classes the backend surface
// can produce. Callers classify with errors.Is; the wrapped error
// carries the transport detail for logs only.
var (
	// ErrServiceUnavailable covers every transport-level failure:
	// connection refused, timeout, or a non-2xx status the client does
	// not decode further.
	ErrServiceUnavailable = errors.New("tax service unavailable")

	// ErrNotFound is returned when the backend holds no record for the
	// requested conversation id.
	ErrNotFound = errors.New("conversation not found")

	// ErrValidationRejected is returned when the backend declines a
	// malformed domain request (HTTP 422). The body is not decoded.
	ErrValidationRejected = errors.New("request rejected by tax service")
)
